package svg

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/canvas"
	"github.com/richard-senior/gcode2bmp/pkg/geometry"
	"github.com/richard-senior/gcode2bmp/pkg/render"
)

///////////////////////////////////////////////////////////////////////////////
/// PATH
///////////////////////////////////////////////////////////////////////////////

// Path is a single SVG <path> element
type Path struct {
	ID          string
	CommandsStr string
	Stroke      string
	IsClosed    bool
}

// NewPathFromShape converts a shape into path commands. A move command is
// only emitted where a segment does not start at the current point.
func NewPathFromShape(id string, s *geometry.Shape, stroke canvas.RGB) (*Path, error) {
	if s == nil || s.Len() == 0 {
		return nil, fmt.Errorf("shape %s has no segments", id)
	}

	var sb strings.Builder
	var pen geometry.Point
	for i, seg := range s.Segments {
		if i == 0 || seg.Start != pen {
			fmt.Fprintf(&sb, "M %d,%d ", seg.Start.X, seg.Start.Y)
		}
		switch seg.Kind {
		case geometry.Straight:
			fmt.Fprintf(&sb, "L %d,%d ", seg.End.X, seg.End.Y)
		case geometry.Arc:
			sb.WriteString(arcCommand(seg))
		}
		pen = seg.End
	}

	return &Path{
		ID:          id,
		CommandsStr: strings.TrimSpace(sb.String()),
		Stroke:      stroke.Hex(),
		IsClosed:    s.IsClosed(),
	}, nil
}

// arcCommand builds an elliptical arc command sweeping the same way as
// canvas.DrawArc. SVG's positive angle direction is also clockwise on
// screen, so the sweep flag follows the clockwise flag.
func arcCommand(seg geometry.Segment) string {
	sx, sy := float64(seg.Start.X-seg.Center.X), float64(seg.Start.Y-seg.Center.Y)
	ex, ey := float64(seg.End.X-seg.Center.X), float64(seg.End.Y-seg.Center.Y)
	r := math.Hypot(sx, sy)

	start := math.Atan2(sy, sx)
	end := math.Atan2(ey, ex)
	if seg.Clockwise {
		if end < start {
			end += 2 * math.Pi
		}
	} else if end > start {
		end -= 2 * math.Pi
	}

	large, sweep := 0, 0
	if math.Abs(end-start) > math.Pi {
		large = 1
	}
	if seg.Clockwise {
		sweep = 1
	}
	return fmt.Sprintf("A %s %s 0 %d %d %d,%d ", formatFloat(r), formatFloat(r), large, sweep, seg.End.X, seg.End.Y)
}

func formatFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}

func (p *Path) ToPathTag() string {
	return fmt.Sprintf(`<path id="%s" d="%s" stroke="%s" stroke-width="1" fill="none" />`, p.ID, p.CommandsStr, p.Stroke)
}

///////////////////////////////////////////////////////////////////////////////
/// SVG
///////////////////////////////////////////////////////////////////////////////

const svgHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d"
	version="1.1"
	xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="#ffffff" />
`
const svgFooter = `</svg>
`

// SVG holds the paths of one drawing
type SVG struct {
	Name          string
	Width, Height int
	Paths         []*Path
}

// FromShapes builds an SVG whose paths use the same colors the bitmap
// renderer gives the shapes
func FromShapes(name string, shapes []*geometry.Shape, width, height int) (*SVG, error) {
	ret := &SVG{Name: name, Width: width, Height: height}
	colors := render.Colors(len(shapes))
	for i, s := range shapes {
		p, err := NewPathFromShape(fmt.Sprintf("shape_%d", i), s, colors[i])
		if err != nil {
			return nil, err
		}
		ret.Paths = append(ret.Paths, p)
	}
	return ret, nil
}

func (s *SVG) NumPaths() int {
	return len(s.Paths)
}

func (s *SVG) ToSVG() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, s.Width, s.Height, s.Width, s.Height)
	for _, p := range s.Paths {
		sb.WriteString(p.ToPathTag())
		sb.WriteString("\n")
	}
	sb.WriteString(svgFooter)
	return sb.String()
}

func (s *SVG) ToSVGFile(filePath string) error {
	if err := os.WriteFile(filePath, []byte(s.ToSVG()), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file %s: %w", filePath, err)
	}
	logger.Info("Wrote %d paths to %s", s.NumPaths(), filePath)
	return nil
}

var (
	pathTagRegex = regexp.MustCompile(`(?i)<path[^>]*>`)
	dAttrRegex   = regexp.MustCompile(`(?i)\sd\s*=\s*"([^"]*)"`)
	idAttrRegex  = regexp.MustCompile(`(?i)\sid\s*=\s*"([^"]*)"`)
)

// ParsePaths extracts the id and d attributes of every <path> tag
func ParsePaths(content string) ([]*Path, error) {
	tags := pathTagRegex.FindAllString(content, -1)
	if len(tags) == 0 {
		return nil, fmt.Errorf("no <path> tags found in SVG content")
	}
	ret := make([]*Path, 0, len(tags))
	for _, tag := range tags {
		d := dAttrRegex.FindStringSubmatch(tag)
		if len(d) < 2 {
			logger.Warn("Skipping path tag without commands: %s", tag)
			continue
		}
		p := &Path{CommandsStr: d[1]}
		if id := idAttrRegex.FindStringSubmatch(tag); len(id) >= 2 {
			p.ID = id[1]
		}
		ret = append(ret, p)
	}
	return ret, nil
}
