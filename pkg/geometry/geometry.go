package geometry

import (
	"fmt"

	"github.com/richard-senior/gcode2bmp/pkg/canvas"
)

///////////////////////////////////////////////////////////////////////////////
/// POINT
///////////////////////////////////////////////////////////////////////////////

// Point is an integer 2D coordinate. Points compare exactly and are used
// directly as map keys.
type Point struct {
	X, Y int
}

func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add offsets the point by dx,dy
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

///////////////////////////////////////////////////////////////////////////////
/// SEGMENT
///////////////////////////////////////////////////////////////////////////////

// SegmentKind selects how a Segment is drawn
type SegmentKind int

const (
	Straight SegmentKind = iota
	Arc
)

func (k SegmentKind) String() string {
	switch k {
	case Straight:
		return "straight"
	case Arc:
		return "arc"
	default:
		return "unknown"
	}
}

// Surface is what segments draw onto. *canvas.Canvas implements it.
type Surface interface {
	DrawLine(x0, y0, x1, y1 int, c canvas.RGB)
	DrawArc(x0, y0, x1, y1, cx, cy int, clockwise bool, c canvas.RGB)
	DrawPoint(x, y int, c canvas.RGB)
}

// Segment is one piece of geometry produced by a single motion command.
// Center and Clockwise are only meaningful for arcs.
type Segment struct {
	Kind       SegmentKind
	Start, End Point
	Center     Point
	Clockwise  bool
}

// NewLine creates a straight segment
func NewLine(start, end Point) Segment {
	return Segment{Kind: Straight, Start: start, End: end}
}

// NewArc creates a circular arc segment around center
func NewArc(start, end, center Point, clockwise bool) Segment {
	return Segment{Kind: Arc, Start: start, End: end, Center: center, Clockwise: clockwise}
}

// IsDegenerate reports whether the segment starts where it ends
func (s Segment) IsDegenerate() bool {
	return s.Start == s.End
}

// Render draws the segment in color c and then marks both endpoints
// with canvas.JointColor
func (s Segment) Render(dst Surface, c canvas.RGB) {
	switch s.Kind {
	case Straight:
		dst.DrawLine(s.Start.X, s.Start.Y, s.End.X, s.End.Y, c)
	case Arc:
		dst.DrawArc(s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Center.X, s.Center.Y, s.Clockwise, c)
	}
	dst.DrawPoint(s.Start.X, s.Start.Y, canvas.JointColor)
	dst.DrawPoint(s.End.X, s.End.Y, canvas.JointColor)
}

func (s Segment) String() string {
	if s.Kind == Arc {
		dir := "ccw"
		if s.Clockwise {
			dir = "cw"
		}
		return fmt.Sprintf("arc %s->%s around %s %s", s.Start, s.End, s.Center, dir)
	}
	return fmt.Sprintf("line %s->%s", s.Start, s.End)
}

///////////////////////////////////////////////////////////////////////////////
/// SHAPE
///////////////////////////////////////////////////////////////////////////////

// Shape is a connected run of segments, drawn in a single color
type Shape struct {
	Segments []Segment
}

func NewShape(first Segment) *Shape {
	return &Shape{Segments: []Segment{first}}
}

func (s *Shape) Add(seg Segment) {
	s.Segments = append(s.Segments, seg)
}

// Len is the number of segments in the shape
func (s *Shape) Len() int {
	return len(s.Segments)
}

// IsClosed reports whether the last segment ends where the first starts
func (s *Shape) IsClosed() bool {
	if len(s.Segments) == 0 {
		return false
	}
	return s.Segments[len(s.Segments)-1].End == s.Segments[0].Start
}

// Render draws every segment, in insertion order, with color c
func (s *Shape) Render(dst Surface, c canvas.RGB) {
	for _, seg := range s.Segments {
		seg.Render(dst, c)
	}
}
