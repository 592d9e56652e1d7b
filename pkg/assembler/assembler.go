package assembler

import (
	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/geometry"
)

// Assembler stitches motion segments that share endpoints into shapes as
// they arrive. Shapes live in an arena and the endpoint index refers to
// them by arena position, so the arena may grow freely.
//
// A key in the index is always a live end of the path its shape forms:
// an endpoint that no later segment has started from or closed onto.
type Assembler struct {
	shapes []*geometry.Shape
	index  map[geometry.Point]int
}

func New() *Assembler {
	return &Assembler{
		index: make(map[geometry.Point]int),
	}
}

// Submit adds one segment. A segment starting at a live endpoint extends
// that shape; if it also ends on a live endpoint the path is closed there
// and, when that endpoint belonged to another shape, the two shapes are
// joined. Any other segment starts a new shape.
func (a *Assembler) Submit(seg geometry.Segment) {
	start, end := seg.Start, seg.End
	if seg.IsDegenerate() {
		logger.Debug("Zero length %s", seg)
	}

	owner, ok := a.index[start]
	if !ok {
		a.shapes = append(a.shapes, geometry.NewShape(seg))
		id := len(a.shapes) - 1
		a.index[start] = id
		a.index[end] = id
		logger.Debug("New shape %d from %s", id, seg)
		return
	}

	a.shapes[owner].Add(seg)
	delete(a.index, start)

	other, closing := a.index[end]
	if !closing {
		a.index[end] = owner
		return
	}
	delete(a.index, end)
	if other != owner {
		a.absorb(owner, other)
		logger.Debug("Shape %d joined onto shape %d at %s", other, owner, end)
		return
	}
	logger.Debug("Shape %d closed at %s", owner, end)
}

// absorb moves every segment of shape src into dst and hands src's
// remaining live endpoints over to dst. src stays in the arena, empty.
func (a *Assembler) absorb(dst, src int) {
	for _, seg := range a.shapes[src].Segments {
		a.shapes[dst].Add(seg)
	}
	a.shapes[src].Segments = nil
	for p, id := range a.index {
		if id == src {
			a.index[p] = dst
		}
	}
}

// Shapes returns the non-empty shapes in the order they were created
func (a *Assembler) Shapes() []*geometry.Shape {
	ret := make([]*geometry.Shape, 0, len(a.shapes))
	for _, s := range a.shapes {
		if s.Len() > 0 {
			ret = append(ret, s)
		}
	}
	return ret
}

// Len is the number of non-empty shapes
func (a *Assembler) Len() int {
	n := 0
	for _, s := range a.shapes {
		if s.Len() > 0 {
			n++
		}
	}
	return n
}

// IsOpen reports whether p is a live endpoint
func (a *Assembler) IsOpen(p geometry.Point) bool {
	_, ok := a.index[p]
	return ok
}

// OwnerOf returns the shape currently open at p
func (a *Assembler) OwnerOf(p geometry.Point) (*geometry.Shape, bool) {
	id, ok := a.index[p]
	if !ok {
		return nil, false
	}
	return a.shapes[id], true
}

// OpenEndpoints is the number of live endpoints in the index
func (a *Assembler) OpenEndpoints() int {
	return len(a.index)
}
