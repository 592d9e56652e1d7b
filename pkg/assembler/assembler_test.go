package assembler

import (
	"testing"

	"github.com/richard-senior/gcode2bmp/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pa = geometry.NewPoint(0, 0)
	pb = geometry.NewPoint(10, 0)
	pc = geometry.NewPoint(10, 10)
	pd = geometry.NewPoint(30, 30)
	pe = geometry.NewPoint(50, 50)
)

func line(from, to geometry.Point) geometry.Segment {
	return geometry.NewLine(from, to)
}

func TestChainFormsOneShape(t *testing.T) {
	a := New()
	a.Submit(line(pa, pb))
	a.Submit(line(pb, pc))

	shapes := a.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, 2, shapes[0].Len())
	assert.True(t, a.IsOpen(pa))
	assert.False(t, a.IsOpen(pb))
	assert.True(t, a.IsOpen(pc))
	assert.Equal(t, 2, a.OpenEndpoints())
}

func TestDisjointSegmentsFormSeparateShapes(t *testing.T) {
	a := New()
	a.Submit(line(pa, pb))
	a.Submit(line(pd, pe))

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 4, a.OpenEndpoints())
}

func TestLoopClosesShape(t *testing.T) {
	a := New()
	a.Submit(line(pa, pb))
	a.Submit(line(pb, pc))
	a.Submit(line(pc, pa))

	shapes := a.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, 3, shapes[0].Len())
	assert.True(t, shapes[0].IsClosed())
	assert.Equal(t, 0, a.OpenEndpoints())

	// a closed point starts a brand new shape
	a.Submit(line(pa, pe))
	assert.Equal(t, 2, a.Len())
}

func TestClosingOntoAnotherShapeJoinsThem(t *testing.T) {
	a := New()
	a.Submit(line(pa, pb)) // A->B
	a.Submit(line(pd, pc)) // D->C, a different open shape
	require.Equal(t, 2, a.Len())

	a.Submit(line(pc, pa)) // C->A

	shapes := a.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, 3, shapes[0].Len())
	assert.False(t, a.IsOpen(pa))
	assert.False(t, a.IsOpen(pc))

	// the far ends of both paths now belong to the joined shape
	owner, ok := a.OwnerOf(pb)
	require.True(t, ok)
	assert.Same(t, shapes[0], owner)
	owner, ok = a.OwnerOf(pd)
	require.True(t, ok)
	assert.Same(t, shapes[0], owner)

	// A is closed and cannot extend the joined shape
	a.Submit(line(pa, pe))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, shapes[0].Len())

	// B still can
	a.Submit(line(pb, geometry.NewPoint(99, 0)))
	assert.Equal(t, 4, shapes[0].Len())
}

func TestSegmentFromShapeStartExtendsIt(t *testing.T) {
	a := New()
	a.Submit(line(pa, pb))
	a.Submit(line(pa, pe))

	require.Equal(t, 1, a.Len())
	assert.False(t, a.IsOpen(pa))
	assert.True(t, a.IsOpen(pb))
	assert.True(t, a.IsOpen(pe))
}

func TestDegenerateSegment(t *testing.T) {
	a := New()
	a.Submit(line(pd, pd))
	require.Equal(t, 1, a.Len())
	assert.Equal(t, 1, a.OpenEndpoints())
	assert.True(t, a.IsOpen(pd))

	// appending a degenerate segment keeps the endpoint live
	a.Submit(line(pd, pd))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, a.Shapes()[0].Len())
	assert.True(t, a.IsOpen(pd))

	a.Submit(line(pd, pe))
	assert.Equal(t, 1, a.Len())
	assert.False(t, a.IsOpen(pd))
	assert.True(t, a.IsOpen(pe))
}

func TestArcsStitchLikeLines(t *testing.T) {
	a := New()
	a.Submit(line(pa, pb))
	a.Submit(geometry.NewArc(pb, pc, geometry.NewPoint(10, 5), true))

	shapes := a.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, geometry.Arc, shapes[0].Segments[1].Kind)
}
