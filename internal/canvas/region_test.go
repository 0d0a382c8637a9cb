package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_Contains(t *testing.T) {
	r := NewRegionRange(5, 10)
	assert.False(t, r.Contains(4))
	assert.True(t, r.Contains(5))
	assert.True(t, r.Contains(9))
	assert.False(t, r.Contains(10))
}

func TestMatchedRegion_ContainsNothing(t *testing.T) {
	r := NewMatchedRegion()
	assert.False(t, r.Contains(0))
	assert.False(t, r.Contains(5))
}

func TestRegion_SlideLeft(t *testing.T) {
	r := NewRegionRange(10, 20)
	r.SlideLeft(8)
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(12))
}

func TestRegion_SlideLeftPastRangeCollapses(t *testing.T) {
	r := NewRegionRange(5, 10)
	r.SlideLeft(20)
	assert.False(t, r.Contains(0))
	assert.False(t, r.hasRange)
}

func TestRegion_NilRegionIsSafe(t *testing.T) {
	var r *Region
	assert.False(t, r.Contains(0))
	assert.Nil(t, r.Boundaries(0, 10, Unset))
	r.SlideLeft(5) // must not panic
}

func TestRegion_BoundariesOnlyWhenTokenTouchesRange(t *testing.T) {
	r := NewRegionRange(5, 10)

	assert.NotNil(t, r.Boundaries(0, 6, Unset))  // token [0,6) contains start=5
	assert.NotNil(t, r.Boundaries(8, 12, Unset)) // token [8,12) contains end=10
	assert.Nil(t, r.Boundaries(20, 30, Unset))   // token far outside the region
}

func TestRegion_BoundaryAt(t *testing.T) {
	restoreFg := RGB(1, 2, 3)
	r := NewRegionRange(5, 10)
	b := r.Boundaries(0, 15, restoreFg)
	require.NotNil(t, b)

	boundary, _ := b.BoundaryAt(5)
	assert.Equal(t, BoundaryStart, boundary)

	boundary, color := b.BoundaryAt(10)
	assert.Equal(t, BoundaryEnd, boundary)
	assert.Equal(t, restoreFg, color)

	boundary, _ = b.BoundaryAt(7)
	assert.Equal(t, BoundaryNone, boundary)
}
