package analytic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineThrough_Inconstructible(t *testing.T) {
	_, err := LineThrough(NewPoint(1, 1), NewPoint(1, 1))
	require.ErrorIs(t, err, ErrInconstructible)
}

func TestLineThrough_CanonicalOrderIndependence(t *testing.T) {
	p := NewPoint(0, 0)
	q := NewPoint(4, 2)

	l1, err := LineThrough(p, q)
	require.NoError(t, err)
	l2, err := LineThrough(q, p)
	require.NoError(t, err)

	assert.True(t, l1.Eq(l2), "line through p,q must equal line through q,p")
}

func TestLine_Contains(t *testing.T) {
	l, err := LineThrough(NewPoint(0, 0), NewPoint(2, 2))
	require.NoError(t, err)

	assert.True(t, l.Contains(NewPoint(1, 1)))
	assert.True(t, l.Contains(NewPoint(-3, -3)))
	assert.False(t, l.Contains(NewPoint(1, 2)))
}

func TestLine_PerpendicularFrom(t *testing.T) {
	l, err := LineThrough(NewPoint(0, 0), NewPoint(1, 0)) // x-axis
	require.NoError(t, err)

	perp := l.PerpendicularFrom(NewPoint(3, 3))
	assert.True(t, l.IsPerpendicular(perp))
	assert.True(t, perp.Contains(NewPoint(3, 3)))
}

func TestLine_ParallelFrom(t *testing.T) {
	l, err := LineThrough(NewPoint(0, 0), NewPoint(1, 1))
	require.NoError(t, err)

	par := l.ParallelFrom(NewPoint(0, 2))
	assert.True(t, l.IsParallel(par))
	assert.True(t, par.Contains(NewPoint(0, 2)))
	assert.False(t, l.Eq(par))
}

func TestLine_IntersectLine(t *testing.T) {
	horiz, err := LineThrough(NewPoint(-5, 0), NewPoint(5, 0))
	require.NoError(t, err)
	vert, err := LineThrough(NewPoint(3, -5), NewPoint(3, 5))
	require.NoError(t, err)

	p, ok := horiz.IntersectLine(vert)
	require.True(t, ok)
	assert.True(t, NewPoint(3, 0).Eq(p))

	_, ok = horiz.IntersectLine(horiz.ParallelFrom(NewPoint(0, 1)))
	assert.False(t, ok, "parallel lines must report no unique intersection")
}
