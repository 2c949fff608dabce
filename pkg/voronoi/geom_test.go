package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParabolaIntersectX(t *testing.T) {
	t.Run("equidistant foci meet midway", func(t *testing.T) {
		x := parabolaIntersectX(Vertex{0, 1}, Vertex{2, 1}, 3)
		assert.InDelta(t, 1.0, x, 1e-12)
	})

	t.Run("focus on the directrix pins the breakpoint", func(t *testing.T) {
		x := parabolaIntersectX(Vertex{0, 1}, Vertex{2, 3}, 3)
		assert.Equal(t, 2.0, x)

		x = parabolaIntersectX(Vertex{0, 3}, Vertex{2, 1}, 3)
		assert.Equal(t, 0.0, x)
	})

	t.Run("asymmetric foci", func(t *testing.T) {
		// solved by hand from the two parabola equations
		x := parabolaIntersectX(Vertex{0, 1}, Vertex{2, 0}, 3)
		assert.InDelta(t, -4+math.Sqrt(30), x, 1e-12)
	})
}

func TestCircumcircle(t *testing.T) {
	t.Run("converging triple", func(t *testing.T) {
		center, bottom, ok := circumcircle(Vertex{2, 0}, Vertex{1, 1}, Vertex{0, 0}, 1e-9)
		require.True(t, ok)
		assert.InDelta(t, 1.0, center.X, 1e-12)
		assert.InDelta(t, 0.0, center.Y, 1e-12)
		assert.InDelta(t, 1.0, bottom, 1e-12)
	})

	t.Run("diverging triple has no circle", func(t *testing.T) {
		_, _, ok := circumcircle(Vertex{0, 0}, Vertex{1, 1}, Vertex{2, 0}, 1e-9)
		assert.False(t, ok)
	})

	t.Run("collinear triple has no circle", func(t *testing.T) {
		_, _, ok := circumcircle(Vertex{0, 0}, Vertex{1, 0}, Vertex{2, 0}, 1e-9)
		assert.False(t, ok)
	})

	t.Run("near-collinear within tolerance has no circle", func(t *testing.T) {
		_, _, ok := circumcircle(Vertex{0, 0}, Vertex{1, -1e-12}, Vertex{2, 0}, 1e-9)
		assert.False(t, ok)
	})
}

func TestCircumcenter(t *testing.T) {
	c, ok := circumcenter(Vertex{0, 0}, Vertex{2, 0}, Vertex{0, 2}, 1e-9)
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.X, 1e-12)
	assert.InDelta(t, 1.0, c.Y, 1e-12)

	_, ok = circumcenter(Vertex{0, 0}, Vertex{1, 1}, Vertex{2, 2}, 1e-9)
	assert.False(t, ok)
}
