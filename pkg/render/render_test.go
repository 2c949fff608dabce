package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5EED/go-voronoi/pkg/render"
	"github.com/0x5EED/go-voronoi/pkg/voronoi"
)

func testDiagram(t *testing.T) *voronoi.Diagram {
	t.Helper()
	sites := []voronoi.Vertex{
		{X: 20, Y: 20}, {X: 80, Y: 30},
		{X: 50, Y: 70}, {X: 30, Y: 90},
	}
	d, err := voronoi.Compute(sites,
		voronoi.WithBoundingBox(voronoi.NewBoundingBox(0, 100, 0, 100)))
	require.NoError(t, err)
	return d
}

func TestDraw(t *testing.T) {
	c := render.Draw(testDiagram(t))
	require.NotNil(t, c)

	w, h := c.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 100.0, h)
}

func TestWriteFile(t *testing.T) {
	d := testDiagram(t)
	dir := t.TempDir()

	for _, name := range []string{"out.svg", "out.png"} {
		path := filepath.Join(dir, name)
		require.NoError(t, render.WriteFile(path, d))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
