package voronoi_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5EED/go-voronoi/pkg/voronoi"
)

func TestEmptyInput(t *testing.T) {
	_, err := voronoi.Compute(nil)
	require.ErrorIs(t, err, voronoi.ErrNoSites)
}

func TestSingleSite(t *testing.T) {
	d, err := voronoi.Compute([]voronoi.Vertex{{X: 0, Y: 0}},
		voronoi.WithBoundingBox(voronoi.NewBoundingBox(-1, 1, -1, 1)))
	require.NoError(t, err)

	require.Len(t, d.Cells, 1)
	cell := d.Cells[0]
	assert.Len(t, cell.Halfedges, 4)
	assert.InDelta(t, 4.0, cell.Area(), 1e-9)
	assert.Empty(t, d.Vertices)

	require.Len(t, d.Edges, 4)
	for _, e := range d.Edges {
		assert.Nil(t, e.RightCell)
	}
}

func TestTwoSites(t *testing.T) {
	sites := []voronoi.Vertex{{X: 4, Y: 5}, {X: 6, Y: 5}}
	box := voronoi.NewBoundingBox(0, 10, 0, 10)

	d, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	// one bisector plus six border edges
	assert.Len(t, d.Edges, 7)
	require.Len(t, d.Cells, 2)
	for _, cell := range d.Cells {
		assert.Len(t, cell.Halfedges, 4)
		assert.InDelta(t, 50.0, cell.Area(), 1e-9)
	}
}

func TestTwoSitesOpen(t *testing.T) {
	sites := []voronoi.Vertex{{X: 4, Y: 5}, {X: 6, Y: 5}}
	box := voronoi.NewBoundingBox(0, 10, 0, 10)

	d, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box), voronoi.WithOpenCells())
	require.NoError(t, err)

	assert.Len(t, d.Edges, 1)
	require.Len(t, d.Cells, 2)
	for _, cell := range d.Cells {
		assert.Len(t, cell.Halfedges, 1)
	}
}

func TestCollinearSites(t *testing.T) {
	sites := []voronoi.Vertex{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}}
	box := voronoi.NewBoundingBox(-1, 5, -1, 1)

	d, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	// parallel strips, no interior vertex anywhere
	require.Len(t, d.Cells, 3)
	assert.Empty(t, d.Vertices)
	for i, cell := range d.Cells {
		assert.Equal(t, i, cell.Index)
		assert.InDelta(t, 4.0, cell.Area(), 1e-9)
	}
}

func TestDuplicateSites(t *testing.T) {
	t.Run("exact duplicates share one cell", func(t *testing.T) {
		sites := []voronoi.Vertex{{X: 0, Y: 0}, {X: 0, Y: 0}}
		d, err := voronoi.Compute(sites,
			voronoi.WithBoundingBox(voronoi.NewBoundingBox(-1, 1, -1, 1)))
		require.NoError(t, err)

		require.Len(t, d.Cells, 1)
		assert.Same(t, d.CellForSite(0), d.CellForSite(1))
		assert.Equal(t, []int{0, 1}, d.Cells[0].SiteIndexes)
		assert.InDelta(t, 4.0, d.Cells[0].Area(), 1e-9)
	})

	t.Run("near duplicates collapse within tolerance", func(t *testing.T) {
		sites := []voronoi.Vertex{{X: 0, Y: 0}, {X: 1e-4, Y: 0}}
		d, err := voronoi.Compute(sites,
			voronoi.WithBoundingBox(voronoi.NewBoundingBox(-1, 1, -1, 1)),
			voronoi.WithTolerance(1e-3))
		require.NoError(t, err)

		require.Len(t, d.Cells, 1)
		assert.Same(t, d.CellForSite(0), d.CellForSite(1))
	})

	t.Run("duplicates collapse across intervening sites", func(t *testing.T) {
		// sites 0 and 2 coincide within tolerance but site 1 sits between
		// them in sweep order; the collapse must not depend on adjacency
		sites := []voronoi.Vertex{
			{X: 0, Y: 0},
			{X: 0.5, Y: 0.0005},
			{X: 0.0001, Y: 0.0009},
		}
		d, err := voronoi.Compute(sites, voronoi.WithTolerance(1e-3))
		require.NoError(t, err)

		require.Len(t, d.Cells, 2)
		assert.Same(t, d.CellForSite(0), d.CellForSite(2))
		assert.Equal(t, []int{0, 2}, d.CellForSite(0).SiteIndexes)
		assert.Equal(t, []int{1}, d.CellForSite(1).SiteIndexes)
	})
}

func TestFourSitesSquare(t *testing.T) {
	sites := []voronoi.Vertex{
		{X: 0, Y: 0}, {X: 4, Y: 0},
		{X: 0, Y: 4}, {X: 4, Y: 4},
	}
	box := voronoi.NewBoundingBox(-1, 5, -1, 5)

	d, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	require.Len(t, d.Cells, 4)
	for _, cell := range d.Cells {
		assert.InDelta(t, 9.0, cell.Area(), 1e-9)
	}

	// cocircular sites: all four bisectors meet in one vertex
	require.Len(t, d.Vertices, 1)
	assert.InDelta(t, 2.0, d.Vertices[0].X, 1e-9)
	assert.InDelta(t, 2.0, d.Vertices[0].Y, 1e-9)
}

func TestHorizontalRow(t *testing.T) {
	var sites []voronoi.Vertex
	for i := 0; i < 100; i++ {
		sites = append(sites, voronoi.Vertex{X: float64(i) + 0.5, Y: 50})
	}
	box := voronoi.NewBoundingBox(0, 100, 0, 100)

	d, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	assert.Len(t, d.Edges, 301)
	require.Len(t, d.Cells, 100)
	for _, cell := range d.Cells {
		assert.Len(t, cell.Halfedges, 4)
	}
}

func TestVerticalRow(t *testing.T) {
	var sites []voronoi.Vertex
	for i := 0; i < 100; i++ {
		sites = append(sites, voronoi.Vertex{X: 50, Y: float64(i) + 0.5})
	}
	box := voronoi.NewBoundingBox(0, 100, 0, 100)

	d, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	assert.Len(t, d.Edges, 301)
	require.Len(t, d.Cells, 100)
	for _, cell := range d.Cells {
		assert.Len(t, cell.Halfedges, 4)
	}
}

func TestDerivedBoundingBox(t *testing.T) {
	sites := []voronoi.Vertex{
		{X: 0, Y: 0}, {X: 10, Y: 0},
		{X: 0, Y: 10}, {X: 10, Y: 10},
	}

	d, err := voronoi.Compute(sites, voronoi.WithMargin(0.1))
	require.NoError(t, err)

	assert.InDelta(t, -1.0, d.Box.Xl, 1e-12)
	assert.InDelta(t, 11.0, d.Box.Xr, 1e-12)
	assert.InDelta(t, -1.0, d.Box.Yt, 1e-12)
	assert.InDelta(t, 11.0, d.Box.Yb, 1e-12)
}

func randomSites(n int, seed int64, w, h float64) []voronoi.Vertex {
	rng := rand.New(rand.NewSource(seed))
	sites := make([]voronoi.Vertex, n)
	for i := range sites {
		sites[i] = voronoi.Vertex{X: rng.Float64() * w, Y: rng.Float64() * h}
	}
	return sites
}

func TestAreasTileTheBox(t *testing.T) {
	box := voronoi.NewBoundingBox(0, 100, 0, 100)
	d, err := voronoi.Compute(randomSites(50, 1, 100, 100), voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	var total float64
	for _, cell := range d.Cells {
		total += cell.Area()
	}
	assert.InDelta(t, box.Area(), total, 1e-6)
}

func TestHalfedgeTopology(t *testing.T) {
	d, err := voronoi.Compute(randomSites(40, 2, 100, 100),
		voronoi.WithBoundingBox(voronoi.NewBoundingBox(0, 100, 0, 100)))
	require.NoError(t, err)

	for _, he := range d.Halfedges {
		require.NotNil(t, he.Twin)
		assert.Same(t, he, he.Twin.Twin)
		assert.Same(t, he, he.Next.Prev)
		assert.Same(t, he, he.Prev.Next)
	}

	// each cell's ring is closed: every half-edge ends where the next starts,
	// and following Next comes back around in exactly degree steps
	for _, cell := range d.Cells {
		n := len(cell.Halfedges)
		require.Greater(t, n, 2)

		walk := cell.Halfedges[0]
		for range cell.Halfedges {
			walk = walk.Next
		}
		assert.Same(t, cell.Halfedges[0], walk)

		for i, he := range cell.Halfedges {
			next := cell.Halfedges[(i+1)%n]
			assert.InDelta(t, he.End().X, next.Start().X, 1e-9)
			assert.InDelta(t, he.End().Y, next.Start().Y, 1e-9)
		}
	}
}

func TestCellsAreConvex(t *testing.T) {
	d, err := voronoi.Compute(randomSites(60, 3, 100, 100),
		voronoi.WithBoundingBox(voronoi.NewBoundingBox(0, 100, 0, 100)))
	require.NoError(t, err)

	for _, cell := range d.Cells {
		ring := cell.Polygon()
		require.GreaterOrEqual(t, len(ring), 3)
		for i := range ring {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			c := ring[(i+2)%len(ring)]
			cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
			assert.LessOrEqual(t, cross, 1e-7,
				"cell %d turns the wrong way at ring position %d", cell.Index, i)
		}
	}
}

func TestNearestSiteProperty(t *testing.T) {
	sites := randomSites(30, 4, 100, 100)
	d, err := voronoi.Compute(sites,
		voronoi.WithBoundingBox(voronoi.NewBoundingBox(0, 100, 0, 100)))
	require.NoError(t, err)

	dist := func(a, b voronoi.Vertex) float64 {
		return math.Hypot(a.X-b.X, a.Y-b.Y)
	}

	for _, cell := range d.Cells {
		for _, v := range cell.Polygon() {
			// strictly inside the cell, near its boundary
			p := voronoi.Vertex{
				X: 0.3*cell.Site.X + 0.7*v.X,
				Y: 0.3*cell.Site.Y + 0.7*v.Y,
			}
			own := dist(p, cell.Site)
			for _, s := range sites {
				assert.LessOrEqual(t, own, dist(p, s)+1e-9)
			}
		}
	}
}

func TestOrderIndependence(t *testing.T) {
	sites := randomSites(30, 5, 100, 100)
	box := voronoi.NewBoundingBox(0, 100, 0, 100)

	d1, err := voronoi.Compute(sites, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(6))
	perm := rng.Perm(len(sites))
	shuffled := make([]voronoi.Vertex, len(sites))
	for i, j := range perm {
		shuffled[i] = sites[j]
	}

	d2, err := voronoi.Compute(shuffled, voronoi.WithBoundingBox(box))
	require.NoError(t, err)

	require.Len(t, d2.Cells, len(d1.Cells))
	for i, j := range perm {
		assert.InDelta(t, d1.CellForSite(j).Area(), d2.CellForSite(i).Area(), 1e-9)
	}

	require.Len(t, d2.Vertices, len(d1.Vertices))
	for i := range d1.Vertices {
		assert.InDelta(t, d1.Vertices[i].X, d2.Vertices[i].X, 1e-9)
		assert.InDelta(t, d1.Vertices[i].Y, d2.Vertices[i].Y, 1e-9)
	}
}
