package voronoi

import (
	"math"
	"sort"
)

// Edge is one finished Voronoi edge: the clipped segment of the bisector
// between the sites of LeftCell and RightCell. Border edges added while
// closing cells lie on the bounding box and carry a nil RightCell.
type Edge struct {
	LeftCell  *Cell
	RightCell *Cell
	Va, Vb    Vertex
}

func newEdge(left, right *Cell) *Edge {
	return &Edge{LeftCell: left, RightCell: right, Va: noVertex, Vb: noVertex}
}

// Halfedge is a cell's directed view of an edge. Walking a cell's half-edges
// in order traces the cell polygon counterclockwise (in screen coordinates,
// with y growing downward). Twin is the same edge seen from the other side;
// for border edges the twin faces the outside and belongs to no cell.
type Halfedge struct {
	Cell  *Cell
	Edge  *Edge
	Angle float64

	Twin, Next, Prev *Halfedge
}

func newHalfedge(e *Edge, cell, other *Cell) *Halfedge {
	he := &Halfedge{Cell: cell, Edge: e}
	if other != nil {
		// interior edge: sort by the direction toward the neighbor site
		he.Angle = math.Atan2(other.Site.Y-cell.Site.Y, other.Site.X-cell.Site.X)
	} else {
		// border edge: perpendicular of the segment direction
		va, vb := e.Va, e.Vb
		if e.LeftCell == cell {
			he.Angle = math.Atan2(vb.X-va.X, va.Y-vb.Y)
		} else {
			he.Angle = math.Atan2(va.X-vb.X, vb.Y-va.Y)
		}
	}
	return he
}

// Start returns the endpoint of the underlying edge that the cell's
// counterclockwise walk departs from.
func (he *Halfedge) Start() Vertex {
	if he.Edge.LeftCell == he.Cell {
		return he.Edge.Va
	}
	return he.Edge.Vb
}

// End returns the endpoint the walk arrives at.
func (he *Halfedge) End() Vertex {
	if he.Edge.LeftCell == he.Cell {
		return he.Edge.Vb
	}
	return he.Edge.Va
}

// Cell is the region of the plane closer to its site than to any other.
// Index is the position of the site in the input slice; SiteIndexes also
// lists the indexes of coincident duplicates collapsed into this cell.
type Cell struct {
	Site        Vertex
	Index       int
	SiteIndexes []int
	Halfedges   []*Halfedge
}

func newCell(site Vertex, index int) *Cell {
	return &Cell{Site: site, Index: index}
}

// prepare drops half-edges whose edge was discarded by clipping and orders
// the rest counterclockwise around the site. Returns the surviving count.
func (c *Cell) prepare() int {
	for i := len(c.Halfedges) - 1; i >= 0; i-- {
		e := c.Halfedges[i].Edge
		if e.Va == noVertex || e.Vb == noVertex {
			c.Halfedges[i] = c.Halfedges[len(c.Halfedges)-1]
			c.Halfedges = c.Halfedges[:len(c.Halfedges)-1]
		}
	}
	sort.Slice(c.Halfedges, func(i, j int) bool {
		return c.Halfedges[i].Angle > c.Halfedges[j].Angle
	})
	return len(c.Halfedges)
}

func (c *Cell) insertHalfedge(i int, he *Halfedge) {
	c.Halfedges = append(c.Halfedges, nil)
	copy(c.Halfedges[i+1:], c.Halfedges[i:])
	c.Halfedges[i] = he
}

// Polygon returns the cell boundary as a closed counterclockwise ring of
// vertices, one per half-edge, without repeating the first vertex.
func (c *Cell) Polygon() []Vertex {
	ring := make([]Vertex, len(c.Halfedges))
	for i, he := range c.Halfedges {
		ring[i] = he.Start()
	}
	return ring
}

// Area returns the polygon area of the cell via the shoelace formula.
func (c *Cell) Area() float64 {
	ring := c.Polygon()
	var sum float64
	for i, v := range ring {
		w := ring[(i+1)%len(ring)]
		sum += v.X*w.Y - w.X*v.Y
	}
	return math.Abs(sum) / 2
}

// Diagram is the finished Voronoi diagram: one cell per distinct site, the
// clipped edges, the per-cell half-edges and the interior vertices, all
// confined to Box.
type Diagram struct {
	Cells     []*Cell
	Edges     []*Edge
	Halfedges []*Halfedge
	Vertices  []Vertex
	Box       BoundingBox

	bySite map[int]*Cell
}

// CellForSite returns the cell owning the site at the given input index.
// Indexes of collapsed duplicates resolve to their shared cell. Returns nil
// for an out-of-range index.
func (d *Diagram) CellForSite(i int) *Cell {
	return d.bySite[i]
}

// assemble freezes the builder state into a Diagram: cells sorted back into
// input order, duplicate indexes resolved, twin half-edges linked and
// interior vertices collected.
func (b *builder) assemble() *Diagram {
	d := &Diagram{
		Cells:  b.cells,
		Edges:  b.edges,
		Box:    b.opts.Box,
		bySite: make(map[int]*Cell, len(b.cells)+len(b.aliases)),
	}

	sort.Slice(d.Cells, func(i, j int) bool {
		return d.Cells[i].Index < d.Cells[j].Index
	})
	for _, cell := range d.Cells {
		cell.SiteIndexes = []int{cell.Index}
		d.bySite[cell.Index] = cell
	}
	for dup, canon := range b.aliases {
		cell := d.bySite[canon]
		cell.SiteIndexes = append(cell.SiteIndexes, dup)
		d.bySite[dup] = cell
	}
	for _, cell := range d.Cells {
		sort.Ints(cell.SiteIndexes)
	}

	// pair half-edges of shared edges as twins; give the rest an outside
	// twin so Twin is never nil
	byEdge := make(map[*Edge]*Halfedge, len(d.Edges))
	for _, cell := range d.Cells {
		n := len(cell.Halfedges)
		for i, he := range cell.Halfedges {
			he.Next = cell.Halfedges[(i+1)%n]
			he.Prev = cell.Halfedges[(i+n-1)%n]
			if other, ok := byEdge[he.Edge]; ok {
				he.Twin = other
				other.Twin = he
			} else {
				byEdge[he.Edge] = he
			}
			d.Halfedges = append(d.Halfedges, he)
		}
	}
	for _, he := range d.Halfedges {
		if he.Twin == nil {
			he.Twin = &Halfedge{Edge: he.Edge, Twin: he}
		}
	}

	// an interior vertex is where at least two bisector edges meet; border
	// edge endpoints and lone box crossings stay out
	counts := make(map[Vertex]int)
	for _, e := range d.Edges {
		if e.RightCell == nil {
			continue
		}
		counts[e.Va]++
		counts[e.Vb]++
	}
	for v, n := range counts {
		if n >= 2 {
			d.Vertices = append(d.Vertices, v)
		}
	}
	sort.Slice(d.Vertices, func(i, j int) bool {
		if d.Vertices[i].Y != d.Vertices[j].Y {
			return d.Vertices[i].Y < d.Vertices[j].Y
		}
		return d.Vertices[i].X < d.Vertices[j].X
	})

	return d
}
