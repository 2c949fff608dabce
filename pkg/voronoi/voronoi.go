package voronoi

import (
	"math"

	"go.uber.org/zap"

	"github.com/0x5EED/go-voronoi/pkg/logger"
)

// builder holds the transient state of one construction run: the event
// queue, the beachline and the half-built cells and edges. A builder is
// single-use and confined to the goroutine that called Compute.
type builder struct {
	opts Options
	log  *logger.Logger

	cells []*Cell
	edges []*Edge

	beach beachTree
	queue eventQueue

	// aliases maps duplicate input indexes to the canonical index whose
	// cell they share
	aliases map[int]int
}

// Compute runs the sweep over the given sites and returns the finished
// diagram clipped to the bounding box. The input slice is not modified and
// site order does not affect the geometry, only the Index assignment of
// coincident duplicates.
//
// Returns ErrNoSites for an empty input and a wrapped ErrUnstable if the
// beachline predicates disagree beyond the configured tolerance.
func Compute(sites []Vertex, opts ...Option) (*Diagram, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(sites) == 0 {
		return nil, ErrNoSites
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.DeriveBox {
		o.Box = deriveBox(sites, o.Margin)
	}

	b := &builder{
		opts:    o,
		log:     o.Logger,
		aliases: make(map[int]int),
	}

	for i, s := range sites {
		b.queue.push(&event{kind: siteEvent, y: s.Y, x: s.X, site: s, siteIndex: i})
	}

	accepted := newSiteGrid(o.Tolerance)

	for ev := b.queue.popMin(); ev != nil; ev = b.queue.popMin() {
		if ev.kind == siteEvent {
			// a site coincident with any already-accepted site collapses
			// into that site's cell, whatever the queue order in between
			if canon, dup := accepted.lookup(ev.site); dup {
				b.aliases[ev.siteIndex] = canon
				b.log.Warn("duplicate site collapsed",
					zap.Int("site", ev.siteIndex),
					zap.Int("into", canon))
				continue
			}
			accepted.insert(ev.site, ev.siteIndex)

			cell := newCell(ev.site, ev.siteIndex)
			b.cells = append(b.cells, cell)
			b.log.Debug("site event",
				zap.Int("site", ev.siteIndex),
				zap.Float64("x", ev.site.X),
				zap.Float64("y", ev.site.Y))

			if err := b.insertArc(cell); err != nil {
				return nil, err
			}
			continue
		}

		b.log.Debug("circle event",
			zap.Int("site", ev.siteIndex),
			zap.Float64("x", ev.center.X),
			zap.Float64("y", ev.center.Y))
		if err := b.removeArc(ev.arc, ev.center); err != nil {
			return nil, err
		}
	}

	b.clipEdges(o.Box)
	if o.OpenCells {
		for _, cell := range b.cells {
			cell.prepare()
		}
	} else if err := b.closeCells(o.Box); err != nil {
		return nil, err
	}

	d := b.assemble()
	b.log.Info("diagram assembled",
		zap.Int("cells", len(d.Cells)),
		zap.Int("edges", len(d.Edges)),
		zap.Int("vertices", len(d.Vertices)))
	return d, nil
}

// siteGrid answers "is there an accepted site within ε of this point" in
// O(1) per query by hashing sites into ε-sized buckets. A hit can only sit
// in the point's own bucket or one of the eight around it.
type siteGrid struct {
	eps     float64
	buckets map[[2]int64][]gridSite
}

type gridSite struct {
	site  Vertex
	index int
}

func newSiteGrid(eps float64) *siteGrid {
	return &siteGrid{eps: eps, buckets: make(map[[2]int64][]gridSite)}
}

func (g *siteGrid) key(p Vertex) [2]int64 {
	return [2]int64{int64(math.Floor(p.X / g.eps)), int64(math.Floor(p.Y / g.eps))}
}

func (g *siteGrid) insert(p Vertex, index int) {
	k := g.key(p)
	g.buckets[k] = append(g.buckets[k], gridSite{site: p, index: index})
}

// lookup returns the index of an accepted site within ε of p, if any.
func (g *siteGrid) lookup(p Vertex) (int, bool) {
	k := g.key(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, s := range g.buckets[[2]int64{k[0] + dx, k[1] + dy}] {
				if eqEps(p.X, s.site.X, g.eps) && eqEps(p.Y, s.site.Y, g.eps) {
					return s.index, true
				}
			}
		}
	}
	return 0, false
}

// createEdge opens a new edge between two cells and registers a half-edge
// on each. Endpoints equal to noVertex stay unset until the sweep or the
// clipper pins them down.
func (b *builder) createEdge(left, right *Cell, va, vb Vertex) *Edge {
	e := newEdge(left, right)
	b.edges = append(b.edges, e)
	if va != noVertex {
		b.setEdgeStart(e, left, right, va)
	}
	if vb != noVertex {
		b.setEdgeEnd(e, left, right, vb)
	}
	left.Halfedges = append(left.Halfedges, newHalfedge(e, left, right))
	right.Halfedges = append(right.Halfedges, newHalfedge(e, right, left))
	return e
}

// createBorderEdge opens an edge lying on the clipping box. Border edges
// bound a single cell; the outside has no owner.
func (b *builder) createBorderEdge(cell *Cell, va, vb Vertex) *Edge {
	e := newEdge(cell, nil)
	e.Va = va
	e.Vb = vb
	b.edges = append(b.edges, e)
	return e
}

// setEdgeStart pins v as the endpoint of e on the side where left sits.
// The first endpoint to arrive also fixes the edge orientation.
func (b *builder) setEdgeStart(e *Edge, left, right *Cell, v Vertex) {
	if e.Va == noVertex && e.Vb == noVertex {
		e.Va = v
		e.LeftCell = left
		e.RightCell = right
		return
	}
	if e.LeftCell == right {
		e.Vb = v
		return
	}
	e.Va = v
}

func (b *builder) setEdgeEnd(e *Edge, left, right *Cell, v Vertex) {
	b.setEdgeStart(e, right, left, v)
}
