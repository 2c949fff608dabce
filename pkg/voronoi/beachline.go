package voronoi

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// arc is a live section of the beach line: the part of the parabola of one
// site that currently bounds the swept region. An arc exists from the site
// event that creates it until the circle event that removes it. The edge
// field is the half-built diagram edge traced by the breakpoint on the
// arc's left.
//
// Tree and threading links are embedded directly: the beachline is hot
// enough that an indirection layer between node and payload costs more than
// it is worth.
type arc struct {
	site      Vertex
	siteIndex int
	cell      *Cell

	circle *event // pending circle event, nil when none is scheduled
	edge   *Edge

	parent, left, right *arc
	prev, next          *arc
	red                 bool
}

// leftBreakpoint returns the x coordinate of the breakpoint bounding a on
// the left, evaluated at the given directrix. The first arc is unbounded on
// its left.
func (b *builder) leftBreakpoint(a *arc, directrix float64) float64 {
	if a.site.Y == directrix {
		// the arc is a degenerate vertical ray at its own site
		return a.site.X
	}
	if a.prev == nil {
		return math.Inf(-1)
	}
	return parabolaIntersectX(a.prev.site, a.site, directrix)
}

// rightBreakpoint returns the x coordinate of the breakpoint bounding a on
// the right, evaluated at the given directrix.
func (b *builder) rightBreakpoint(a *arc, directrix float64) float64 {
	if a.next != nil {
		return b.leftBreakpoint(a.next, directrix)
	}
	if a.site.Y == directrix {
		return a.site.X
	}
	return math.Inf(1)
}

// insertArc locates the arc directly above the new site, splits it around a
// fresh arc for the site, opens the half-edge pair traced by the new
// breakpoints and reschedules circle events for the arcs whose neighborhood
// changed.
func (b *builder) insertArc(cell *Cell) error {
	site := cell.Site
	x := site.X
	directrix := site.Y
	eps := b.opts.Tolerance

	// descend the beachline comparing against breakpoints evaluated at the
	// current directrix
	var lArc, rArc *arc
	node := b.beach.root
	for node != nil {
		dxl := b.leftBreakpoint(node, directrix) - x
		if dxl > eps {
			// new site is left of this arc's left edge
			node = node.left
			continue
		}
		dxr := x - b.rightBreakpoint(node, directrix)
		if dxr > eps {
			// new site is right of this arc's right edge
			if node.right == nil {
				lArc = node
				break
			}
			node = node.right
			continue
		}
		switch {
		case dxl > -eps:
			// exactly on the arc's left edge
			lArc = node.prev
			rArc = node
		case dxr > -eps:
			// exactly on the arc's right edge
			lArc = node
			rArc = node.next
		default:
			// strictly inside the arc
			lArc = node
			rArc = node
		}
		break
	}

	newArc := &arc{site: site, siteIndex: cell.Index, cell: cell}
	b.beach.insertAfter(lArc, newArc)

	switch {
	case lArc == nil && rArc == nil:
		// first arc on the beachline
		return nil

	case lArc == rArc:
		// the new arc splits an existing one in two; one new transition
		// appears and both copies may later collapse
		b.invalidateCircle(lArc)

		rArc = &arc{site: lArc.site, siteIndex: lArc.siteIndex, cell: lArc.cell}
		b.beach.insertAfter(newArc, rArc)

		newArc.edge = b.createEdge(lArc.cell, newArc.cell, noVertex, noVertex)
		rArc.edge = newArc.edge

		b.scheduleCircle(lArc)
		b.scheduleCircle(rArc)
		return nil

	case rArc == nil:
		// new right-most arc: all previous arcs share the sweep coordinate
		newArc.edge = b.createEdge(lArc.cell, newArc.cell, noVertex, noVertex)
		return nil

	case lArc == nil:
		// cannot happen while sites are processed in (y, x) order: a new
		// arc always has a left neighbor unless the beachline was empty
		return errors.Wrapf(ErrUnstable,
			"site %d (%g,%g) landed left of the whole beachline at sweep y=%g",
			cell.Index, site.X, site.Y, directrix)

	default:
		// the new arc falls exactly on the breakpoint between two arcs:
		// that transition ends here, at the circumcenter of the three sites
		b.invalidateCircle(lArc)
		b.invalidateCircle(rArc)

		vertex, ok := circumcenter(lArc.site, site, rArc.site, eps)
		if !ok {
			return errors.Wrapf(ErrUnstable,
				"collapsing breakpoint between sites %d and %d has no circumcenter at sweep y=%g",
				lArc.siteIndex, rArc.siteIndex, directrix)
		}

		b.setEdgeStart(rArc.edge, lArc.cell, rArc.cell, vertex)

		newArc.edge = b.createEdge(lArc.cell, newArc.cell, noVertex, vertex)
		rArc.edge = b.createEdge(newArc.cell, rArc.cell, noVertex, vertex)

		b.scheduleCircle(lArc)
		b.scheduleCircle(rArc)
		return nil
	}
}

// removeArc handles a fired circle event: the arc vanishes at the
// circumcenter, the two breakpoints bounding it merge into one, and the
// neighbors' circle events are recomputed. Arcs whose pending circle events
// share the same vanish point (cocircular sites) collapse in the same pass,
// so the resulting vertex has one consistent coordinate no matter how many
// cells meet there.
func (b *builder) removeArc(a *arc, vanish Vertex) error {
	eps := b.opts.Tolerance

	if a.prev == nil || a.next == nil {
		return errors.Wrapf(ErrUnstable,
			"arc of site %d vanished at the beachline boundary near (%g,%g)",
			a.siteIndex, vanish.X, vanish.Y)
	}

	prev := a.prev
	next := a.next
	cluster := []*arc{a}
	b.detachArc(a)

	// collect every arc collapsing onto the same vertex, on both sides
	l := prev
	for l.circle != nil && eqEps(vanish.X, l.circle.center.X, eps) && eqEps(vanish.Y, l.circle.center.Y, eps) {
		prev = l.prev
		cluster = append([]*arc{l}, cluster...)
		b.detachArc(l)
		if prev == nil {
			return errors.Wrapf(ErrUnstable,
				"cocircular collapse at (%g,%g) consumed the left end of the beachline",
				vanish.X, vanish.Y)
		}
		l = prev
	}
	// the surviving left neighbor bounds the left-most disappearing
	// transition, so it joins the walk below
	cluster = append([]*arc{l}, cluster...)
	b.invalidateCircle(l)

	r := next
	for r.circle != nil && eqEps(vanish.X, r.circle.center.X, eps) && eqEps(vanish.Y, r.circle.center.Y, eps) {
		next = r.next
		cluster = append(cluster, r)
		b.detachArc(r)
		if next == nil {
			return errors.Wrapf(ErrUnstable,
				"cocircular collapse at (%g,%g) consumed the right end of the beachline",
				vanish.X, vanish.Y)
		}
		r = next
	}
	cluster = append(cluster, r)
	b.invalidateCircle(r)

	// every transition between consecutive cluster arcs ends at the vertex
	for i := 1; i < len(cluster); i++ {
		b.setEdgeStart(cluster[i].edge, cluster[i-1].cell, cluster[i].cell, vanish)
	}

	// the two surviving arcs are now adjacent: a new breakpoint, and with
	// it a new edge anchored at the vertex, starts between them
	first := cluster[0]
	last := cluster[len(cluster)-1]
	last.edge = b.createEdge(first.cell, last.cell, noVertex, vanish)

	b.scheduleCircle(first)
	b.scheduleCircle(last)
	return nil
}

// detachArc removes an arc from the beachline and invalidates its pending
// circle event.
func (b *builder) detachArc(a *arc) {
	b.invalidateCircle(a)
	b.beach.remove(a)
}

// scheduleCircle predicts the vanishing of a: if its neighbors' sites
// converge, a circle event is queued at the bottom of their circumscribed
// circle. Collinear or diverging triples schedule nothing; that is the
// normal "no vanishing" outcome, not an error.
func (b *builder) scheduleCircle(a *arc) {
	l := a.prev
	r := a.next
	if l == nil || r == nil {
		return
	}
	if l.site == r.site {
		// same site on both sides: the breakpoints never converge
		return
	}

	center, bottom, ok := circumcircle(l.site, a.site, r.site, b.opts.Tolerance)
	if !ok {
		return
	}

	ev := &event{
		kind:      circleEvent,
		y:         bottom,
		x:         center.X,
		siteIndex: a.siteIndex,
		arc:       a,
		center:    center,
	}
	a.circle = ev
	b.queue.push(ev)
	b.log.Debug("circle event scheduled",
		zap.Int("site", a.siteIndex),
		zap.Float64("x", center.X),
		zap.Float64("y", bottom))
}

// invalidateCircle lazily cancels the pending circle event of a, if any.
func (b *builder) invalidateCircle(a *arc) {
	if a.circle != nil {
		b.queue.invalidate(a.circle)
		a.circle = nil
	}
}
