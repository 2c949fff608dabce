package voronoi

import (
	"github.com/cockroachdb/errors"
)

// connectEdge extends an edge with a missing second endpoint until it meets
// the bounding box. The direction follows the perpendicular bisector of the
// edge's two sites; which way along it is decided by which cell lies left.
// Returns false if the bisector misses the box entirely.
func connectEdge(e *Edge, box BoundingBox, eps float64) bool {
	vb := e.Vb
	if vb != noVertex {
		return true
	}

	va := e.Va
	xl, xr, yt, yb := box.Xl, box.Xr, box.Yt, box.Yb
	lSite := e.LeftCell.Site
	rSite := e.RightCell.Site
	fx := (lSite.X + rSite.X) / 2
	fy := (lSite.Y + rSite.Y) / 2

	var fm, fb float64
	vertical := eqEps(rSite.Y, lSite.Y, eps)
	if !vertical {
		fm = (lSite.X - rSite.X) / (rSite.Y - lSite.Y)
		fb = fy - fm*fx
	}

	switch {
	case vertical:
		if fx < xl || fx >= xr {
			return false
		}
		if lSite.X > rSite.X {
			// downward
			if va == noVertex {
				va = Vertex{fx, yt}
			} else if va.Y >= yb {
				return false
			}
			vb = Vertex{fx, yb}
		} else {
			// upward
			if va == noVertex {
				va = Vertex{fx, yb}
			} else if va.Y < yt {
				return false
			}
			vb = Vertex{fx, yt}
		}

	case fm < -1 || fm > 1:
		// closer to vertical: intersect the top and bottom sides
		if lSite.X > rSite.X {
			if va == noVertex {
				va = Vertex{(yt - fb) / fm, yt}
			} else if va.Y >= yb {
				return false
			}
			vb = Vertex{(yb - fb) / fm, yb}
		} else {
			if va == noVertex {
				va = Vertex{(yb - fb) / fm, yb}
			} else if va.Y < yt {
				return false
			}
			vb = Vertex{(yt - fb) / fm, yt}
		}

	default:
		// closer to horizontal: intersect the left and right sides
		if lSite.Y < rSite.Y {
			// rightward
			if va == noVertex {
				va = Vertex{xl, fm*xl + fb}
			} else if va.X >= xr {
				return false
			}
			vb = Vertex{xr, fm*xr + fb}
		} else {
			// leftward
			if va == noVertex {
				va = Vertex{xr, fm*xr + fb}
			} else if va.X < xl {
				return false
			}
			vb = Vertex{xl, fm*xl + fb}
		}
	}

	e.Va = va
	e.Vb = vb
	return true
}

// clipEdge trims an edge to the bounding box with the Liang-Barsky
// parametric test. Returns false when the edge lies fully outside.
func clipEdge(e *Edge, box BoundingBox) bool {
	ax, ay := e.Va.X, e.Va.Y
	bx, by := e.Vb.X, e.Vb.Y
	t0, t1 := 0.0, 1.0
	dx := bx - ax
	dy := by - ay

	// left
	q := ax - box.Xl
	if dx == 0 && q < 0 {
		return false
	}
	r := -q / dx
	if dx < 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	} else if dx > 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	}

	// right
	q = box.Xr - ax
	if dx == 0 && q < 0 {
		return false
	}
	r = q / dx
	if dx < 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	} else if dx > 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	}

	// top
	q = ay - box.Yt
	if dy == 0 && q < 0 {
		return false
	}
	r = -q / dy
	if dy < 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	} else if dy > 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	}

	// bottom
	q = box.Yb - ay
	if dy == 0 && q < 0 {
		return false
	}
	r = q / dy
	if dy < 0 {
		if r > t1 {
			return false
		}
		if r > t0 {
			t0 = r
		}
	} else if dy > 0 {
		if r < t0 {
			return false
		}
		if r < t1 {
			t1 = r
		}
	}

	if t0 > 0 {
		e.Va = Vertex{ax + t0*dx, ay + t0*dy}
	}
	if t1 < 1 {
		e.Vb = Vertex{ax + t1*dx, ay + t1*dy}
	}
	return true
}

// clipEdges connects every dangling edge to the bounding box, trims all
// edges to it, and drops the edges that end up outside or collapse to a
// point. Surviving order is not meaningful; removal swaps from the tail.
func (b *builder) clipEdges(box BoundingBox) {
	eps := b.opts.Tolerance
	for i := len(b.edges) - 1; i >= 0; i-- {
		e := b.edges[i]
		if !connectEdge(e, box, eps) || !clipEdge(e, box) ||
			(eqEps(e.Va.X, e.Vb.X, eps) && eqEps(e.Va.Y, e.Vb.Y, eps)) {
			e.Va = noVertex
			e.Vb = noVertex
			b.edges[i] = b.edges[len(b.edges)-1]
			b.edges = b.edges[:len(b.edges)-1]
		}
	}
}

// closeCells walks each cell's half-edges and fills every gap along the
// bounding box with border edges, so every cell becomes a closed polygon.
// The walk around the border runs left side down, bottom side right, right
// side up, top side left, matching counterclockwise orientation with y
// growing downward.
func (b *builder) closeCells(box BoundingBox) error {
	for _, cell := range b.cells {
		if cell.prepare() == 0 {
			if len(b.cells) == 1 {
				// a lone site owns the whole box
				b.surroundCell(cell, box)
			}
			continue
		}

		for i := 0; i < len(cell.Halfedges); i++ {
			end := cell.Halfedges[i].End()
			start := cell.Halfedges[(i+1)%len(cell.Halfedges)].Start()
			if eqEps(end.X, start.X, b.opts.Tolerance) && eqEps(end.Y, start.Y, b.opts.Tolerance) {
				continue
			}

			// bridge the gap along the border, one side per step
			va := end
			at := i
			for steps := 0; ; steps++ {
				if steps > 4 {
					return errors.Wrapf(ErrUnstable,
						"cell %d cannot be closed: border walk from (%g,%g) never reaches (%g,%g)",
						cell.Index, end.X, end.Y, start.X, start.Y)
				}
				vb, done, ok := nextBorderStop(va, start, box, b.opts.Tolerance)
				if !ok {
					return errors.Wrapf(ErrUnstable,
						"cell %d has a dangling endpoint (%g,%g) off the bounding box",
						cell.Index, va.X, va.Y)
				}
				edge := b.createBorderEdge(cell, va, vb)
				at++
				cell.insertHalfedge(at, newHalfedge(edge, cell, nil))
				if done {
					break
				}
				va = vb
			}
			i = at
		}
	}
	return nil
}

// nextBorderStop advances one step along the box border from va toward vz.
// done reports that vz was reached; ok is false when va does not lie on the
// border at all.
func nextBorderStop(va, vz Vertex, box BoundingBox, eps float64) (vb Vertex, done, ok bool) {
	switch {
	case eqEps(va.X, box.Xl, eps) && ltEps(va.Y, box.Yb, eps):
		// left side, walking down
		if eqEps(vz.X, box.Xl, eps) && vz.Y > va.Y-eps {
			return vz, true, true
		}
		return Vertex{box.Xl, box.Yb}, false, true

	case eqEps(va.Y, box.Yb, eps) && ltEps(va.X, box.Xr, eps):
		// bottom side, walking right
		if eqEps(vz.Y, box.Yb, eps) && vz.X > va.X-eps {
			return vz, true, true
		}
		return Vertex{box.Xr, box.Yb}, false, true

	case eqEps(va.X, box.Xr, eps) && gtEps(va.Y, box.Yt, eps):
		// right side, walking up
		if eqEps(vz.X, box.Xr, eps) && vz.Y < va.Y+eps {
			return vz, true, true
		}
		return Vertex{box.Xr, box.Yt}, false, true

	case eqEps(va.Y, box.Yt, eps) && gtEps(va.X, box.Xl, eps):
		// top side, walking left
		if eqEps(vz.Y, box.Yt, eps) && vz.X < va.X+eps {
			return vz, true, true
		}
		return Vertex{box.Xl, box.Yt}, false, true
	}
	return noVertex, false, false
}

// surroundCell rings a cell with the four sides of the bounding box. Used
// when a single site leaves no bisector at all.
func (b *builder) surroundCell(cell *Cell, box BoundingBox) {
	corners := []Vertex{
		{box.Xl, box.Yt},
		{box.Xl, box.Yb},
		{box.Xr, box.Yb},
		{box.Xr, box.Yt},
	}
	for i := range corners {
		edge := b.createBorderEdge(cell, corners[i], corners[(i+1)%4])
		cell.Halfedges = append(cell.Halfedges, newHalfedge(edge, cell, nil))
	}
	cell.prepare()
}
