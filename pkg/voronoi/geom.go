package voronoi

import "math"

// Vertex is a point of the plane. Input sites, diagram vertices and edge
// endpoints all share this type. The y axis grows downward, as on a raster:
// the sweep line moves from small y to large y.
type Vertex struct {
	X float64
	Y float64
}

// noVertex marks the missing endpoint of a half-built edge.
var noVertex = Vertex{math.Inf(1), math.Inf(1)}

func distance(a, b Vertex) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func eqEps(a, b, eps float64) bool { return math.Abs(a-b) < eps }
func ltEps(a, b, eps float64) bool { return b-a > eps }
func gtEps(a, b, eps float64) bool { return a-b > eps }

// parabolaIntersectX returns the x coordinate of the breakpoint between the
// arc of focus left and the arc of focus right, both evaluated against the
// given directrix. The breakpoint is the one where the left arc ends and the
// right arc begins in beachline order.
//
// The closed form solves the two parabola equations with the origin moved to
// the right focus; the arithmetic is kept in the shape that behaves best
// under finite precision.
func parabolaIntersectX(left, right Vertex, directrix float64) float64 {
	rfocx := right.X
	rfocy := right.Y
	pby2 := rfocy - directrix
	// degenerate: right focus sits on the directrix, its arc is a vertical ray
	if pby2 == 0 {
		return rfocx
	}
	lfocx := left.X
	lfocy := left.Y
	plby2 := lfocy - directrix
	if plby2 == 0 {
		return lfocx
	}
	hl := lfocx - rfocx
	aby2 := 1/pby2 - 1/plby2
	b := hl / plby2
	if aby2 != 0 {
		return (-b+math.Sqrt(b*b-2*aby2*(hl*hl/(-2*plby2)-lfocy+plby2/2+rfocy-pby2/2)))/aby2 + rfocx
	}
	// both foci are equidistant from the directrix: breakpoint is midway
	return (rfocx + lfocx) / 2
}

// circumcircle returns the circumcenter of the sites of three consecutive
// arcs and the y coordinate of the lowest point of the circumscribed circle,
// which is the sweep position at which the middle arc vanishes. ok is false
// when the triplet cannot converge: collinear within eps, or turning the
// wrong way, in which case the breakpoints diverge and no circle event
// exists.
func circumcircle(left, mid, right Vertex, eps float64) (center Vertex, bottomY float64, ok bool) {
	bx := mid.X
	by := mid.Y
	ax := left.X - bx
	ay := left.Y - by
	cx := right.X - bx
	cy := right.Y - by

	// The middle arc collapses only when left->mid->right turns
	// counterclockwise in screen coordinates. The slack shares the
	// configured tolerance with every other predicate; near-collinear
	// triples would otherwise put the circumcenter at infinity.
	d := 2 * (ax*cy - ay*cx)
	if d >= -2*eps {
		return noVertex, 0, false
	}

	ha := ax*ax + ay*ay
	hc := cx*cx + cy*cy
	x := (cy*ha - ay*hc) / d
	y := (ax*hc - cx*ha) / d

	center = Vertex{x + bx, y + by}
	bottomY = center.Y + math.Sqrt(x*x+y*y)
	return center, bottomY, true
}

// circumcenter is the plain three-point circumcenter, with the origin moved
// to a to limit cancellation. ok is false when the points are collinear
// within eps.
func circumcenter(a, b, c Vertex, eps float64) (Vertex, bool) {
	bx := b.X - a.X
	by := b.Y - a.Y
	cx := c.X - a.X
	cy := c.Y - a.Y
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < eps {
		return noVertex, false
	}
	hb := bx*bx + by*by
	hc := cx*cx + cy*cy
	return Vertex{(cy*hb-by*hc)/d + a.X, (bx*hc-cx*hb)/d + a.Y}, true
}
