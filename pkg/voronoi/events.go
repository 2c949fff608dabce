package voronoi

import "container/heap"

type eventKind uint8

const (
	siteEvent eventKind = iota
	circleEvent
)

// event is one entry of the sweep queue. A site event activates a new site
// when the sweep line reaches it; a circle event predicts the vanishing of
// an arc at the moment three sites become equidistant from a common point.
//
// Circle events are invalidated lazily: the entry stays in the heap with
// dead set and is discarded when popped. Site events are never invalidated.
type event struct {
	kind eventKind

	// ordering key: the sweep coordinate, then x for ties
	y float64
	x float64

	// site events
	site      Vertex
	siteIndex int // input index; reused by circle events for their arc's site

	// circle events
	arc    *arc   // the arc predicted to vanish
	center Vertex // circumcenter, the vertex-to-be
	dead   bool

	pos int // heap index
}

// eventQueue orders pending events by sweep coordinate.
//
// Tie-break convention, applied consistently and pinned by tests: at equal
// sweep coordinate a site event fires before a circle event; equal-kind
// ties order by x, then by site index. For sites, x must take precedence
// over the index: sites sharing a sweep coordinate have to enter the
// beachline left to right or the single-sided insertion case breaks. The
// index only decides between exact coordinate ties, for reproducibility.
type eventQueue struct {
	items []*event
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.y != b.y {
		return a.y < b.y
	}
	if a.kind != b.kind {
		return a.kind == siteEvent
	}
	if a.x != b.x {
		return a.x < b.x
	}
	return a.siteIndex < b.siteIndex
}

func (q *eventQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].pos = i
	q.items[j].pos = j
}

func (q *eventQueue) Push(x any) {
	ev := x.(*event)
	ev.pos = len(q.items)
	q.items = append(q.items, ev)
}

func (q *eventQueue) Pop() any {
	old := q.items
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return ev
}

func (q *eventQueue) push(ev *event) { heap.Push(q, ev) }

// popMin removes and returns the lowest-ordered live event, discarding
// invalidated entries on the way. Returns nil once the queue is drained.
func (q *eventQueue) popMin() *event {
	for q.Len() > 0 {
		ev := heap.Pop(q).(*event)
		if !ev.dead {
			return ev
		}
	}
	return nil
}

// invalidate marks an event dead without touching the heap shape.
func (q *eventQueue) invalidate(ev *event) {
	if ev != nil {
		ev.dead = true
	}
}
