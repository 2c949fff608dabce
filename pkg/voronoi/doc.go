// Package voronoi builds Voronoi diagrams with Fortune's sweep line
// algorithm in O(n log n).
//
// Coordinates follow the screen convention: y grows downward, the sweep
// line moves from top to bottom. The result is clipped to a bounding box,
// either given explicitly or derived from the site extent, and every cell
// comes back as a closed counterclockwise polygon unless open cells are
// requested.
//
//	diagram, err := voronoi.Compute(sites,
//		voronoi.WithBoundingBox(voronoi.NewBoundingBox(0, 100, 0, 100)))
//
// Construction is deterministic for a fixed input and tolerance, and a
// single Compute call confines all its state to the calling goroutine, so
// concurrent calls need no locking. The returned Diagram is read-only.
package voronoi
