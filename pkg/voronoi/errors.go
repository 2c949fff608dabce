package voronoi

import "github.com/cockroachdb/errors"

var (
	// ErrNoSites is returned when Compute receives an empty site list.
	// There is nothing to diagram and nothing to retry.
	ErrNoSites = errors.New("voronoi: no input sites")

	// ErrUnstable reports a structural invariant violation in the beachline
	// caused by predicate disagreement beyond the configured tolerance.
	// A broken diagram is worse than a refused one, so the construction run
	// is abandoned. The wrapped message carries the offending event and
	// sweep coordinate.
	ErrUnstable = errors.New("voronoi: numeric instability broke the beachline")
)
