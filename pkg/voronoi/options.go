package voronoi

import (
	"math"

	"github.com/0x5EED/go-voronoi/pkg/logger"
)

// BoundingBox is the clipping rectangle for the diagram. Xl and Xr are the
// left and right sides, Yt and Yb the top and bottom. Since y grows
// downward, Yt < Yb.
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// NewBoundingBox builds a bounding box from its four sides.
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.Xr - b.Xl }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Yb - b.Yt }

// Area returns the area of the box.
func (b BoundingBox) Area() float64 { return b.Width() * b.Height() }

// Options configures a construction run.
//
// Box       – explicit clipping rectangle; ignored unless DeriveBox is false.
// DeriveBox – derive the clipping rectangle from the site extent plus a
//             margin fraction (the default).
// Margin    – margin fraction applied on each side when deriving the box.
// Tolerance – ε used for degeneracy detection, duplicate collapsing and
//             border matching.
// OpenCells – leave cell boundaries open along the box instead of closing
//             them with border edges.
// Logger    – destination for per-event debug logging; nil means silent.
type Options struct {
	Box       BoundingBox
	DeriveBox bool
	Margin    float64
	Tolerance float64
	OpenCells bool
	Logger    *logger.Logger
}

// Option is a functional option for Compute.
type Option func(*Options)

// DefaultOptions returns the options Compute starts from: a derived
// bounding box with a 10% margin and a 1e-9 tolerance.
func DefaultOptions() Options {
	return Options{
		DeriveBox: true,
		Margin:    0.1,
		Tolerance: 1e-9,
	}
}

// WithBoundingBox sets an explicit clipping rectangle and disables
// derivation from the site extent.
func WithBoundingBox(box BoundingBox) Option {
	return func(o *Options) {
		o.Box = box
		o.DeriveBox = false
	}
}

// WithMargin sets the margin fraction used when the bounding box is derived
// from the site extent. Must be non-negative.
func WithMargin(frac float64) Option {
	return func(o *Options) {
		if frac < 0 || math.IsNaN(frac) {
			panic("voronoi: margin fraction must be non-negative")
		}
		o.Margin = frac
		o.DeriveBox = true
	}
}

// WithTolerance sets the ε used for degeneracy and duplicate detection.
// Must be positive.
func WithTolerance(eps float64) Option {
	return func(o *Options) {
		if eps <= 0 || math.IsNaN(eps) {
			panic("voronoi: tolerance must be positive")
		}
		o.Tolerance = eps
	}
}

// WithOpenCells skips the border-closing pass: cells keep only their site
// separating edges, leaving boundary gaps along the clipping box.
func WithOpenCells() Option {
	return func(o *Options) { o.OpenCells = true }
}

// WithLogger attaches a logger for per-event debug output.
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// deriveBox computes the clipping rectangle from the site extent plus a
// margin fraction on each side. Flat extents widen to one unit so a single
// site or a collinear row still gets a two-dimensional box.
func deriveBox(sites []Vertex, margin float64) BoundingBox {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range sites {
		minX = math.Min(minX, s.X)
		maxX = math.Max(maxX, s.X)
		minY = math.Min(minY, s.Y)
		maxY = math.Max(maxY, s.Y)
	}
	w := maxX - minX
	if w == 0 {
		w = 1
	}
	h := maxY - minY
	if h == 0 {
		h = 1
	}
	return BoundingBox{
		Xl: minX - margin*w,
		Xr: maxX + margin*w,
		Yt: minY - margin*h,
		Yb: maxY + margin*h,
	}
}
