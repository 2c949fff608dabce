// Package render rasterizes a diagram to PNG or SVG.
package render

import (
	"image/color"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/0x5EED/go-voronoi/pkg/voronoi"
)

// Draw paints the diagram onto a canvas sized to its bounding box: filled
// cell polygons, stroked edges and a dot per site. The vertical axis is
// flipped so the picture matches the diagram's screen coordinates.
func Draw(d *voronoi.Diagram) *canvas.Canvas {
	box := d.Box
	c := canvas.New(box.Width(), box.Height())
	ctx := canvas.NewContext(c)

	tx := func(v voronoi.Vertex) (float64, float64) {
		return v.X - box.Xl, box.Yb - v.Y
	}

	ctx.SetFillColor(color.RGBA{0x1f, 0x1f, 0x1f, 0xff})
	ctx.DrawPath(0, 0, canvas.Rectangle(box.Width(), box.Height()))

	for i, cell := range d.Cells {
		ring := cell.Polygon()
		if len(ring) < 3 {
			continue
		}
		p := &canvas.Path{}
		x, y := tx(ring[0])
		p.MoveTo(x, y)
		for _, v := range ring[1:] {
			x, y = tx(v)
			p.LineTo(x, y)
		}
		p.Close()
		ctx.SetFillColor(cellColor(i, len(d.Cells)))
		ctx.DrawPath(0, 0, p)
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(color.RGBA{0xd3, 0xd3, 0xd3, 0xff})
	ctx.SetStrokeWidth(box.Width() / 400)
	for _, e := range d.Edges {
		p := &canvas.Path{}
		x, y := tx(e.Va)
		p.MoveTo(x, y)
		x, y = tx(e.Vb)
		p.LineTo(x, y)
		ctx.DrawPath(0, 0, p)
	}

	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(color.RGBA{0x90, 0xee, 0x90, 0xff})
	r := box.Width() / 200
	for _, cell := range d.Cells {
		x, y := tx(cell.Site)
		ctx.DrawPath(x, y, canvas.Circle(r))
	}

	return c
}

// WriteFile draws the diagram and writes it to path. The format follows
// the file extension, .png and .svg both work.
func WriteFile(path string, d *voronoi.Diagram) error {
	if err := renderers.Write(path, Draw(d)); err != nil {
		return errors.Wrapf(err, "render: write %s", path)
	}
	return nil
}

// cellColor spreads cell fills over the hue circle so neighbors rarely
// share a color. Deterministic for a given cell count.
func cellColor(i, n int) color.RGBA {
	h := math.Mod(float64(i)*360.0/float64(n)+float64(i%2)*180, 360)
	return hsl(h, 0.35, 0.28)
}

func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 0xff,
	}
}
