// Package plot renders function slots into a raster image.
//
// Every call to Plotter.Render redraws the whole image: background, grid,
// axes, each non-empty function slot in slot order, and the trace marker.
package plot

import (
	"image"
	"image/color"
	"math"

	"github.com/fjl/giosci/internal/expr"
)

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	gridColor       = color.RGBA{225, 225, 225, 255}
	axisColor       = color.RGBA{90, 90, 90, 255}
	markerColor     = color.RGBA{20, 20, 20, 255}
	textColor       = color.RGBA{20, 20, 20, 255}

	// DefaultPalette assigns a color to each function slot by index.
	DefaultPalette = [NumSlots]color.RGBA{
		{220, 50, 47, 255},
		{38, 139, 210, 255},
		{133, 153, 0, 255},
		{211, 54, 130, 255},
		{203, 75, 22, 255},
	}
)

// MarkerRadius is the radius of the trace marker in pixels.
const MarkerRadius = 4

// Plotter draws graphs. The zero value is not usable; create one with New.
type Plotter struct {
	palette [NumSlots]color.RGBA
	cache   *SampleCache
	readout bool

	samples int // evaluator calls in the last render
}

// Option configures a Plotter.
type Option func(*Plotter)

// WithCache makes the plotter look up samples in c before evaluating.
func WithCache(c *SampleCache) Option {
	return func(p *Plotter) {
		p.cache = c
	}
}

// WithPalette sets the slot colors.
func WithPalette(palette [NumSlots]color.RGBA) Option {
	return func(p *Plotter) {
		p.palette = palette
	}
}

// WithReadout makes the plotter print the trace coordinates into the top
// left corner of the image.
func WithReadout() Option {
	return func(p *Plotter) {
		p.readout = true
	}
}

// New creates a plotter.
func New(options ...Option) *Plotter {
	p := &Plotter{palette: DefaultPalette}
	for _, option := range options {
		option(p)
	}
	return p
}

// Color returns the color of slot i.
func (p *Plotter) Color(i int) color.RGBA {
	return p.palette[i]
}

// Samples returns the number of evaluator calls made by the last Render.
func (p *Plotter) Samples() int {
	return p.samples
}

// Render draws the graph of slots within window w into dst. Trace may be nil.
// Rasters smaller than 2×2 pixels are only cleared.
func (p *Plotter) Render(dst *image.RGBA, slots Slots, w GraphWindow, trace *TraceState) error {
	if err := w.Validate(); err != nil {
		return err
	}
	p.samples = 0

	c := canvas{dst: dst}
	c.fill(backgroundColor)
	size := dst.Bounds().Size()
	if size.X < 2 || size.Y < 2 {
		return nil
	}
	vp := Viewport{Window: w, Width: size.X, Height: size.Y}

	p.drawGrid(c, vp)
	p.drawAxes(c, vp)
	for i, text := range slots {
		if text != "" {
			p.drawFunction(c, vp, text, p.palette[i])
		}
	}
	if trace != nil {
		p.drawTrace(c, vp, slots, *trace)
	}
	return nil
}

func (p *Plotter) drawGrid(c canvas, vp Viewport) {
	w := vp.Window
	// Skip grids denser than one line per pixel.
	if (w.XMax-w.XMin)/w.XScale <= float64(vp.Width) {
		for i := 0; ; i++ {
			x := w.XMin + float64(i)*w.XScale
			if x > w.XMax {
				break
			}
			col, _ := vp.Point(x, 0)
			c.vline(col, gridColor)
		}
	}
	if (w.YMax-w.YMin)/w.YScale <= float64(vp.Height) {
		for i := 0; ; i++ {
			y := w.YMin + float64(i)*w.YScale
			if y > w.YMax {
				break
			}
			_, row := vp.Point(0, y)
			c.hline(row, gridColor)
		}
	}
}

func (p *Plotter) drawAxes(c canvas, vp Viewport) {
	col, row := vp.Point(0, 0)
	if vp.Window.YMin <= 0 && 0 <= vp.Window.YMax {
		c.hline(row, axisColor)
	}
	if vp.Window.XMin <= 0 && 0 <= vp.Window.XMax {
		c.vline(col, axisColor)
	}
}

// drawFunction samples text once per pixel column and connects consecutive
// finite samples. A non-finite sample breaks the line.
func (p *Plotter) drawFunction(c canvas, vp Viewport, text string, col color.RGBA) {
	e, err := expr.Parse(text)
	if err != nil {
		return
	}
	var (
		prevRow  int
		havePrev bool
	)
	for px := 0; px < vp.Width; px++ {
		x := vp.Column(px)
		y := p.sample(e, x)
		if math.IsNaN(y) {
			havePrev = false
			continue
		}
		_, row := vp.Point(x, y)
		if havePrev {
			c.line(px-1, prevRow, px, row, col)
		} else {
			c.set(px, row, col)
		}
		prevRow, havePrev = row, true
	}
}

func (p *Plotter) sample(e *expr.Expr, x float64) float64 {
	if p.cache != nil {
		if v, ok := p.cache.Lookup(e.Text(), x); ok {
			return v
		}
	}
	p.samples++
	v := expr.Finite(e.Eval(x))
	if p.cache != nil {
		p.cache.Store(e.Text(), x, v)
	}
	return v
}

func (p *Plotter) drawTrace(c canvas, vp Viewport, slots Slots, t TraceState) {
	x, y, ok := TracePoint(slots, t.Clamp(vp.Window))
	if !ok {
		return
	}
	px, py := vp.ToPixel(x, y)
	c.circle(px, py, MarkerRadius, markerColor)
	if p.readout {
		text, _ := TraceReadout(slots, t.Clamp(vp.Window))
		c.text(4, 14, text, textColor)
	}
}
