package main

import (
	"fmt"
	"image"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	log "github.com/sirupsen/logrus"

	"github.com/fjl/giosci/internal/calc"
	"github.com/fjl/giosci/internal/plot"
)

// sampleCacheSize bounds the memoized function samples.
const sampleCacheSize = 1 << 16

// graphKey identifies the inputs of a rendered graph.
type graphKey struct {
	size   image.Point
	slots  plot.Slots
	window plot.GraphWindow
	trace  plot.TraceState
}

// graphView shows the function graph and the slot editors.
type graphView struct {
	plotter *plot.Plotter
	cache   *plot.SampleCache
	editors [plot.NumSlots]widget.Editor
	shown   plot.Slots // slot texts last copied into the editors

	img      paint.ImageOp
	rendered graphKey
	valid    bool
}

func newGraphView(th *calcTheme) *graphView {
	cache := plot.NewSampleCache(sampleCacheSize)
	g := &graphView{
		cache:   cache,
		plotter: plot.New(plot.WithCache(cache), plot.WithPalette(th.Color.Slots), plot.WithReadout()),
	}
	for i := range g.editors {
		g.editors[i] = widget.Editor{SingleLine: true, Submit: true, InputHint: key.HintText}
	}
	return g
}

// update processes editor submissions and returns the resulting tokens.
func (g *graphView) update() []calc.Token {
	var toks []calc.Token
	for i := range g.editors {
		for _, e := range g.editors[i].Events() {
			if e, ok := e.(widget.SubmitEvent); ok {
				toks = append(toks, calc.SelectSlot(i), calc.CommitSlot(i, e.Text))
			}
		}
	}
	return toks
}

// editing reports whether a slot editor has keyboard focus.
func (g *graphView) editing() bool {
	for i := range g.editors {
		if g.editors[i].Focused() {
			return true
		}
	}
	return false
}

// syncEditors copies slot texts that changed in the calculator into the
// editors.
func (g *graphView) syncEditors(slots plot.Slots) {
	for i := range slots {
		if slots[i] != g.shown[i] && g.editors[i].Text() != slots[i] {
			g.editors[i].SetText(slots[i])
		}
	}
	g.shown = slots
}

// layoutGraph draws the plot, rendering it again when its inputs changed.
func (g *graphView) layoutGraph(gtx C, st calc.State) D {
	size := gtx.Constraints.Max
	if size.X <= 0 || size.Y <= 0 {
		return D{Size: size}
	}
	trace := st.Trace()
	k := graphKey{size: size, slots: st.Slots(), window: st.Window(), trace: trace}
	if !g.valid || k != g.rendered {
		dst := image.NewRGBA(image.Rectangle{Max: size})
		var tp *plot.TraceState
		if trace.Enabled {
			tp = &trace
		}
		if err := g.plotter.Render(dst, k.slots, k.window, tp); err != nil {
			log.WithError(err).Warn("can't render graph")
		}
		g.img = paint.NewImageOp(dst)
		g.rendered, g.valid = k, true
		hits, misses := g.cache.Stats()
		log.WithFields(log.Fields{"size": size, "hits": hits, "misses": misses}).Debug("graph rendered")
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	g.img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return D{Size: size}
}

// layoutEditors draws the function slot editors.
func (g *graphView) layoutEditors(gtx C, th *calcTheme, st calc.State) D {
	children := make([]layout.FlexChild, 0, len(g.editors))
	for i := range g.editors {
		i := i
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.Inset{Bottom: th.Size.Spacing / 2}.Layout(gtx, func(gtx C) D {
				return g.layoutSlot(gtx, th, st, i)
			})
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (g *graphView) layoutSlot(gtx C, th *calcTheme, st calc.State, i int) D {
	trace := st.Trace()
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			// Slot label in the slot's plot color.
			l := th.StatusLabel(fmt.Sprintf("f%d", i+1))
			c := g.plotter.Color(i)
			l.Color.R, l.Color.G, l.Color.B, l.Color.A = c.R, c.G, c.B, 255
			if trace.Enabled && trace.Active == i {
				l.Text += "•"
			}
			gtx.Constraints.Min.X = gtx.Dp(th.Size.Spacing * 5)
			return layout.Inset{Right: th.Size.Spacing}.Layout(gtx, l.Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			ed := th.Editor(&g.editors[i], "y = ")
			return ed.Layout(gtx)
		}),
	)
}
