package main

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// grid lays out widgets in an equally-spaced grid.
type grid struct {
	rows, cols int
	spacing    int
}

type gridWidget func(int, int, C) D

// layout places the grid elements by calling widget for each row/column. This only really
// works well if spacing is non-zero because the cells are placed at integer coordinates.
// The grid will look slighly uneven with too little spacing.
func (g *grid) layout(gtx C, widget gridWidget) D {
	var (
		size  = gtx.Constraints.Max
		w, h  = float32(size.X), float32(size.Y)
		space = float32(g.spacing)
	)
	if g.cols > 0 {
		w = (w - float32(g.cols-1)*space) / float32(g.cols)
	}
	if g.rows > 0 {
		h = (h - float32(g.rows-1)*space) / float32(g.rows)
	}

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			pos := image.Point{
				X: int(float32(col)*w + float32(col)*space),
				Y: int(float32(row)*h + float32(row)*space),
			}
			cellgtx := gtx
			cellgtx.Constraints = layout.Exact(image.Pt(int(w), int(h)))
			stk := op.Offset(pos).Push(gtx.Ops)
			widget(row, col, cellgtx)
			stk.Pop()
		}
	}
	return D{Size: size}
}

// shrinkToFit renders w, scaling down if it doesn't fit into the available width.
func shrinkToFit(gtx C, w layout.Widget) D {
	// Render w with near-infinite width.
	macro := op.Record(gtx.Ops)
	wide := gtx
	wide.Constraints.Max.X = 10e6
	dim := w(wide)
	call := macro.Stop()

	// Scale down if it exceeds the available space.
	if dim.Size.X > gtx.Constraints.Max.X {
		scale := float32(gtx.Constraints.Max.X) / float32(dim.Size.X)
		origin := f32.Pt(0, float32(gtx.Constraints.Max.Y))
		tr := f32.Affine2D{}.Scale(origin, f32.Pt(scale, scale))
		defer op.Affine(tr).Push(gtx.Ops).Pop()
	}
	call.Add(gtx.Ops)
	return D{Size: gtx.Constraints.Max}
}
