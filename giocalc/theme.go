package main

import (
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fjl/giosci/internal/keypad"
	"github.com/fjl/giosci/internal/plot"
)

// calcTheme defines the calculator style.
type calcTheme struct {
	*material.Theme

	Color struct {
		Background  color.NRGBA
		Display     color.NRGBA
		DisplayText color.NRGBA
		FormulaText color.NRGBA
		Indicator   color.NRGBA
		Error       color.NRGBA
		Digit       color.NRGBA
		Function    color.NRGBA
		Operator    color.NRGBA
		ActiveOp    color.NRGBA
		Control     color.NRGBA
		Graph       color.NRGBA
		ActiveGraph color.NRGBA
		EditorBG    color.NRGBA
		EditorText  color.NRGBA
		HintText    color.NRGBA
		Slots       [plot.NumSlots]color.RGBA // function plot colors
	}
	Size struct {
		DesignWidth  unit.Dp
		DesignHeight unit.Dp
		GraphHeight  unit.Dp
		CornerRadius unit.Dp
		Spacing      unit.Dp
		Formula      unit.Sp
		Status       unit.Sp
		Editor       unit.Sp
	}
	Pad struct {
		Main   layout.Inset
		Editor layout.Inset
	}
}

func newCalcTheme() *calcTheme {
	th := &calcTheme{Theme: material.NewTheme()}
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	// Colors.
	th.Color.Background = color.NRGBA{50, 50, 50, 255}
	th.Color.Display = color.NRGBA{35, 35, 35, 255}
	th.Color.DisplayText = color.NRGBA{255, 255, 255, 255}
	th.Color.FormulaText = color.NRGBA{170, 170, 170, 255}
	th.Color.Indicator = color.NRGBA{240, 190, 90, 255}
	th.Color.Error = color.NRGBA{255, 119, 119, 255}
	th.Color.Digit = color.NRGBA{90, 90, 90, 255}
	th.Color.Function = color.NRGBA{80, 90, 110, 255}
	th.Color.Operator = color.NRGBA{122, 90, 90, 255}
	th.Color.ActiveOp = color.NRGBA{160, 90, 90, 255}
	th.Color.Control = color.NRGBA{70, 70, 70, 255}
	th.Color.Graph = color.NRGBA{70, 95, 80, 255}
	th.Color.ActiveGraph = color.NRGBA{90, 140, 105, 255}
	th.Color.EditorBG = color.NRGBA{255, 255, 255, 18}
	th.Color.EditorText = color.NRGBA{235, 235, 235, 255}
	th.Color.HintText = color.NRGBA{120, 120, 120, 255}
	th.Color.Slots = [plot.NumSlots]color.RGBA{
		{214, 69, 65, 255},
		{52, 120, 190, 255},
		{64, 150, 90, 255},
		{190, 110, 30, 255},
		{140, 80, 170, 255},
	}

	// Sizes.
	th.Size.DesignWidth = 360
	th.Size.DesignHeight = 520
	th.Size.GraphHeight = 260
	th.Size.CornerRadius = 3.5
	th.Size.Spacing = 6
	th.Size.Formula = 14
	th.Size.Status = 12
	th.Size.Editor = 16

	// Padding.
	th.Pad.Main = layout.UniformInset(th.Size.Spacing)
	th.Pad.Editor = layout.Inset{
		Top:    unit.Dp(4),
		Bottom: unit.Dp(4),
		Left:   unit.Dp(8),
		Right:  unit.Dp(8),
	}
	return th
}

// keyColor returns the background color of a keypad key.
func (th *calcTheme) keyColor(class keypad.Class, active bool) color.NRGBA {
	switch class {
	case keypad.ClassDigit:
		return th.Color.Digit
	case keypad.ClassFunction:
		return th.Color.Function
	case keypad.ClassOperator:
		if active {
			return th.Color.ActiveOp
		}
		return th.Color.Operator
	case keypad.ClassGraph:
		if active {
			return th.Color.ActiveGraph
		}
		return th.Color.Graph
	default:
		return th.Color.Control
	}
}

// KeyButton makes a keypad button. Text size follows the button height.
func (th *calcTheme) KeyButton(gtx C, click *widget.Clickable, k keypad.Key, active bool, radius int) material.ButtonStyle {
	textSizePx := float32(gtx.Constraints.Max.Y) / 2.4
	style := material.Button(th.Theme, click, k.Label)
	style.Background = th.keyColor(k.Class, active)
	style.Inset = layout.Inset{}
	style.TextSize = unit.Sp(textSizePx / gtx.Metric.PxPerSp)
	style.CornerRadius = unit.Dp(float32(radius) / gtx.Metric.PxPerDp)
	return style
}

// StatusLabel makes a small label for the indicator line.
func (th *calcTheme) StatusLabel(txt string) material.LabelStyle {
	l := material.Label(th.Theme, th.Size.Status, txt)
	l.Color = th.Color.Indicator
	l.MaxLines = 1
	return l
}

// FormulaLabel makes the label showing the expression text.
func (th *calcTheme) FormulaLabel(txt string) material.LabelStyle {
	l := material.Label(th.Theme, th.Size.Formula, txt)
	l.Color = th.Color.FormulaText
	l.Alignment = text.End
	l.MaxLines = 1
	return l
}

// editorStyle is a function slot editor.
type editorStyle struct {
	material.EditorStyle
	theme *calcTheme
}

// Editor renders a slot editor.
func (th *calcTheme) Editor(ed *widget.Editor, hint string) editorStyle {
	e := material.Editor(th.Theme, ed, hint)
	e.TextSize = th.Size.Editor
	e.Color = th.Color.EditorText
	e.HintColor = th.Color.HintText
	return editorStyle{EditorStyle: e, theme: th}
}

func (e *editorStyle) Layout(gtx C) D {
	// Layout the editor to get dimensions.
	r := op.Record(gtx.Ops)
	dims := e.theme.Pad.Editor.Layout(gtx, e.EditorStyle.Layout)
	call := r.Stop()

	// Put background under the text.
	size := image.Pt(gtx.Constraints.Max.X, dims.Size.Y)
	rr := clip.UniformRRect(image.Rectangle{Max: size}, gtx.Dp(e.theme.Size.CornerRadius))
	paint.FillShape(gtx.Ops, e.theme.Color.EditorBG, rr.Op(gtx.Ops))
	call.Add(gtx.Ops)
	return D{Size: size}
}
