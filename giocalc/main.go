package main

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"gioui.org/app"
	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	log "github.com/sirupsen/logrus"

	"github.com/fjl/giosci/internal/calc"
	"github.com/fjl/giosci/internal/keypad"
	"github.com/fjl/giosci/internal/sessionstore"
)

// calcUI is the user interface of the calculator.
type calcUI struct {
	state calc.State
	model *sessionModel
	theme *calcTheme
	graph *graphView

	// One set of buttons per mode, laid out as keypad.Rows.
	buttons map[calc.Mode][][]widget.Clickable

	cornerRadius int
	gridSpacing  int
}

func newUI(theme *calcTheme, model *sessionModel) *calcUI {
	ui := &calcUI{
		state:   calc.New(),
		model:   model,
		theme:   theme,
		graph:   newGraphView(theme),
		buttons: make(map[calc.Mode][][]widget.Clickable),
	}
	for _, m := range []calc.Mode{calc.ModeBasic, calc.ModeScientific, calc.ModeGraphing} {
		rows := keypad.Rows(m)
		ui.buttons[m] = make([][]widget.Clickable, len(rows))
		for i := range rows {
			ui.buttons[m][i] = make([]widget.Clickable, len(rows[i]))
		}
	}
	return ui
}

// press feeds one token to the calculator.
func (ui *calcUI) press(tok calc.Token) {
	prev := ui.state
	ui.state = ui.state.Apply(tok)
	if ui.state.Mode() != prev.Mode() {
		log.WithField("mode", ui.state.Mode()).Debug("mode changed")
	}
	if ui.state.IsError() && !prev.IsError() {
		log.WithField("formula", prev.Formula()).Debug("calculation error")
	}
	ui.model.record(ui.state)
}

// handleStoreEvent applies a session store event.
func (ui *calcUI) handleStoreEvent(e sessionstore.Event) {
	ui.state = ui.model.handleStoreEvent(ui.state, e)
}

// Layout draws the UI.
func (ui *calcUI) Layout(gtx C) D {
	// Adapt design for screen size.
	scaleFactor := float32(gtx.Constraints.Max.X) / float32(gtx.Dp(ui.theme.Size.DesignWidth))
	ui.cornerRadius = gtx.Dp(ui.theme.Size.CornerRadius * unit.Dp(scaleFactor))
	ui.gridSpacing = gtx.Dp(ui.theme.Size.Spacing * unit.Dp(scaleFactor))

	// Handle key events.
	ui.layoutInput(gtx)

	inset := ui.theme.Pad.Main
	if ui.state.Mode() == calc.ModeGraphing {
		return inset.Layout(gtx, ui.layoutGraphing)
	}
	return inset.Layout(gtx, func(gtx C) D {
		flex := layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceStart}
		return flex.Layout(gtx,
			layout.Flexed(25, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutResult)
			}),
			layout.Flexed(75, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutButtons)
			}),
		)
	})
}

// layoutGraphing draws the graph, the slot editors, and the graphing keypad.
func (ui *calcUI) layoutGraphing(gtx C) D {
	for _, tok := range ui.graph.update() {
		ui.press(tok)
	}
	ui.graph.syncEditors(ui.state.Slots())

	inset := ui.theme.Pad.Main
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return inset.Layout(gtx, func(gtx C) D {
				return ui.graph.layoutGraph(gtx, ui.state)
			})
		}),
		layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, ui.layoutStatus)
		}),
		layout.Rigid(func(gtx C) D {
			return inset.Layout(gtx, func(gtx C) D {
				return ui.graph.layoutEditors(gtx, ui.theme, ui.state)
			})
		}),
		layout.Rigid(func(gtx C) D {
			rows := len(keypad.Rows(calc.ModeGraphing))
			gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(38 * rows))
			gtx.Constraints.Max.Y = gtx.Constraints.Min.Y
			return inset.Layout(gtx, ui.layoutButtons)
		}),
	)
}

func (ui *calcUI) layoutResult(gtx C) D {
	rect := image.Rectangle{Max: gtx.Constraints.Max}
	rr := clip.UniformRRect(rect, ui.cornerRadius)
	paint.FillShape(gtx.Ops, ui.theme.Color.Display, rr.Op(gtx.Ops))

	inset := layout.UniformInset(ui.theme.Size.Spacing)
	return inset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(ui.layoutStatus),
			layout.Rigid(func(gtx C) D {
				return ui.theme.FormulaLabel(ui.state.Formula()).Layout(gtx)
			}),
			layout.Flexed(1, ui.layoutResultText),
		)
	})
}

func (ui *calcUI) layoutResultText(gtx C) D {
	// Scale font based on height.
	fontSizePx := float32(gtx.Constraints.Max.Y) / 1.1
	fontSizeSp := unit.Sp(fontSizePx / gtx.Metric.PxPerSp)

	l := material.Label(ui.theme.Theme, fontSizeSp, ui.state.Display())
	l.Color = ui.theme.Color.DisplayText
	if ui.state.IsError() {
		l.Color = ui.theme.Color.Error
	}
	l.Alignment = text.End
	return shrinkToFit(gtx, l.Layout)
}

// layoutStatus draws the indicator line: mode, angle, memory, trace readout and
// the last storage error.
func (ui *calcUI) layoutStatus(gtx C) D {
	st := ui.state
	parts := []string{strings.ToUpper(st.Mode().String())}
	if st.Mode() == calc.ModeScientific {
		parts = append(parts, st.Angle().String())
	}
	if st.Memory() != 0 {
		parts = append(parts, "M")
	}
	if n := st.ParenDepth(); n > 0 {
		parts = append(parts, strings.Repeat("(", n))
	}
	if r, ok := st.Readout(); ok {
		parts = append(parts, r)
	}
	l := ui.theme.StatusLabel(strings.Join(parts, "  "))
	if err := ui.model.lastError; err != nil {
		l.Text += "  " + err.Error()
		l.Color = ui.theme.Color.Error
	}
	return l.Layout(gtx)
}

func (ui *calcUI) layoutButtons(gtx C) D {
	mode := ui.state.Mode()
	rows := keypad.Rows(mode)
	g := grid{
		rows:    len(rows),
		cols:    len(rows[0]),
		spacing: ui.gridSpacing,
	}
	return g.layout(gtx, func(row, col int, gtx C) D {
		if k := rows[row][col]; k.Label != "" {
			return ui.layoutButton(gtx, &ui.buttons[mode][row][col], k)
		}
		return D{}
	})
}

func (ui *calcUI) layoutButton(gtx C, click *widget.Clickable, k keypad.Key) D {
	if click.Clicked() {
		ui.press(k.Token)
	}
	style := ui.theme.KeyButton(gtx, click, k, ui.isActive(k.Token), ui.cornerRadius)
	return style.Layout(gtx)
}

// isActive reports whether the key of tok should be highlighted.
func (ui *calcUI) isActive(tok calc.Token) bool {
	st := ui.state
	switch tok.Kind {
	case calc.KindBinary:
		return st.Pending() == tok.Binary && st.AwaitingOperand()
	case calc.KindAngleToggle:
		return st.Angle() == calc.Degrees
	case calc.KindTraceToggle:
		return st.Trace().Enabled
	case calc.KindSlotSelect:
		return st.Trace().Active == tok.Slot
	}
	return false
}

// layoutInput registers the global key handler.
func (ui *calcUI) layoutInput(gtx C) {
	// Register handler for key events.
	hint := key.HintNumeric
	if ui.state.Mode() == calc.ModeGraphing {
		hint = key.HintAny
	}
	key.InputOp{Tag: ui, Hint: hint, Keys: keySet}.Add(gtx.Ops)

	// Request keyboard focus. This is required to make the Return key work.
	// A focused slot editor keeps its focus.
	if ui.state.Mode() != calc.ModeGraphing || !ui.graph.editing() {
		key.FocusOp{Tag: ui}.Add(gtx.Ops)
	}

	for _, ev := range gtx.Queue.Events(ui) {
		switch ev := ev.(type) {
		case key.Event:
			switch {
			case isCopy(ev):
				clipboard.WriteOp{Text: ui.state.Display()}.Add(gtx.Ops)
			case isPaste(ev):
				clipboard.ReadOp{Tag: ui}.Add(gtx.Ops)
			default:
				if tok, ok := keyToken(ui.state.Mode(), ev); ok {
					ui.press(tok)
				}
			}

		case clipboard.Event:
			ui.press(calc.Paste(ev.Text))
		}
	}
}

func main() {
	theme := newCalcTheme()
	var (
		size     = app.Size(theme.Size.DesignWidth, theme.Size.DesignHeight)
		statusBg = app.StatusColor(theme.Color.Background)
		sysBg    = app.NavigationColor(theme.Color.Background)
		title    = app.Title("GioSci")
		portrait = app.PortraitOrientation.Option()
	)
	go func() {
		w := app.NewWindow(statusBg, sysBg, size, title, portrait)
		w.Option(app.MinSize(theme.Size.DesignWidth*3/4, theme.Size.DesignHeight*3/4))

		if err := loop(w, theme); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loop is the main loop of the app.
func loop(w *app.Window, theme *calcTheme) error {
	datadir, err := app.DataDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(datadir, "giosci")
	log.WithField("dir", dir).Info("opening session store")
	store := sessionstore.NewStore(dir)
	defer store.Close()

	var (
		model = newSessionModel(store)
		ui    = newUI(theme, model)
		ops   op.Ops
	)
	for {
		select {
		case e := <-store.Events():
			ui.handleStoreEvent(e)
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.StageEvent:
				if e.Stage == system.StagePaused {
					store.Persist()
				}
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				paint.Fill(gtx.Ops, ui.theme.Color.Background)
				ui.Layout(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}
