package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/fjl/giosci/internal/expr"
)

// NumSlots is the number of function slots.
const NumSlots = 5

// Slots holds the function definitions. An empty slot is not plotted.
type Slots [NumSlots]string

// Set returns a copy of s with slot i set to text. Out-of-range indices are
// ignored.
func (s Slots) Set(i int, text string) Slots {
	if i >= 0 && i < NumSlots {
		s[i] = strings.TrimSpace(text)
	}
	return s
}

// Get returns the text of slot i, or "" when i is out of range.
func (s Slots) Get(i int) string {
	if i < 0 || i >= NumSlots {
		return ""
	}
	return s[i]
}

// TraceState is the trace cursor.
type TraceState struct {
	Active  int // function slot index
	X       float64
	Enabled bool
}

// Step moves the cursor by dir grid steps along x, staying inside w.
func (t TraceState) Step(w GraphWindow, dir int) TraceState {
	t.X = w.ClampX(t.X + float64(dir)*w.XScale)
	return t
}

// Clamp moves the cursor back into w.
func (t TraceState) Clamp(w GraphWindow) TraceState {
	t.X = w.ClampX(t.X)
	return t
}

// Select makes slot i the active function. Out-of-range indices are ignored.
func (t TraceState) Select(i int) TraceState {
	if i >= 0 && i < NumSlots {
		t.Active = i
	}
	return t
}

// TracePoint evaluates the active function at the cursor. It reports false
// when tracing is off, the active slot is empty or the value is not finite.
func TracePoint(slots Slots, t TraceState) (x, y float64, ok bool) {
	text := slots.Get(t.Active)
	if !t.Enabled || text == "" {
		return 0, 0, false
	}
	y = expr.Evaluate(text, t.X)
	if math.IsNaN(y) {
		return t.X, y, false
	}
	return t.X, y, true
}

// TraceReadout formats the trace position as "x: 1.00, y: 2.00".
func TraceReadout(slots Slots, t TraceState) (string, bool) {
	x, y, ok := TracePoint(slots, t)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("x: %.2f, y: %.2f", x, y), true
}
