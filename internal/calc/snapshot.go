package calc

import (
	"github.com/fjl/giosci/internal/plot"
)

// Snapshot holds the calculator inputs worth keeping across sessions.
type Snapshot struct {
	Memory float64          `json:"memory"`
	Mode   Mode             `json:"mode"`
	Angle  AngleMode        `json:"angle"`
	Slots  plot.Slots       `json:"slots"`
	Window plot.GraphWindow `json:"window"`
}

// Snapshot returns the persistent part of s.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Memory: s.memory,
		Mode:   s.mode,
		Angle:  s.angle,
		Slots:  s.slots,
		Window: s.window,
	}
}

// Restore returns s with the inputs of snap applied. Invalid values in snap
// are skipped. The arithmetic state is reset when the mode changes.
func (s State) Restore(snap Snapshot) State {
	if isFinite(snap.Memory) {
		s.memory = snap.Memory
	}
	if snap.Angle == Radians || snap.Angle == Degrees {
		s.angle = snap.Angle
	}
	if snap.Mode >= 0 && snap.Mode < numModes && snap.Mode != s.mode {
		s = s.clearAll()
		s.trace = plot.TraceState{}
		s.mode = snap.Mode
	}
	if snap.Window.Validate() == nil {
		s.window = snap.Window
	}
	s.slots = snap.Slots
	s.trace = s.trace.Clamp(s.window)
	return s
}
