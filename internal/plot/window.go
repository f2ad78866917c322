package plot

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWindow is returned for windows with empty extent or non-positive
// grid spacing.
var ErrInvalidWindow = errors.New("invalid graph window")

// GraphWindow is the visible rectangle of mathematical space and its grid
// spacing.
type GraphWindow struct {
	XMin   float64 `json:"xMin"`
	XMax   float64 `json:"xMax"`
	YMin   float64 `json:"yMin"`
	YMax   float64 `json:"yMax"`
	XScale float64 `json:"xScale"`
	YScale float64 `json:"yScale"`
}

// DefaultWindow returns [-10,10]×[-10,10] with unit grid spacing.
func DefaultWindow() GraphWindow {
	return GraphWindow{XMin: -10, XMax: 10, YMin: -10, YMax: 10, XScale: 1, YScale: 1}
}

// Validate checks the window invariants.
func (w GraphWindow) Validate() error {
	for _, v := range []float64{w.XMin, w.XMax, w.YMin, w.YMax, w.XScale, w.YScale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound in %v", ErrInvalidWindow, w)
		}
	}
	switch {
	case w.XMin >= w.XMax:
		return fmt.Errorf("%w: xMin %g >= xMax %g", ErrInvalidWindow, w.XMin, w.XMax)
	case w.YMin >= w.YMax:
		return fmt.Errorf("%w: yMin %g >= yMax %g", ErrInvalidWindow, w.YMin, w.YMax)
	case w.XScale <= 0 || w.YScale <= 0:
		return fmt.Errorf("%w: grid spacing %g×%g", ErrInvalidWindow, w.XScale, w.YScale)
	}
	return nil
}

// Zoom scales the extent of w about its centre. A factor below one zooms in.
// The grid spacing is kept.
func (w GraphWindow) Zoom(factor float64) (GraphWindow, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return w, fmt.Errorf("%w: zoom factor %g", ErrInvalidWindow, factor)
	}
	cx, cy := (w.XMin+w.XMax)/2, (w.YMin+w.YMax)/2
	hx, hy := (w.XMax-w.XMin)/2*factor, (w.YMax-w.YMin)/2*factor
	z := w
	z.XMin, z.XMax = cx-hx, cx+hx
	z.YMin, z.YMax = cy-hy, cy+hy
	if err := z.Validate(); err != nil {
		return w, err
	}
	return z, nil
}

// ClampX limits x to [XMin, XMax].
func (w GraphWindow) ClampX(x float64) float64 {
	return math.Max(w.XMin, math.Min(w.XMax, x))
}
