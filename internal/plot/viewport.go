package plot

import "math"

// Viewport maps a GraphWindow onto a raster of Width×Height pixels. XMin maps
// to column 0 and XMax to column Width-1; YMax maps to row 0 and YMin to row
// Height-1.
type Viewport struct {
	Window        GraphWindow
	Width, Height int
}

// ToPixel maps a point in mathematical space to fractional pixel coordinates.
func (v Viewport) ToPixel(x, y float64) (px, py float64) {
	w := v.Window
	px = (x - w.XMin) * float64(v.Width-1) / (w.XMax - w.XMin)
	py = (w.YMax - y) * float64(v.Height-1) / (w.YMax - w.YMin)
	return px, py
}

// FromPixel is the inverse of ToPixel.
func (v Viewport) FromPixel(px, py float64) (x, y float64) {
	w := v.Window
	x = w.XMin + px*(w.XMax-w.XMin)/float64(v.Width-1)
	y = w.YMax - py*(w.YMax-w.YMin)/float64(v.Height-1)
	return x, y
}

// Column returns the x value sampled for pixel column col.
func (v Viewport) Column(col int) float64 {
	x, _ := v.FromPixel(float64(col), 0)
	return x
}

// Point returns the nearest pixel for (x, y). The result may lie outside the
// raster.
func (v Viewport) Point(x, y float64) (col, row int) {
	px, py := v.ToPixel(x, y)
	return round(px), round(py)
}

// round converts to int, saturating far outside the raster so that huge
// values never overflow.
func round(f float64) int {
	const limit = 1 << 30
	switch {
	case f > limit:
		return limit
	case f < -limit:
		return -limit
	}
	return int(math.Round(f))
}
