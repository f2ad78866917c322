package plot

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// canvas draws into an RGBA image using coordinates relative to its bounds.
type canvas struct {
	dst *image.RGBA
}

func (c canvas) size() image.Point {
	return c.dst.Bounds().Size()
}

func (c canvas) fill(col color.RGBA) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// set colors one pixel. Points outside the image are ignored.
func (c canvas) set(x, y int, col color.RGBA) {
	min := c.dst.Bounds().Min
	c.dst.SetRGBA(min.X+x, min.Y+y, col)
}

func (c canvas) hline(y int, col color.RGBA) {
	size := c.size()
	if y < 0 || y >= size.Y {
		return
	}
	for x := 0; x < size.X; x++ {
		c.set(x, y, col)
	}
}

func (c canvas) vline(x int, col color.RGBA) {
	size := c.size()
	if x < 0 || x >= size.X {
		return
	}
	for y := 0; y < size.Y; y++ {
		c.set(x, y, col)
	}
}

// line draws a one pixel wide line from (x0,y0) to (x1,y1). The y range is
// clipped to just outside the image first, so lines towards huge values
// stay cheap.
func (c canvas) line(x0, y0, x1, y1 int, col color.RGBA) {
	h := c.size().Y
	y0 = clampInt(y0, -1, h)
	y1 = clampInt(y1, -1, h)

	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// circle fills a disc centered on pixel (cx, cy).
func (c canvas) circle(cx, cy, r float64, col color.RGBA) {
	size := c.size()
	var (
		z = vector.NewRasterizer(size.X, size.Y)
		x = float32(cx) + 0.5
		y = float32(cy) + 0.5
		f = float32(r)
		k = f * 0.5522848
	)
	z.MoveTo(x+f, y)
	z.CubeTo(x+f, y+k, x+k, y+f, x, y+f)
	z.CubeTo(x-k, y+f, x-f, y+k, x-f, y)
	z.CubeTo(x-f, y-k, x-k, y-f, x, y-f)
	z.CubeTo(x+k, y-f, x+f, y-k, x+f, y)
	z.ClosePath()
	z.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{})
}

// text draws s with its baseline at (x, y).
func (c canvas) text(x, y int, s string, col color.RGBA) {
	min := c.dst.Bounds().Min
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(min.X+x, min.Y+y),
	}
	d.DrawString(s)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
