package plot

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestViewportCorners(t *testing.T) {
	windows := []GraphWindow{
		DefaultWindow(),
		{XMin: -1, XMax: 3, YMin: 0.5, YMax: 0.75, XScale: 1, YScale: 0.1},
		{XMin: 100, XMax: 1000, YMin: -1e6, YMax: -1e3, XScale: 50, YScale: 1e4},
	}
	for _, w := range windows {
		vp := Viewport{Window: w, Width: 320, Height: 240}
		if col, row := vp.Point(w.XMin, w.YMax); col != 0 || row != 0 {
			t.Errorf("%v: top left maps to (%d,%d)", w, col, row)
		}
		if col, row := vp.Point(w.XMax, w.YMin); col != 319 || row != 239 {
			t.Errorf("%v: bottom right maps to (%d,%d)", w, col, row)
		}
		// Inverse and monotonic.
		prev := math.Inf(-1)
		for px := 0; px < vp.Width; px++ {
			x := vp.Column(px)
			if x <= prev {
				t.Fatalf("%v: column %d not monotonic", w, px)
			}
			prev = x
			back, _ := vp.ToPixel(x, 0)
			if math.Abs(back-float64(px)) > 1e-6 {
				t.Fatalf("%v: column %d maps back to %v", w, px, back)
			}
		}
	}
}

func TestRenderParabola(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 201, 201))
	slots := Slots{}.Set(0, "x^2")
	if err := p.Render(img, slots, DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	vp := Viewport{Window: DefaultWindow(), Width: 201, Height: 201}
	for _, pt := range [][2]float64{{0, 0}, {1, 1}, {-2, 4}, {3, 9}} {
		col, row := vp.Point(pt[0], pt[1])
		if c := img.RGBAAt(col, row); c != p.Color(0) {
			t.Errorf("pixel (%d,%d) for point %v has color %v, want %v", col, row, pt, c, p.Color(0))
		}
	}
	if p.Samples() != 201 {
		t.Errorf("got %d evaluator calls, want 201", p.Samples())
	}
}

func TestRenderOffsetBounds(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(50, 50, 251, 251))
	if err := p.Render(img, Slots{}.Set(2, "x"), DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	// (0,0) sits in the middle of the raster.
	if c := img.RGBAAt(150, 150); c != p.Color(2) {
		t.Errorf("center pixel has color %v, want %v", c, p.Color(2))
	}
}

func TestRenderGap(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 201, 201))
	if err := p.Render(img, Slots{}.Set(0, "1/x"), DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	// x = 0 is sampled in column 100. Nothing may connect across it.
	for row := 0; row < 201; row++ {
		if c := img.RGBAAt(100, row); c == p.Color(0) {
			t.Fatalf("curve drawn across the gap at row %d", row)
		}
	}
	// But the curve is present on both sides.
	if c := img.RGBAAt(110, 100-10); c != p.Color(0) {
		t.Errorf("missing curve at x=1, got %v", c)
	}
	if c := img.RGBAAt(90, 100+10); c != p.Color(0) {
		t.Errorf("missing curve at x=-1, got %v", c)
	}
}

// With an even width, no column samples x = 0 exactly. Both samples next to
// the pole are finite, so the branches of 1/x are joined by a vertical line.
// Only non-finite samples break a curve.
func TestRenderEvenWidth(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 200, 201))
	if err := p.Render(img, Slots{}.Set(0, "1/x"), DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	vp := Viewport{Window: DefaultWindow(), Width: 200, Height: 201}
	if x := vp.Column(99); x >= 0 || math.IsNaN(1/x) {
		t.Fatalf("column 99 at x=%v", x)
	}
	for row := 0; row < 201; row++ {
		if img.RGBAAt(99, row) != p.Color(0) && img.RGBAAt(100, row) != p.Color(0) {
			t.Fatalf("no connecting segment at row %d", row)
		}
	}
}

func TestRenderPalette(t *testing.T) {
	var palette [NumSlots]color.RGBA
	for i := range palette {
		palette[i] = color.RGBA{uint8(10 * i), 100, 200, 255}
	}
	p := New(WithPalette(palette))
	for i := range palette {
		if p.Color(i) != palette[i] {
			t.Errorf("Color(%d) = %v, want %v", i, p.Color(i), palette[i])
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, 201, 201))
	if err := p.Render(img, Slots{}.Set(3, "5"), DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(30, 50); c != palette[3] {
		t.Errorf("slot 3 drawn with %v, want %v", c, palette[3])
	}
}

func TestRenderSlotColors(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 201, 201))
	slots := Slots{}.Set(1, "5").Set(4, "-5")
	if err := p.Render(img, slots, DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(30, 50); c != DefaultPalette[1] {
		t.Errorf("slot 1 drawn with %v, want %v", c, DefaultPalette[1])
	}
	if c := img.RGBAAt(30, 150); c != DefaultPalette[4] {
		t.Errorf("slot 4 drawn with %v, want %v", c, DefaultPalette[4])
	}
	if p.Samples() != 2*201 {
		t.Errorf("got %d evaluator calls, want %d", p.Samples(), 2*201)
	}
}

func TestRenderBadFunction(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	slots := Slots{}.Set(0, "x +* 2").Set(1, "x")
	if err := p.Render(img, slots, DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	if p.Samples() != 100 {
		t.Errorf("got %d evaluator calls, want 100", p.Samples())
	}
}

func TestRenderAxesOffCanvas(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	w := GraphWindow{XMin: 1, XMax: 5, YMin: 1, YMax: 5, XScale: 1, YScale: 1}
	if err := p.Render(img, Slots{}, w, nil); err != nil {
		t.Fatal(err)
	}
	grid := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			switch img.RGBAAt(x, y) {
			case axisColor:
				t.Fatalf("axis drawn at (%d,%d)", x, y)
			case gridColor:
				grid++
			}
		}
	}
	if grid == 0 {
		t.Fatal("no grid drawn")
	}
}

func TestRenderAxes(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 201, 101))
	w := GraphWindow{XMin: -10, XMax: 10, YMin: 0, YMax: 10, XScale: 1, YScale: 1}
	if err := p.Render(img, Slots{}, w, nil); err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(100, 30); c != axisColor {
		t.Errorf("y axis missing, got %v", c)
	}
	if c := img.RGBAAt(20, 100); c != axisColor {
		t.Errorf("x axis missing on bottom row, got %v", c)
	}
}

func TestRenderInvalidWindow(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	w := GraphWindow{XMin: 1, XMax: 1, YMin: 0, YMax: 1, XScale: 1, YScale: 1}
	err := p.Render(img, Slots{}, w, nil)
	if !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("got error %v, want ErrInvalidWindow", err)
	}
}

func TestRenderTinyRaster(t *testing.T) {
	p := New()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := p.Render(img, Slots{}.Set(0, "x"), DefaultWindow(), nil); err != nil {
		t.Fatal(err)
	}
	if p.Samples() != 0 {
		t.Fatalf("sampled %d times on a 1×1 raster", p.Samples())
	}
}

func TestRenderTrace(t *testing.T) {
	p := New(WithReadout())
	img := image.NewRGBA(image.Rect(0, 0, 201, 201))
	slots := Slots{}.Set(0, "x^2")
	trace := &TraceState{Active: 0, X: 2, Enabled: true}
	if err := p.Render(img, slots, DefaultWindow(), trace); err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(120, 60); !colorNear(c, markerColor) {
		t.Errorf("marker center has color %v, want %v", c, markerColor)
	}
	// Marker has radius 4; two pixels off center is still inside.
	if c := img.RGBAAt(122, 60); !colorNear(c, markerColor) {
		t.Errorf("marker body has color %v, want %v", c, markerColor)
	}

	// Disabled trace draws nothing.
	trace.Enabled = false
	if err := p.Render(img, slots, DefaultWindow(), trace); err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(122, 60); colorNear(c, markerColor) {
		t.Errorf("marker drawn while trace is disabled")
	}
}

func TestRenderReadout(t *testing.T) {
	slots := Slots{}.Set(0, "x^2")
	trace := &TraceState{Active: 0, X: 2, Enabled: true}
	// textPixels counts readout pixels in the top left corner.
	textPixels := func(p *Plotter) int {
		img := image.NewRGBA(image.Rect(0, 0, 201, 201))
		if err := p.Render(img, slots, DefaultWindow(), trace); err != nil {
			t.Fatal(err)
		}
		n := 0
		for y := 0; y < 18; y++ {
			for x := 0; x < 120; x++ {
				if img.RGBAAt(x, y) == textColor {
					n++
				}
			}
		}
		return n
	}
	if n := textPixels(New()); n != 0 {
		t.Errorf("readout drawn without WithReadout: %d pixels", n)
	}
	if n := textPixels(New(WithReadout())); n == 0 {
		t.Error("no readout drawn")
	}
}

func TestTraceStep(t *testing.T) {
	w := DefaultWindow()
	tr := TraceState{X: 9.5, Enabled: true}
	tr = tr.Step(w, 1)
	if tr.X != 10 {
		t.Errorf("step right from 9.5 gave %v, want 10", tr.X)
	}
	tr = tr.Step(w, 1)
	if tr.X != 10 {
		t.Errorf("step right at xMax gave %v, want 10", tr.X)
	}
	tr.X = -9.5
	tr = tr.Step(w, -1).Step(w, -1)
	if tr.X != -10 {
		t.Errorf("step left gave %v, want -10", tr.X)
	}
	tr.X = 0
	if got := tr.Step(w, 1).X; got != 1 {
		t.Errorf("step by xScale gave %v, want 1", got)
	}
}

func TestTraceReadout(t *testing.T) {
	slots := Slots{}.Set(3, "x^2")
	tr := TraceState{Active: 3, X: -1.5, Enabled: true}
	s, ok := TraceReadout(slots, tr)
	if !ok || s != "x: -1.50, y: 2.25" {
		t.Errorf("got readout %q (ok=%v)", s, ok)
	}
	tr = tr.Select(2)
	if _, ok := TraceReadout(slots, tr); ok {
		t.Error("readout for empty slot")
	}
	tr = tr.Select(7)
	if tr.Active != 2 {
		t.Errorf("out of range select changed active slot to %d", tr.Active)
	}
}

func TestWindowZoom(t *testing.T) {
	w := DefaultWindow()
	in, err := w.Zoom(0.5)
	if err != nil {
		t.Fatal(err)
	}
	want := GraphWindow{XMin: -5, XMax: 5, YMin: -5, YMax: 5, XScale: 1, YScale: 1}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("zoom in mismatch (-want +got):\n%s", diff)
	}
	out, err := in.Zoom(4)
	if err != nil {
		t.Fatal(err)
	}
	want = GraphWindow{XMin: -20, XMax: 20, YMin: -20, YMax: 20, XScale: 1, YScale: 1}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("zoom out mismatch (-want +got):\n%s", diff)
	}
	if _, err := w.Zoom(0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("zoom by 0 gave error %v", err)
	}
	if _, err := w.Zoom(math.NaN()); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("zoom by NaN gave error %v", err)
	}
}

func TestWindowValidate(t *testing.T) {
	bad := []GraphWindow{
		{XMin: 0, XMax: -1, YMin: 0, YMax: 1, XScale: 1, YScale: 1},
		{XMin: 0, XMax: 1, YMin: 1, YMax: 1, XScale: 1, YScale: 1},
		{XMin: 0, XMax: 1, YMin: 0, YMax: 1, XScale: 0, YScale: 1},
		{XMin: 0, XMax: 1, YMin: 0, YMax: 1, XScale: 1, YScale: -2},
		{XMin: math.Inf(-1), XMax: 1, YMin: 0, YMax: 1, XScale: 1, YScale: 1},
	}
	for _, w := range bad {
		if err := w.Validate(); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("Validate(%v) = %v", w, err)
		}
	}
	if err := DefaultWindow().Validate(); err != nil {
		t.Errorf("default window invalid: %v", err)
	}
}

func TestSampleCache(t *testing.T) {
	cache := NewSampleCache(1 << 12)
	p := New(WithCache(cache))
	img := image.NewRGBA(image.Rect(0, 0, 150, 100))
	slots := Slots{}.Set(0, "sin(x)")
	for i := 0; i < 2; i++ {
		if err := p.Render(img, slots, DefaultWindow(), nil); err != nil {
			t.Fatal(err)
		}
	}
	if p.Samples() != 0 {
		t.Errorf("second render evaluated %d samples", p.Samples())
	}
	hits, misses := cache.Stats()
	if hits != 150 || misses != 150 {
		t.Errorf("got %d hits, %d misses; want 150, 150", hits, misses)
	}

	// Different text, same x: separate entries.
	cache.Store("cos(x)", 0, 1)
	if v, ok := cache.Lookup("sin(x)", vpColumn0()); !ok || v != math.Sin(-10) {
		t.Errorf("sin lookup = %v, %v", v, ok)
	}
}

func TestSampleCacheLimit(t *testing.T) {
	cache := NewSampleCache(4)
	for i := 0; i < 10; i++ {
		cache.Store("x", float64(i), float64(i))
	}
	if n := cache.Len(); n > 4 {
		t.Fatalf("cache holds %d values, limit is 4", n)
	}
	if v, ok := cache.Lookup("x", 9); !ok || v != 9 {
		t.Fatalf("latest value missing: %v, %v", v, ok)
	}
}

func vpColumn0() float64 {
	return Viewport{Window: DefaultWindow(), Width: 150, Height: 100}.Column(0)
}

func colorNear(a, b color.RGBA) bool {
	near := func(x, y uint8) bool { return absInt(int(x)-int(y)) <= 2 }
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}
