package expr

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		text string
		x    float64
		want float64
	}{
		{"sin(x)", 0, 0},
		{"x^2", 3, 9},
		{"x^2", -2, 4},
		{"2x+1", 4, 9},
		{"3(x+1)", 1, 6},
		{"2sin(x)", math.Pi / 2, 2},
		{"cos(x)", 0, 1},
		{"log(x)", 1000, 3},
		{"ln(e)", 0, 1},
		{"√x", 16, 4},
		{"sqrt(x)+1", 9, 4},
		{"√(x+7)", 2, 3},
		{"2π", 0, 2 * math.Pi},
		{"pi*x", 2, 2 * math.Pi},
		{"-x^2", 3, -9},
		{"2^-1", 0, 0.5},
		{"2^3^2", 0, 512},
		{"x × 2 ÷ 4", 6, 3},
		{"1 - 2 - 3", 0, -4},
		{"8/4/2", 0, 1},
		{"2 + 3 * 4", 0, 14},
		{"(x+1)(x-1)", 3, 8},
		{"  x  ", 7, 7},
		{"X^2", 2, 4},
		{"ex", 2, 2 * math.E},
		{".5x", 4, 2},
		{"1e5", 0, 100000},
		{"2.5e-3", 0, 0.0025},
		{"1E+2x", 3, 300},
		{"x*1e0", 7, 7},
		{"2e", 0, 2 * math.E},
		{"2e-x", 1, 2*math.E - 1},
		{"2e^x", 1, 2 * math.E},
	}
	for _, test := range tests {
		got := Evaluate(test.text, test.x)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("Evaluate(%q, %v) = %v, want %v", test.text, test.x, got, test.want)
		}
	}
}

func TestEvaluateNaN(t *testing.T) {
	tests := []struct {
		text string
		x    float64
	}{
		{"1/x", 0},
		{"ln(x)", -1},
		{"√x", -4},
		{"log(x)", 0},
		{"", 1},
		{"x +", 1},
		{"(x", 1},
		{"x)", 1},
		{"foo(x)", 1},
		{"alert(1)", 1},
		{"x; 1", 1},
		{"sin", 1},
		{"1..2", 1},
		{"2 ** 3", 1},
	}
	for _, test := range tests {
		if got := Evaluate(test.text, test.x); !math.IsNaN(got) {
			t.Errorf("Evaluate(%q, %v) = %v, want NaN", test.text, test.x, got)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	for _, x := range []float64{-3.5, 0, 1, 2.25} {
		a := Evaluate("sin(x)^2 + cos(x)^2 + x", x)
		b := Evaluate("sin(x)^2 + cos(x)^2 + x", x)
		if a != b {
			t.Fatalf("results differ at x=%v: %v != %v", x, a, b)
		}
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("2 + $")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("error %v does not wrap ErrSyntax", err)
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("error %T is not a *SyntaxError", err)
	}
	if serr.Pos != 4 {
		t.Errorf("wrong error position %d, want 4", serr.Pos)
	}
}

func TestParseString(t *testing.T) {
	e, err := Parse("2x^2 - sin(π x)")
	if err != nil {
		t.Fatal(err)
	}
	want := "((2 * (x ^ 2)) - sin((π * x)))"
	if s := e.String(); s != want {
		t.Errorf("wrong string\n  got: %s\n want: %s", s, want)
	}
	if e.Text() != "2x^2 - sin(π x)" {
		t.Errorf("wrong text %q", e.Text())
	}
}
