package calc

import (
	"math"
	"strconv"
	"strings"
)

// ErrorText is the display value of a calculator in the error state.
const ErrorText = "Error"

// FormatNumber gives the display text of v: the shortest decimal that parses
// back to v, in exponent form below 1e-6 and from 1e21 on. Non-finite values
// become ErrorText.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorText
	}
	if v == 0 {
		return "0" // no "-0"
	}
	if a := math.Abs(v); a < 1e-6 || a >= 1e21 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber reads a display value. It reports false for anything that is
// not a finite number literal.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == ErrorText {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// trimLast removes the last character of a display value. If what remains
// is not a number, it keeps trimming; an empty result becomes "0".
func trimLast(s string) string {
	for len(s) > 0 {
		s = s[:len(s)-1]
		if _, ok := ParseNumber(s); ok {
			return s
		}
	}
	return "0"
}
