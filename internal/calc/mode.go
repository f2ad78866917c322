package calc

import "fmt"

// Mode selects the input vocabulary of the calculator.
type Mode int

const (
	ModeBasic Mode = iota
	ModeScientific
	ModeGraphing
	numModes
)

var modeNames = [numModes]string{"basic", "scientific", "graphing"}

func (m Mode) String() string {
	if m < 0 || m >= numModes {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// next returns the mode after m in the cycle basic → scientific → graphing.
func (m Mode) next() Mode {
	return (m + 1) % numModes
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || m >= numModes {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if string(text) == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}

// AngleMode selects the unit of trigonometric operands.
type AngleMode int

const (
	Radians AngleMode = iota
	Degrees
)

func (a AngleMode) String() string {
	if a == Degrees {
		return "DEG"
	}
	return "RAD"
}

// MarshalText implements encoding.TextMarshaler.
func (a AngleMode) MarshalText() ([]byte, error) {
	switch a {
	case Radians:
		return []byte("radians"), nil
	case Degrees:
		return []byte("degrees"), nil
	}
	return nil, fmt.Errorf("invalid angle mode %d", int(a))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AngleMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "radians":
		*a = Radians
	case "degrees":
		*a = Degrees
	default:
		return fmt.Errorf("unknown angle mode %q", text)
	}
	return nil
}
