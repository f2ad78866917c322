package sessionstore

import (
	"encoding/json"
	"fmt"

	"github.com/fjl/giosci/internal/calc"
	"github.com/fjl/giosci/internal/plot"
)

// MemoryChanged records a new value of the memory register.
type MemoryChanged struct {
	Value float64
}

// SettingsChanged records the input and angle modes.
type SettingsChanged struct {
	Mode  calc.Mode
	Angle calc.AngleMode
}

// SlotChanged records a committed function slot.
type SlotChanged struct {
	Index int
	Text  string
}

// WindowChanged records the graph window.
type WindowChanged struct {
	Window plot.GraphWindow
}

// Restored is sent once after the data file has been read. It carries the
// session state folded from all recorded events.
type Restored struct {
	Snapshot calc.Snapshot
	Events   int
}

// IOError is sent when the data file cannot be read or written.
type IOError struct {
	Err error
}

type Event interface {
	evType() string
}

func (*MemoryChanged) evType() string   { return "memory" }
func (*SettingsChanged) evType() string { return "settings" }
func (*SlotChanged) evType() string     { return "slot" }
func (*WindowChanged) evType() string   { return "window" }
func (*Restored) evType() string        { return "restored" }
func (*IOError) evType() string         { return "ioerror" }

// Apply folds ev into snap.
func Apply(snap calc.Snapshot, ev Event) calc.Snapshot {
	switch ev := ev.(type) {
	case *MemoryChanged:
		snap.Memory = ev.Value
	case *SettingsChanged:
		snap.Mode = ev.Mode
		snap.Angle = ev.Angle
	case *SlotChanged:
		snap.Slots = snap.Slots.Set(ev.Index, ev.Text)
	case *WindowChanged:
		snap.Window = ev.Window
	}
	return snap
}

// Diff returns the events that turn old into cur.
func Diff(old, cur calc.Snapshot) []Event {
	var evs []Event
	if old.Memory != cur.Memory {
		evs = append(evs, &MemoryChanged{Value: cur.Memory})
	}
	if old.Mode != cur.Mode || old.Angle != cur.Angle {
		evs = append(evs, &SettingsChanged{Mode: cur.Mode, Angle: cur.Angle})
	}
	for i := range cur.Slots {
		if old.Slots[i] != cur.Slots[i] {
			evs = append(evs, &SlotChanged{Index: i, Text: cur.Slots[i]})
		}
	}
	if old.Window != cur.Window {
		evs = append(evs, &WindowChanged{Window: cur.Window})
	}
	return evs
}

type jsonEvent struct {
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

func writeEvent(enc *json.Encoder, ev Event) error {
	jsev := &jsonEvent{Type: ev.evType(), Event: ev}
	return enc.Encode(jsev)
}

func readEvent(dec *json.Decoder) (Event, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("unexpected JSON token %v, expected '{'", tok)
	}

	var (
		evtype = ""
		event  Event
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		switch key {
		case "type":
			evtype, err = readEventType(dec)
			if err != nil {
				return nil, err
			}
		case "event":
			if evtype == "" {
				return nil, fmt.Errorf("key \"type\" must precede \"event\"")
			}
			event, err = makeEvent(evtype)
			if err != nil {
				return nil, err
			}
			if err := dec.Decode(event); err != nil {
				return nil, fmt.Errorf("decode %s event: %w", evtype, err)
			}
		default:
			return nil, fmt.Errorf("unknown key %q", keyTok)
		}
	}
	if event == nil {
		return nil, fmt.Errorf("missing \"event\" key")
	}

	// read '}'
	_, err = dec.Token()
	return event, err
}

func readEventType(dec *json.Decoder) (string, error) {
	typeTok, err := dec.Token()
	if err != nil {
		return "", err
	}
	typ, ok := typeTok.(string)
	if !ok {
		return "", fmt.Errorf("expected string for \"type\", got %v", typeTok)
	}
	return typ, nil
}

func makeEvent(evtype string) (Event, error) {
	switch evtype {
	case (&MemoryChanged{}).evType():
		return new(MemoryChanged), nil
	case (&SettingsChanged{}).evType():
		return new(SettingsChanged), nil
	case (&SlotChanged{}).evType():
		return new(SlotChanged), nil
	case (&WindowChanged{}).evType():
		return new(WindowChanged), nil
	default:
		return nil, fmt.Errorf("unknown event type %q", evtype)
	}
}
