package surface

import (
	"fmt"
	"strconv"
	"strings"
)

// NumKnobs is the number of touch sensitive knobs above the display.
const NumKnobs = 8

// Control identifies a physical control on a surface.
type Control int

const (
	ControlNone Control = iota
	ControlModeTrack
	ControlModeDevice
	ControlModeBrowser
	ControlModeClip
	ControlDelete
	ControlEnter
	ControlPageLeft
	ControlPageRight
	ControlPlay
	ControlRecord
	// ControlKnob is the first knob, the rest follow in order. Use Knob.
	ControlKnob
)

var controlNames = map[Control]string{
	ControlModeTrack:   "track",
	ControlModeDevice:  "device",
	ControlModeBrowser: "browse",
	ControlModeClip:    "clip",
	ControlDelete:      "delete",
	ControlEnter:       "enter",
	ControlPageLeft:    "left",
	ControlPageRight:   "right",
	ControlPlay:        "play",
	ControlRecord:      "record",
}

// Knob returns the control of the 0-based knob i.
func Knob(i int) Control {
	return ControlKnob + Control(i)
}

// KnobIndex returns the 0-based knob number of c, or false if c isn't a knob.
func (c Control) KnobIndex() (int, bool) {
	i := int(c - ControlKnob)
	if i < 0 || i >= NumKnobs {
		return 0, false
	}
	return i, true
}

func (c Control) String() string {
	if i, ok := c.KnobIndex(); ok {
		return fmt.Sprintf("knob%d", i+1)
	}
	if n, ok := controlNames[c]; ok {
		return n
	}
	return fmt.Sprintf("control(%d)", int(c))
}

// ParseControl is the inverse of Control.String. Knobs are numbered from 1.
func ParseControl(s string) (Control, error) {
	s = strings.ToLower(s)
	if strings.HasPrefix(s, "knob") {
		n, err := strconv.Atoi(s[len("knob"):])
		if err != nil || n < 1 || n > NumKnobs {
			return ControlNone, fmt.Errorf("invalid knob %q", s)
		}
		return Knob(n - 1), nil
	}
	for c, n := range controlNames {
		if n == s {
			return c, nil
		}
	}
	return ControlNone, fmt.Errorf("unknown control %q", s)
}

// EventKind is what happened to a control.
type EventKind int

const (
	Down EventKind = iota
	Up
	// Delta is a relative encoder movement; Event.Value holds the signed
	// number of ticks.
	Delta
	TouchStart
	TouchEnd
)

func (k EventKind) String() string {
	switch k {
	case Down:
		return "down"
	case Up:
		return "up"
	case Delta:
		return "delta"
	case TouchStart:
		return "touch"
	case TouchEnd:
		return "release"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single control event from the surface.
type Event struct {
	Control Control
	Kind    EventKind
	Value   int
}

func (e Event) String() string {
	if e.Kind == Delta {
		return fmt.Sprintf("%s %s %+d", e.Control, e.Kind, e.Value)
	}
	return fmt.Sprintf("%s %s", e.Control, e.Kind)
}
