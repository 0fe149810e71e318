package surface

import (
	"fmt"
)

// TargetKind is what a track mode knob controls.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetVolume
	TargetPan
	TargetCrossfader
	TargetSend
)

// Target is the parameter a knob is bound to in track mode.
type Target struct {
	Kind TargetKind
	// Send is the 0-based send index for TargetSend.
	Send int
}

func (t Target) String() string {
	switch t.Kind {
	case TargetVolume:
		return "volume"
	case TargetPan:
		return "pan"
	case TargetCrossfader:
		return "crossfader"
	case TargetSend:
		return fmt.Sprintf("send %d", t.Send+1)
	}
	return "-"
}

// Layout maps each knob to its track mode target.
type Layout [NumKnobs]Target

// KnobPolicy describes how a surface spreads the selected track's controls
// over its knobs. Knobs 0 and 1 are always volume and pan.
type KnobPolicy struct {
	// ReservedCrossfader keeps knob 2 for the crossfader and leaves knob 3
	// unused, so sends always start at knob 4. Otherwise knob 2 is the
	// crossfader only while it is displayed and sends follow straight after.
	ReservedCrossfader bool
	// SendPage is the first send shown on knob 4 when sends are toggled. Only
	// used with ReservedCrossfader.
	SendPage int
}

// Layout returns the knob layout for the sends toggle and crossfader display
// settings.
func (p KnobPolicy) Layout(sendsToggled, displayCrossfader bool) Layout {
	var l Layout
	l[0] = Target{Kind: TargetVolume}
	l[1] = Target{Kind: TargetPan}
	if p.ReservedCrossfader {
		l[2] = Target{Kind: TargetCrossfader}
		offset := 0
		if sendsToggled {
			offset = p.SendPage
		}
		for k := 4; k < NumKnobs; k++ {
			l[k] = Target{Kind: TargetSend, Send: offset + k - 4}
		}
		return l
	}
	first := 2
	if displayCrossfader {
		l[2] = Target{Kind: TargetCrossfader}
		first = 3
	}
	for k := first; k < NumKnobs; k++ {
		l[k] = Target{Kind: TargetSend, Send: k - first}
	}
	return l
}

// layoutTable holds the layouts of a policy for every combination of the
// sends toggle and crossfader display settings.
type layoutTable [2][2]Layout

func newLayoutTable(p KnobPolicy) layoutTable {
	var t layoutTable
	for i, toggled := range []bool{false, true} {
		for j, xfader := range []bool{false, true} {
			t[i][j] = p.Layout(toggled, xfader)
		}
	}
	return t
}

func (t *layoutTable) get(sendsToggled, displayCrossfader bool) Layout {
	return t[b2i(sendsToggled)][b2i(displayCrossfader)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
