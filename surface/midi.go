package surface

import (
	"gitlab.com/gomidi/midi/v2"
)

// MIDIMap describes how a surface reports its controls over MIDI.
type MIDIMap struct {
	// Knobs are the CC numbers of the relative knob encoders.
	Knobs [NumKnobs]uint8
	// Touches are the notes sent while a knob is touched.
	Touches [NumKnobs]uint8
	// Buttons maps button CC numbers to controls. A non-zero value is a
	// press, zero a release.
	Buttons map[uint8]Control
}

// Decode translates a MIDI message into a control event. It returns false for
// messages which don't belong to a mapped control.
func (m *MIDIMap) Decode(msg midi.Message) (Event, bool) {
	var ch, key, val uint8
	switch {
	case msg.GetControlChange(&ch, &key, &val):
		for i, cc := range m.Knobs {
			if cc != key {
				continue
			}
			d := relative(val)
			if d == 0 {
				return Event{}, false
			}
			return Event{Control: Knob(i), Kind: Delta, Value: d}, true
		}
		c, ok := m.Buttons[key]
		if !ok {
			return Event{}, false
		}
		if val > 0 {
			return Event{Control: c, Kind: Down}, true
		}
		return Event{Control: c, Kind: Up}, true

	case msg.GetNoteStart(&ch, &key, &val):
		if i, ok := m.touchKnob(key); ok {
			return Event{Control: Knob(i), Kind: TouchStart}, true
		}

	case msg.GetNoteEnd(&ch, &key):
		if i, ok := m.touchKnob(key); ok {
			return Event{Control: Knob(i), Kind: TouchEnd}, true
		}
	}
	return Event{}, false
}

func (m *MIDIMap) touchKnob(note uint8) (int, bool) {
	for i, n := range m.Touches {
		if n == note {
			return i, true
		}
	}
	return 0, false
}

// relative decodes a 7 bit two's complement encoder value.
func relative(v uint8) int {
	v &= 0x7f
	if v >= 0x40 {
		return int(v) - 0x80
	}
	return int(v)
}
