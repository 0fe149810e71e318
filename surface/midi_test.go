package surface

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestDecode(t *testing.T) {
	p, err := LookupProfile("Push 2")
	require.NoError(t, err)

	for _, test := range []struct {
		desc   string
		msg    midi.Message
		want   Event
		wantOK bool
	}{
		{desc: "KnobRight", msg: midi.ControlChange(0, 71, 1), want: Event{Control: Knob(0), Kind: Delta, Value: 1}, wantOK: true},
		{desc: "KnobLeft", msg: midi.ControlChange(0, 78, 127), want: Event{Control: Knob(7), Kind: Delta, Value: -1}, wantOK: true},
		{desc: "KnobFastLeft", msg: midi.ControlChange(0, 72, 64), want: Event{Control: Knob(1), Kind: Delta, Value: -64}, wantOK: true},
		{desc: "KnobFastRight", msg: midi.ControlChange(0, 72, 63), want: Event{Control: Knob(1), Kind: Delta, Value: 63}, wantOK: true},
		{desc: "KnobStill", msg: midi.ControlChange(0, 72, 0)},
		{desc: "ButtonDown", msg: midi.ControlChange(0, 118, 127), want: Event{Control: ControlDelete, Kind: Down}, wantOK: true},
		{desc: "ButtonUp", msg: midi.ControlChange(0, 118, 0), want: Event{Control: ControlDelete, Kind: Up}, wantOK: true},
		{desc: "ModeButton", msg: midi.ControlChange(0, 110, 127), want: Event{Control: ControlModeDevice, Kind: Down}, wantOK: true},
		{desc: "UnmappedCC", msg: midi.ControlChange(0, 3, 127)},
		{desc: "Touch", msg: midi.NoteOn(0, 2, 127), want: Event{Control: Knob(2), Kind: TouchStart}, wantOK: true},
		{desc: "ReleaseNoteOff", msg: midi.NoteOff(0, 2), want: Event{Control: Knob(2), Kind: TouchEnd}, wantOK: true},
		{desc: "ReleaseZeroVelocity", msg: midi.NoteOn(0, 5, 0), want: Event{Control: Knob(5), Kind: TouchEnd}, wantOK: true},
		{desc: "Pad", msg: midi.NoteOn(0, 36, 100)},
		{desc: "Other", msg: midi.Pitchbend(0, 100)},
	} {
		t.Run(test.desc, func(t *testing.T) {
			got, ok := p.MIDI.Decode(test.msg)
			assert.Equal(t, test.wantOK, ok)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseControl(t *testing.T) {
	for c := ControlModeTrack; c < ControlKnob+NumKnobs; c++ {
		got, err := ParseControl(c.String())
		require.NoError(t, err, c.String())
		assert.Equal(t, c, got)
	}
	for _, bad := range []string{"knob0", "knob9", "knobX", "", "banana"} {
		_, err := ParseControl(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Browser")
	require.NoError(t, err)
	assert.Equal(t, ModeBrowser, m)

	_, err = ParseMode("mixer")
	assert.Error(t, err)
}

func TestLookupProfile(t *testing.T) {
	p, err := LookupProfile("push 2")
	require.NoError(t, err)
	assert.Equal(t, "Push 2", p.Name)
	assert.Equal(t, []string{"Ableton Push 2 MIDI 1"}, p.PortNames("linux"))

	byID, err := LookupProfileByID(uuid.MustParse("15176aa0-c476-11e6-9598-0800200c9a66"))
	require.NoError(t, err)
	assert.Same(t, p, byID)

	byUSB, err := LookupProfileByUSB(0x17cc, 0x1620)
	require.NoError(t, err)
	assert.Equal(t, "Kontrol S61 mk II", byUSB.Name)

	_, err = LookupProfileByUSB(0, 0)
	assert.Error(t, err, "profiles without a USB ID must not match")

	_, err = LookupProfile("Launchpad")
	assert.Error(t, err)
}

func TestProfileIDsUnique(t *testing.T) {
	seen := make(map[uuid.UUID]string)
	for _, p := range Profiles() {
		if other, ok := seen[p.ExtensionID]; ok {
			t.Errorf("%s and %s share extension ID %s", p.Name, other, p.ExtensionID)
		}
		seen[p.ExtensionID] = p.Name
	}
}
