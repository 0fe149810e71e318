package surface

import (
	"fmt"
	"testing"

	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/model/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHost returns a host with two tracks, the second of which is selected and
// has numSends sends.
func newHost(numSends int) (*sim.Host, *sim.Track) {
	h := sim.NewHost(model.DefaultValueChanger())
	h.AddTrack("Bass")
	tr := h.AddTrack("Drums")
	for i := 0; i < numSends; i++ {
		h.AddSend(tr, fmt.Sprintf("FX %d", i+1), 100)
	}
	h.Tracks.Select(1)
	return h, tr
}

func newSurface(t *testing.T, h *sim.Host, profile string, opts Options) *Surface {
	t.Helper()
	p, err := LookupProfile(profile)
	require.NoError(t, err)
	return New(h, p, opts)
}

func sendValues(tr *sim.Track) []int {
	r := make([]int, len(tr.Sends))
	for i, s := range tr.Sends {
		r[i] = s.Val
	}
	return r
}

func TestKnobPolicyLayout(t *testing.T) {
	push1 := KnobPolicy{}
	push2 := KnobPolicy{ReservedCrossfader: true, SendPage: 4}

	for _, test := range []struct {
		desc    string
		policy  KnobPolicy
		toggled bool
		xfader  bool
		knob    int
		want    Target
	}{
		{desc: "Volume", policy: push2, knob: 0, want: Target{Kind: TargetVolume}},
		{desc: "Pan", policy: push1, xfader: true, knob: 1, want: Target{Kind: TargetPan}},
		{desc: "Push1CrossfaderShown", policy: push1, xfader: true, knob: 2, want: Target{Kind: TargetCrossfader}},
		{desc: "Push1CrossfaderShownFirstSend", policy: push1, xfader: true, knob: 3, want: Target{Kind: TargetSend, Send: 0}},
		{desc: "Push1CrossfaderHidden", policy: push1, knob: 2, want: Target{Kind: TargetSend, Send: 0}},
		{desc: "Push1CrossfaderHiddenLastKnob", policy: push1, knob: 7, want: Target{Kind: TargetSend, Send: 5}},
		{desc: "Push1IgnoresToggle", policy: push1, toggled: true, xfader: true, knob: 3, want: Target{Kind: TargetSend, Send: 0}},
		{desc: "Push2Crossfader", policy: push2, knob: 2, want: Target{Kind: TargetCrossfader}},
		{desc: "Push2Unused", policy: push2, toggled: true, knob: 3, want: Target{Kind: TargetNone}},
		{desc: "Push2Untoggled", policy: push2, knob: 4, want: Target{Kind: TargetSend, Send: 0}},
		{desc: "Push2Toggled", policy: push2, toggled: true, knob: 4, want: Target{Kind: TargetSend, Send: 4}},
		{desc: "Push2ToggledLastKnob", policy: push2, toggled: true, xfader: true, knob: 7, want: Target{Kind: TargetSend, Send: 7}},
	} {
		t.Run(test.desc, func(t *testing.T) {
			got := test.policy.Layout(test.toggled, test.xfader)[test.knob]
			assert.Equal(t, test.want, got)
		})
	}
}

func TestLayoutFollowsOptions(t *testing.T) {
	h, _ := newHost(0)
	s := newSurface(t, h, "Push 2", Options{})
	assert.Equal(t, Target{Kind: TargetSend, Send: 0}, s.Layout()[4])

	s.SetOptions(Options{SendsToggled: true})
	assert.Equal(t, Target{Kind: TargetSend, Send: 4}, s.Layout()[4])
}

func TestTrackKnobChangesSend(t *testing.T) {
	for _, test := range []struct {
		desc     string
		profile  string
		opts     Options
		knob     int
		wantSend int
	}{
		{desc: "Push1", profile: "Push 1", opts: Options{DisplayCrossfader: true}, knob: 3, wantSend: 0},
		{desc: "Push2Toggled", profile: "Push 2", opts: Options{SendsToggled: true}, knob: 4, wantSend: 4},
		{desc: "Push2Untoggled", profile: "Push 2", knob: 5, wantSend: 1},
		{desc: "Kontrol", profile: "Kontrol S61 mk II", knob: 2, wantSend: 0},
	} {
		t.Run(test.desc, func(t *testing.T) {
			h, tr := newHost(8)
			s := newSurface(t, h, test.profile, test.opts)

			s.Dispatch(Event{Control: Knob(test.knob), Kind: Delta, Value: 1})

			want := []int{100, 100, 100, 100, 100, 100, 100, 100}
			want[test.wantSend] = 108
			assert.Equal(t, want, sendValues(tr))
		})
	}
}

func TestTrackKnobVolumeAndPan(t *testing.T) {
	h, tr := newHost(0)
	s := newSurface(t, h, "Push 2", DefaultOptions())
	vol, pan := tr.Vol, tr.PanValue

	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: -2})
	s.Dispatch(Event{Control: Knob(1), Kind: Delta, Value: 3})

	assert.Equal(t, vol-16, tr.Vol)
	assert.Equal(t, pan+24, tr.PanValue)
}

func TestSendOutOfRangeIgnored(t *testing.T) {
	h, tr := newHost(2)
	s := newSurface(t, h, "Push 2", Options{SendsToggled: true})

	for k := 4; k < NumKnobs; k++ {
		s.Dispatch(Event{Control: Knob(k), Kind: Delta, Value: 1})
		s.Dispatch(Event{Control: Knob(k), Kind: TouchStart})
		s.Dispatch(Event{Control: Knob(k), Kind: TouchEnd})
	}
	assert.Equal(t, []int{100, 100}, sendValues(tr))
	assert.Empty(t, s.Notification())
}

func TestNoSelectedTrack(t *testing.T) {
	h, tr := newHost(8)
	h.Tracks.Select(-1)
	s := newSurface(t, h, "Push 2", DefaultOptions())
	before := *tr
	beforeSends := sendValues(tr)

	s.Dispatch(Event{Control: ControlDelete, Kind: Down})
	for k := 0; k < NumKnobs; k++ {
		s.Dispatch(Event{Control: Knob(k), Kind: Delta, Value: 5})
		s.Dispatch(Event{Control: Knob(k), Kind: TouchStart})
		s.Dispatch(Event{Control: Knob(k), Kind: TouchEnd})
	}
	s.Dispatch(Event{Control: ControlEnter, Kind: Down})

	assert.Equal(t, before.Vol, tr.Vol)
	assert.Equal(t, before.PanValue, tr.PanValue)
	assert.Equal(t, before.Crossfade, tr.Crossfade)
	assert.Equal(t, before.Soloed, tr.Soloed)
	assert.Equal(t, beforeSends, sendValues(tr))
	assert.False(t, s.DeleteConsumed())
}

func TestTouchWithDeleteResets(t *testing.T) {
	for _, test := range []struct {
		desc  string
		knob  int
		setup func(*sim.Track)
		check func(*testing.T, *sim.Track)
	}{
		{
			desc:  "Volume",
			knob:  0,
			setup: func(tr *sim.Track) { tr.Vol = 3 },
			check: func(t *testing.T, tr *sim.Track) {
				assert.Equal(t, model.DefaultValueChanger().FromNormalized(0.841), tr.Vol)
				assert.False(t, tr.VolTouched)
			},
		}, {
			desc:  "Pan",
			knob:  1,
			setup: func(tr *sim.Track) { tr.PanValue = 3 },
			check: func(t *testing.T, tr *sim.Track) {
				assert.Equal(t, 512, tr.PanValue)
			},
		}, {
			desc:  "Crossfader",
			knob:  2,
			setup: func(tr *sim.Track) { tr.Crossfade = "B" },
			check: func(t *testing.T, tr *sim.Track) {
				assert.Equal(t, "AB", tr.Crossfade)
			},
		}, {
			desc:  "Send",
			knob:  5,
			setup: func(tr *sim.Track) { tr.Sends[1].Val = 900 },
			check: func(t *testing.T, tr *sim.Track) {
				assert.Equal(t, 100, tr.Sends[1].Val)
				assert.False(t, tr.Sends[1].Touched)
			},
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			h, tr := newHost(4)
			test.setup(tr)
			s := newSurface(t, h, "Push 2", DefaultOptions())

			s.Dispatch(Event{Control: ControlDelete, Kind: Down})
			s.Dispatch(Event{Control: Knob(test.knob), Kind: TouchStart})

			test.check(t, tr)
			assert.True(t, s.DeleteConsumed())
			assert.Empty(t, s.Notification())

			s.Dispatch(Event{Control: ControlDelete, Kind: Up})
			assert.False(t, s.DeleteHeld())
		})
	}
}

func TestTouchShowsReadout(t *testing.T) {
	h, tr := newHost(4)
	s := newSurface(t, h, "Push 2", DefaultOptions())

	s.Dispatch(Event{Control: Knob(0), Kind: TouchStart})
	assert.Equal(t, "Volume: "+tr.VolumeStr(), s.Notification())
	assert.True(t, tr.VolTouched)
	assert.True(t, s.Touched(0))

	s.Dispatch(Event{Control: Knob(0), Kind: TouchEnd})
	assert.Empty(t, s.Notification())
	assert.False(t, tr.VolTouched)
	assert.False(t, s.Touched(0))

	s.Dispatch(Event{Control: Knob(4), Kind: TouchStart})
	assert.Equal(t, "Send FX 1: "+tr.Sends[0].DisplayedValue(), s.Notification())
	assert.True(t, tr.Sends[0].Touched)

	s.Dispatch(Event{Control: Knob(2), Kind: TouchStart})
	assert.Equal(t, "Crossfader: AB", s.Notification())
}

func TestSendReadoutUsesEffectTrackName(t *testing.T) {
	h, tr := newHost(2)
	h.Effects = &sim.TrackBank{Tracks: []*sim.Track{h.NewTrack("Reverb", "effect")}}
	s := newSurface(t, h, "Push 2", DefaultOptions())

	s.Dispatch(Event{Control: Knob(4), Kind: TouchStart})
	assert.Equal(t, "Send Reverb: "+tr.Sends[0].DisplayedValue(), s.Notification())

	// No effect track feeds the second send.
	s.Dispatch(Event{Control: Knob(5), Kind: TouchStart})
	assert.Empty(t, s.Notification())
}

func TestStopAutomationOnKnobRelease(t *testing.T) {
	for _, test := range []struct {
		desc      string
		stop      bool
		writing   bool
		wantWrite bool
	}{
		{desc: "Enabled", stop: true, writing: true, wantWrite: false},
		{desc: "Disabled", stop: false, writing: true, wantWrite: true},
		{desc: "NotWriting", stop: true, writing: false, wantWrite: false},
	} {
		t.Run(test.desc, func(t *testing.T) {
			h, _ := newHost(0)
			h.Trans.WriteArranger = test.writing
			s := newSurface(t, h, "Push 2", Options{StopAutomationOnKnobRelease: test.stop})

			s.Dispatch(Event{Control: Knob(0), Kind: TouchStart})
			assert.Equal(t, test.writing, h.Trans.WriteArranger)
			s.Dispatch(Event{Control: Knob(0), Kind: TouchEnd})
			assert.Equal(t, test.wantWrite, h.Trans.WriteArranger)
		})
	}
}

func TestCrossfaderSlowdown(t *testing.T) {
	h, tr := newHost(0)
	s := newSurface(t, h, "Push 2", Options{CrossfaderSlowdown: 4})

	for i := 0; i < 3; i++ {
		s.Dispatch(Event{Control: Knob(2), Kind: Delta, Value: 1})
		require.Equal(t, "AB", tr.Crossfade, "after %d ticks", i+1)
	}
	s.Dispatch(Event{Control: Knob(2), Kind: Delta, Value: 1})
	assert.Equal(t, "B", tr.Crossfade)
}

func TestModeButtons(t *testing.T) {
	h, _ := newHost(0)
	s := newSurface(t, h, "Push 2", DefaultOptions())
	require.Equal(t, ModeTrack, s.Mode())

	s.Dispatch(Event{Control: Knob(0), Kind: TouchStart})
	s.Dispatch(Event{Control: ControlModeDevice, Kind: Down})
	assert.Equal(t, ModeDevice, s.Mode())
	assert.False(t, s.Touched(0))
	assert.Empty(t, s.Notification())

	s.Dispatch(Event{Control: ControlModeBrowser, Kind: Up})
	assert.Equal(t, ModeDevice, s.Mode())

	s.Dispatch(Event{Control: ControlModeClip, Kind: Down})
	assert.Equal(t, ModeClip, s.Mode())
}

func TestEnterButton(t *testing.T) {
	h, tr := newHost(0)
	h.Cursor.Live = true
	s := newSurface(t, h, "Kontrol S49 mk II", DefaultOptions())

	s.Dispatch(Event{Control: ControlEnter, Kind: Up})
	assert.False(t, tr.Soloed, "release must be ignored")
	s.Dispatch(Event{Control: ControlEnter, Kind: Down})
	assert.True(t, tr.Soloed)

	s.SetMode(ModeDevice)
	s.Dispatch(Event{Control: ControlEnter, Kind: Down})
	assert.True(t, tr.Soloed)
	assert.False(t, h.Brwsr.Active)

	s.SetMode(ModeBrowser)
	s.Dispatch(Event{Control: ControlEnter, Kind: Down})
	assert.True(t, h.Brwsr.Active)
	s.Dispatch(Event{Control: ControlEnter, Kind: Down})
	assert.False(t, h.Brwsr.Active)
	assert.Equal(t, 1, h.Brwsr.Committed)
	assert.True(t, tr.Soloed)
}

func TestDeviceMode(t *testing.T) {
	h, _ := newHost(0)
	h.Cursor.Live = true
	h.Cursor.Params = []*sim.Parameter{h.NewParameter("Cutoff", 500), h.NewParameter("Resonance", 10)}
	h.Cursor.PageNames = []string{"Filter", "Env", "LFO"}
	s := newSurface(t, h, "Push 2", DefaultOptions())
	s.SetMode(ModeDevice)

	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: 2})
	assert.Equal(t, 516, h.Cursor.Params[0].Val)

	// Knobs without a parameter do nothing.
	s.Dispatch(Event{Control: Knob(5), Kind: Delta, Value: 2})

	s.Dispatch(Event{Control: Knob(1), Kind: TouchStart})
	assert.Equal(t, "Resonance: "+h.Cursor.Params[1].DisplayedValue(), s.Notification())
	assert.True(t, h.Cursor.Params[1].Touched)
	s.Dispatch(Event{Control: Knob(1), Kind: TouchEnd})
	assert.False(t, h.Cursor.Params[1].Touched)

	s.Dispatch(Event{Control: ControlDelete, Kind: Down})
	s.Dispatch(Event{Control: Knob(0), Kind: TouchStart})
	assert.Equal(t, 500, h.Cursor.Params[0].Val)
	s.Dispatch(Event{Control: ControlDelete, Kind: Up})

	s.Dispatch(Event{Control: ControlPageRight, Kind: Down})
	s.Dispatch(Event{Control: ControlPageRight, Kind: Down})
	s.Dispatch(Event{Control: ControlPageRight, Kind: Down})
	assert.Equal(t, 2, h.Cursor.SelectedPage)
	s.Dispatch(Event{Control: ControlPageLeft, Kind: Down})
	assert.Equal(t, 1, h.Cursor.SelectedPage)
}

func TestBrowserMode(t *testing.T) {
	h, _ := newHost(0)
	items := func(names ...string) []*sim.BrowserItem {
		r := make([]*sim.BrowserItem, len(names))
		for i, n := range names {
			r[i] = &sim.BrowserItem{Live: true, Title: n, Selected: i == 0}
		}
		return r
	}
	h.Brwsr.Columns = []*sim.BrowserColumn{
		{Live: true, Title: "Category", Entries: items("Bass", "Keys", "Pads")},
	}
	h.Brwsr.Results = items("Deep", "Sub", "Wobble")
	s := newSurface(t, h, "Push 2", DefaultOptions())
	s.SetMode(ModeBrowser)

	// Knobs do nothing until the browser is open.
	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: 1})
	assert.True(t, h.Brwsr.Columns[0].Entries[0].Selected)

	s.Dispatch(Event{Control: ControlEnter, Kind: Down})
	require.True(t, h.Brwsr.Active)

	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: 2})
	assert.True(t, h.Brwsr.Columns[0].Entries[2].Selected)

	// Knob 1 has no column.
	s.Dispatch(Event{Control: Knob(1), Kind: Delta, Value: 1})

	s.Dispatch(Event{Control: Knob(NumKnobs - 1), Kind: Delta, Value: 1})
	assert.True(t, h.Brwsr.Results[1].Selected)
	s.Dispatch(Event{Control: Knob(NumKnobs - 1), Kind: Delta, Value: -5})
	assert.True(t, h.Brwsr.Results[0].Selected)
}

func TestClipMode(t *testing.T) {
	h, tr := newHost(0)
	tr.AddSlot("Intro", true)
	tr.AddSlot("Verse", true)
	tr.AddSlot("", false)
	s := newSurface(t, h, "Push 2", DefaultOptions())
	s.SetMode(ModeClip)

	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: 1})
	assert.Equal(t, 1, SelectedSlot(tr))
	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: 10})
	assert.Equal(t, 2, SelectedSlot(tr))
	s.Dispatch(Event{Control: Knob(0), Kind: Delta, Value: -1})
	assert.Equal(t, 1, SelectedSlot(tr))

	s.Dispatch(Event{Control: ControlEnter, Kind: Down})
	assert.Equal(t, 1, tr.Slots[1].Launched)
	assert.True(t, tr.Slots[1].PlayQueued)
	assert.False(t, tr.Soloed)
}

func TestTransportButtons(t *testing.T) {
	h, _ := newHost(0)
	s := newSurface(t, h, "Push 1", DefaultOptions())

	s.Dispatch(Event{Control: ControlPlay, Kind: Down})
	s.Dispatch(Event{Control: ControlPlay, Kind: Up})
	s.Dispatch(Event{Control: ControlRecord, Kind: Down})
	assert.True(t, h.Trans.Playing)
	assert.True(t, h.Trans.Recording)
}
