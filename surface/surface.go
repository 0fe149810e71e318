// Package surface translates control events from a hardware surface into host
// model changes.
//
// A Surface is always in exactly one interaction mode. Mode switch buttons and
// the delete modifier are handled the same way in every mode; all other
// controls are looked up in the active mode's handler table.
package surface

import (
	"fmt"
	"strings"

	"github.com/9600org/dawsync/model"
	"github.com/golang/glog"
)

// Mode is an interaction mode.
type Mode int

const (
	ModeTrack Mode = iota
	ModeDevice
	ModeBrowser
	ModeClip
)

var modeNames = []string{"track", "device", "browser", "clip"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the mode called s.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, s) {
			return Mode(i), nil
		}
	}
	return ModeTrack, fmt.Errorf("unknown mode %q", s)
}

// modeButtons maps mode switch controls to the mode they select.
var modeButtons = map[Control]Mode{
	ControlModeTrack:   ModeTrack,
	ControlModeDevice:  ModeDevice,
	ControlModeBrowser: ModeBrowser,
	ControlModeClip:    ModeClip,
}

// Handler handles one control event in a mode.
type Handler func(ev Event)

// Options are the user settings affecting control behaviour.
type Options struct {
	// SendsToggled shows the second page of sends on surfaces which reserve
	// a knob for the crossfader.
	SendsToggled bool `yaml:"sendsToggled"`
	// DisplayCrossfader puts the crossfader on knob 2 of surfaces which
	// don't reserve a knob for it.
	DisplayCrossfader bool `yaml:"displayCrossfader"`
	// StopAutomationOnKnobRelease stops arranger automation writing when a
	// knob is released.
	StopAutomationOnKnobRelease bool `yaml:"stopAutomationOnKnobRelease"`
	// CrossfaderSlowdown is the number of knob ticks needed to step the
	// crossfader mode once.
	CrossfaderSlowdown int `yaml:"crossfaderSlowdown"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		DisplayCrossfader:  true,
		CrossfaderSlowdown: 4,
	}
}

// Surface holds the interaction state of one control surface.
type Surface struct {
	model   model.Model
	profile *Profile
	opts    Options
	layouts layoutTable

	mode     Mode
	handlers map[Mode]map[Control]Handler

	deleteHeld     bool
	deleteConsumed bool
	touched        [NumKnobs]bool
	notification   string
	xfadeTicks     int
}

// New returns a surface in track mode.
func New(m model.Model, p *Profile, opts Options) *Surface {
	s := &Surface{
		model:   m,
		profile: p,
		opts:    opts,
		layouts: newLayoutTable(p.Knobs),
		mode:    ModeTrack,
	}
	s.handlers = map[Mode]map[Control]Handler{
		ModeTrack:   s.trackHandlers(),
		ModeDevice:  s.deviceHandlers(),
		ModeBrowser: s.browserHandlers(),
		ModeClip:    s.clipHandlers(),
	}
	return s
}

// Dispatch applies a control event to the model.
func (s *Surface) Dispatch(ev Event) {
	glog.V(2).Infof("%s: %s in %s mode", s.profile.Name, ev, s.mode)

	if m, ok := modeButtons[ev.Control]; ok {
		if ev.Kind == Down {
			s.SetMode(m)
		}
		return
	}

	switch ev.Control {
	case ControlDelete:
		switch ev.Kind {
		case Down:
			s.deleteHeld = true
			s.deleteConsumed = false
		case Up:
			s.deleteHeld = false
		}
		return
	case ControlPlay:
		if ev.Kind == Down {
			s.model.Transport().Play()
		}
		return
	case ControlRecord:
		if ev.Kind == Down {
			s.model.Transport().Record()
		}
		return
	}

	h, ok := s.handlers[s.mode][ev.Control]
	if !ok {
		glog.V(2).Infof("%s: no %s handler for %s", s.profile.Name, s.mode, ev.Control)
		return
	}
	h(ev)
}

// Mode returns the active mode.
func (s *Surface) Mode() Mode {
	return s.mode
}

// SetMode switches to mode m. Touch state and notifications don't carry over.
func (s *Surface) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	glog.Infof("%s: %s mode", s.profile.Name, m)
	s.mode = m
	s.touched = [NumKnobs]bool{}
	s.notification = ""
	s.xfadeTicks = 0
}

// Profile returns the surface's profile.
func (s *Surface) Profile() *Profile {
	return s.profile
}

// Options returns the current options.
func (s *Surface) Options() Options {
	return s.opts
}

// SetOptions replaces the current options.
func (s *Surface) SetOptions(o Options) {
	s.opts = o
}

// Layout returns the track mode knob layout for the current options.
func (s *Surface) Layout() Layout {
	return s.layouts.get(s.opts.SendsToggled, s.opts.DisplayCrossfader)
}

// Touched reports whether knob i is currently touched.
func (s *Surface) Touched(i int) bool {
	if i < 0 || i >= NumKnobs {
		return false
	}
	return s.touched[i]
}

// Notification returns the transient value readout, if any.
func (s *Surface) Notification() string {
	return s.notification
}

// DeleteHeld reports whether the delete modifier is held down.
func (s *Surface) DeleteHeld() bool {
	return s.deleteHeld
}

// DeleteConsumed reports whether the current delete press was used as a
// modifier.
func (s *Surface) DeleteConsumed() bool {
	return s.deleteConsumed
}

// SelectedTrack returns the selected track of the active bank, or nil.
func (s *Surface) SelectedTrack() model.Track {
	bank := s.model.TrackBank()
	if bank == nil {
		return nil
	}
	return bank.SelectedTrack()
}

// consumeDelete reports whether a touch should reset its target rather than
// touch it, marking the delete press as used if so.
func (s *Surface) consumeDelete() bool {
	if !s.deleteHeld {
		return false
	}
	s.deleteConsumed = true
	return true
}

// knobReleased stops arranger automation writing if configured to.
func (s *Surface) knobReleased() {
	if !s.opts.StopAutomationOnKnobRelease {
		return
	}
	t := s.model.Transport()
	if t.IsWritingArrangerAutomation() {
		t.ToggleWriteArrangerAutomation()
	}
}

// sendOf returns send i of c, or nil if c has no such send.
func sendOf(c model.Channel, i int) model.Parameter {
	if i < 0 || i >= c.NumSends() {
		return nil
	}
	return c.Send(i)
}

func knobHandlers(f func(knob int, ev Event)) map[Control]Handler {
	h := make(map[Control]Handler, NumKnobs)
	for i := 0; i < NumKnobs; i++ {
		i := i
		h[Knob(i)] = func(ev Event) { f(i, ev) }
	}
	return h
}

func onDown(f func()) Handler {
	return func(ev Event) {
		if ev.Kind == Down {
			f()
		}
	}
}
