package surface

import (
	"fmt"

	"github.com/9600org/dawsync/model"
)

func (s *Surface) trackHandlers() map[Control]Handler {
	h := knobHandlers(s.trackKnob)
	h[ControlEnter] = onDown(func() {
		if t := s.SelectedTrack(); t != nil {
			t.ToggleSolo()
		}
	})
	return h
}

// trackKnob handles knob events in track mode. Without a selected track all
// knobs do nothing.
func (s *Surface) trackKnob(knob int, ev Event) {
	t := s.SelectedTrack()
	if t == nil {
		return
	}
	target := s.Layout()[knob]
	switch ev.Kind {
	case Delta:
		s.changeTarget(t, target, ev.Value)
	case TouchStart:
		s.touchTarget(t, target, knob, true)
	case TouchEnd:
		s.touchTarget(t, target, knob, false)
	}
}

func (s *Surface) changeTarget(t model.Track, target Target, delta int) {
	switch target.Kind {
	case TargetVolume:
		t.ChangeVolume(delta)
	case TargetPan:
		t.ChangePan(delta)
	case TargetCrossfader:
		if s.crossfaderStep() {
			t.ChangeCrossfadeModeAsNumber(delta)
		}
	case TargetSend:
		if p := sendOf(t, target.Send); p != nil {
			p.ChangeValue(delta)
		}
	}
}

// crossfaderStep counts a crossfader knob tick and reports whether enough
// have been seen to step the mode.
func (s *Surface) crossfaderStep() bool {
	s.xfadeTicks++
	if s.xfadeTicks < s.opts.CrossfaderSlowdown {
		return false
	}
	s.xfadeTicks = 0
	return true
}

func (s *Surface) touchTarget(t model.Track, target Target, knob int, touched bool) {
	s.touched[knob] = touched

	if touched && s.consumeDelete() {
		resetTarget(t, target)
		return
	}

	if touched {
		s.notification = s.readout(t, target)
	} else {
		s.notification = ""
	}

	switch target.Kind {
	case TargetVolume:
		t.TouchVolume(touched)
	case TargetPan:
		t.TouchPan(touched)
	case TargetSend:
		if p := sendOf(t, target.Send); p != nil {
			p.TouchValue(touched)
		}
	}

	if !touched {
		s.knobReleased()
	}
}

func resetTarget(t model.Track, target Target) {
	switch target.Kind {
	case TargetVolume:
		t.ResetVolume()
	case TargetPan:
		t.ResetPan()
	case TargetCrossfader:
		t.SetCrossfadeMode("AB")
	case TargetSend:
		if p := sendOf(t, target.Send); p != nil {
			p.ResetValue()
		}
	}
}

// readout returns the notification shown while a knob is touched.
func (s *Surface) readout(t model.Track, target Target) string {
	switch target.Kind {
	case TargetVolume:
		return "Volume: " + t.VolumeStr()
	case TargetPan:
		return "Pan: " + t.PanStr()
	case TargetCrossfader:
		return "Crossfader: " + t.CrossfadeMode()
	case TargetSend:
		p := sendOf(t, target.Send)
		if p == nil {
			return ""
		}
		name := SendName(s.model, t, target.Send)
		if name == "" {
			return ""
		}
		return fmt.Sprintf("Send %s: %s", name, p.DisplayedValue())
	}
	return ""
}

// SendName returns the name of send i of t: the name of the effect track it
// feeds if the host has effect tracks, or the send's own name otherwise.
func SendName(m model.Model, t model.Channel, i int) string {
	if fx := m.EffectTrackBank(); fx != nil {
		if ft := fx.Track(i); ft != nil {
			return ft.Name()
		}
		return ""
	}
	if p := sendOf(t, i); p != nil {
		return p.Name()
	}
	return ""
}
