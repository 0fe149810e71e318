package surface

import (
	"github.com/9600org/dawsync/model"
)

func (s *Surface) deviceHandlers() map[Control]Handler {
	h := knobHandlers(s.deviceKnob)
	h[ControlPageLeft] = onDown(func() {
		if d := s.cursorDevice(); d != nil {
			d.PreviousParameterPage()
		}
	})
	h[ControlPageRight] = onDown(func() {
		if d := s.cursorDevice(); d != nil {
			d.NextParameterPage()
		}
	})
	// Enter has no function while editing parameters.
	h[ControlEnter] = func(Event) {}
	return h
}

// cursorDevice returns the cursor device if there is one.
func (s *Surface) cursorDevice() model.Device {
	d := s.model.CursorDevice()
	if d == nil || !d.Exists() {
		return nil
	}
	return d
}

func (s *Surface) deviceKnob(knob int, ev Event) {
	d := s.cursorDevice()
	if d == nil || knob >= d.NumParameters() {
		return
	}
	p := d.Parameter(knob)
	if p == nil || !p.Exists() {
		return
	}
	switch ev.Kind {
	case Delta:
		p.ChangeValue(ev.Value)
	case TouchStart:
		s.touched[knob] = true
		if s.consumeDelete() {
			p.ResetValue()
			return
		}
		s.notification = p.Name() + ": " + p.DisplayedValue()
		p.TouchValue(true)
	case TouchEnd:
		s.touched[knob] = false
		s.notification = ""
		p.TouchValue(false)
		s.knobReleased()
	}
}
