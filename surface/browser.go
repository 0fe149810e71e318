package surface

func (s *Surface) browserHandlers() map[Control]Handler {
	h := knobHandlers(s.browserKnob)
	h[ControlEnter] = onDown(func() {
		b := s.model.Browser()
		if b == nil {
			return
		}
		if b.IsActive() {
			b.Stop(true)
			return
		}
		b.Browse()
	})
	return h
}

// browserKnob scrolls filter column i with knob i. The last knob scrolls the
// results.
func (s *Surface) browserKnob(knob int, ev Event) {
	if ev.Kind != Delta {
		return
	}
	b := s.model.Browser()
	if b == nil || !b.IsActive() {
		return
	}
	if knob == NumKnobs-1 {
		b.ChangeResult(ev.Value)
		return
	}
	if knob < b.NumFilterColumns() {
		b.ChangeFilter(knob, ev.Value)
	}
}
