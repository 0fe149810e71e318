package surface

import (
	"github.com/9600org/dawsync/model"
)

func (s *Surface) clipHandlers() map[Control]Handler {
	h := map[Control]Handler{
		Knob(0): s.scrollSlots,
	}
	h[ControlEnter] = onDown(func() {
		t := s.SelectedTrack()
		if t == nil {
			return
		}
		if i := SelectedSlot(t); i >= 0 {
			t.Slot(i).Launch()
		}
	})
	return h
}

// SelectedSlot returns the index of the selected clip slot of t, or -1.
func SelectedSlot(t model.Track) int {
	for i := 0; i < t.NumSlots(); i++ {
		if sl := t.Slot(i); sl != nil && sl.IsSelected() {
			return i
		}
	}
	return -1
}

// scrollSlots moves the slot selection of the selected track, stopping at
// either end.
func (s *Surface) scrollSlots(ev Event) {
	if ev.Kind != Delta {
		return
	}
	t := s.SelectedTrack()
	if t == nil || t.NumSlots() == 0 {
		return
	}
	cur := SelectedSlot(t)
	if cur < 0 {
		cur = 0
	}
	next := cur + ev.Value
	if next < 0 {
		next = 0
	} else if next >= t.NumSlots() {
		next = t.NumSlots() - 1
	}
	if sl := t.Slot(next); sl != nil {
		sl.Select()
	}
}
