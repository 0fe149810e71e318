package display

import (
	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
)

// composeClip lists the clip slots of the selected track.
func (c *Composer) composeClip(m model.Model, s *surface.Surface) Description {
	t := s.SelectedTrack()
	if t == nil {
		return Description{Rows: message(msgSelectTrack)}
	}

	e := Element{
		Kind:     ElementList,
		MenuName: t.Name(),
		Name:     t.Name(),
		Color:    color(t.Color()),
		Selected: true,
	}
	current := ""
	for i := 0; i < t.NumSlots(); i++ {
		sl := t.Slot(i)
		if sl == nil {
			continue
		}
		name := sl.Name()
		if name == "" && !sl.HasContent() {
			name = "-"
		}
		e.Items = append(e.Items, Item{Name: name, Selected: sl.IsSelected()})
		if sl.IsSelected() {
			current = name
		}
	}

	return Description{
		Rows:     []Row{{Cells: []string{t.Name(), current}}},
		Elements: []Element{e},
	}
}
