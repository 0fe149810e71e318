package display

import (
	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
)

// composeDevice shows the cursor device's parameters, one per knob, with the
// window of eight parameter pages containing the selected one as menu.
func (c *Composer) composeDevice(m model.Model, s *surface.Surface) Description {
	d := m.CursorDevice()
	if d == nil || !d.Exists() {
		return Description{Rows: message(msgSelectDevice)}
	}

	vc := m.ValueChanger()
	names, texts, pages := newRow(), newRow(), newRow()

	pageNames := d.ParameterPageNames()
	page, start := model.PageWindow(d.SelectedParameterPage(), len(pageNames))

	elements := make([]Element, surface.NumKnobs)
	for i := range elements {
		e := Element{Kind: ElementParameter}

		if idx := start + i; idx < len(pageNames) {
			e.MenuName = pageNames[idx]
			e.MenuSelected = idx == page
			pages.Cells[i] = pageNames[idx]
		}

		if i < d.NumParameters() {
			if p := d.Parameter(i); p != nil && p.Exists() {
				e.Name = p.Name()
				e.Values = []Value{{
					Label:   p.Name(),
					Text:    p.DisplayedValue(),
					Scaled:  vc.ToDisplayValue(p.Value()),
					Touched: s.Touched(i),
				}}
				names.Cells[i] = p.Name()
				texts.Cells[i] = p.DisplayedValue()
			}
		}
		elements[i] = e
	}

	return Description{
		Rows:     []Row{names, texts, pages, {Cells: []string{d.Name()}}},
		Elements: elements,
	}
}
