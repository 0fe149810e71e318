package display

import (
	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
)

// composeBrowser shows a list per filter column with the results in the last
// column.
func (c *Composer) composeBrowser(m model.Model) Description {
	b := m.Browser()
	if b == nil || !b.IsActive() {
		return Description{Rows: message(msgNoBrowser)}
	}

	names, selected := newRow(), newRow()
	elements := make([]Element, 0, surface.NumKnobs)
	for i := 0; i < surface.NumKnobs-1 && i < b.NumFilterColumns(); i++ {
		col := b.FilterColumn(i)
		if col == nil || !col.Exists() {
			elements = append(elements, Element{Kind: ElementList})
			continue
		}
		e := Element{Kind: ElementList, MenuName: col.Name(), Name: col.Name()}
		e.Items, selected.Cells[i] = listItems(col.Items())
		names.Cells[i] = col.Name()
		elements = append(elements, e)
	}

	last := surface.NumKnobs - 1
	results := Element{Kind: ElementList, MenuName: b.SelectedContentType(), Name: "Results"}
	results.Items, selected.Cells[last] = listItems(b.ResultItems())
	names.Cells[last] = b.SelectedContentType()
	elements = append(elements, results)

	return Description{
		Rows:     []Row{names, selected},
		Elements: elements,
	}
}

// listItems converts browser items and returns the name of the selected one.
func listItems(items []model.BrowserItem) ([]Item, string) {
	var r []Item
	sel := ""
	for _, it := range items {
		if it == nil || !it.Exists() {
			continue
		}
		r = append(r, Item{Name: it.Name(), Selected: it.IsSelected()})
		if it.IsSelected() {
			sel = it.Name()
		}
	}
	return r, sel
}
