package sim

import (
	"github.com/9600org/dawsync/model"
)

// Browser is a simulated preset browser.
type Browser struct {
	Active      bool
	ContentType string
	Columns     []*BrowserColumn
	Results     []*BrowserItem
	// Committed counts browser sessions closed with a selection.
	Committed int
}

var _ model.Browser = &Browser{}

func (b *Browser) IsActive() bool              { return b.Active }
func (b *Browser) SelectedContentType() string { return b.ContentType }
func (b *Browser) NumFilterColumns() int       { return len(b.Columns) }
func (b *Browser) Browse()                     { b.Active = true }

func (b *Browser) FilterColumn(i int) model.BrowserColumn {
	if i < 0 || i >= len(b.Columns) || b.Columns[i] == nil {
		return nil
	}
	return b.Columns[i]
}

func (b *Browser) ResultItems() []model.BrowserItem {
	return itemsOf(b.Results)
}

func (b *Browser) Stop(commit bool) {
	if commit && b.Active {
		b.Committed++
	}
	b.Active = false
}

func (b *Browser) ChangeFilter(column, delta int) {
	if column < 0 || column >= len(b.Columns) || b.Columns[column] == nil {
		return
	}
	moveSelection(b.Columns[column].Entries, delta)
}

func (b *Browser) ChangeResult(delta int) {
	moveSelection(b.Results, delta)
}

// moveSelection moves the selected flag by delta entries, stopping at either
// end of the list.
func moveSelection(items []*BrowserItem, delta int) {
	if len(items) == 0 {
		return
	}
	cur := 0
	for i, it := range items {
		if it != nil && it.Selected {
			cur = i
			break
		}
	}
	next := cur + delta
	if next < 0 {
		next = 0
	} else if next >= len(items) {
		next = len(items) - 1
	}
	for i, it := range items {
		if it != nil {
			it.Selected = i == next
		}
	}
}

// itemsOf keeps nil entries in place as nil interfaces, so later items stay
// in their slots.
func itemsOf(in []*BrowserItem) []model.BrowserItem {
	out := make([]model.BrowserItem, len(in))
	for i, it := range in {
		if it != nil {
			out[i] = it
		}
	}
	return out
}

// BrowserColumn is a simulated filter column.
type BrowserColumn struct {
	Live    bool
	Title   string
	Pattern string
	Entries []*BrowserItem
}

var _ model.BrowserColumn = &BrowserColumn{}

func (c *BrowserColumn) Exists() bool               { return c.Live }
func (c *BrowserColumn) Name() string               { return c.Title }
func (c *BrowserColumn) Wildcard() string           { return c.Pattern }
func (c *BrowserColumn) Items() []model.BrowserItem { return itemsOf(c.Entries) }

// BrowserItem is a simulated filter entry or result.
type BrowserItem struct {
	Live     bool
	Title    string
	Hits     int
	Selected bool
}

var _ model.BrowserItem = &BrowserItem{}

func (i *BrowserItem) Exists() bool     { return i.Live }
func (i *BrowserItem) Name() string     { return i.Title }
func (i *BrowserItem) HitCount() int    { return i.Hits }
func (i *BrowserItem) IsSelected() bool { return i.Selected }
