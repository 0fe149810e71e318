package sim

import (
	"github.com/9600org/dawsync/model"
)

// Device is a simulated cursor or primary device.
type Device struct {
	Live         bool
	Title        string
	Enabled      bool
	Expanded     bool
	WindowOpen   bool
	BankPosition int
	Siblings     []string
	Params       []*Parameter
	PageNames    []string
	SelectedPage int
	DrumPads     bool
	// Layers holds device layers or drum pads. Nil entries are slots the
	// host has not populated.
	Layers []*Channel
}

var _ model.Device = &Device{}

func (d *Device) Exists() bool                 { return d.Live }
func (d *Device) Name() string                 { return d.Title }
func (d *Device) IsEnabled() bool              { return d.Enabled }
func (d *Device) IsExpanded() bool             { return d.Expanded }
func (d *Device) IsWindowOpen() bool           { return d.WindowOpen }
func (d *Device) PositionInBank() int          { return d.BankPosition }
func (d *Device) NumSiblings() int             { return len(d.Siblings) }
func (d *Device) NumParameters() int           { return len(d.Params) }
func (d *Device) ParameterPageNames() []string { return d.PageNames }
func (d *Device) SelectedParameterPage() int   { return d.SelectedPage }
func (d *Device) HasDrumPads() bool            { return d.DrumPads }
func (d *Device) NumDrumPads() int             { return len(d.Layers) }
func (d *Device) NumLayers() int               { return len(d.Layers) }
func (d *Device) ToggleEnabled()               { d.Enabled = !d.Enabled }

func (d *Device) SiblingName(i int) string {
	if i < 0 || i >= len(d.Siblings) {
		return ""
	}
	return d.Siblings[i]
}

func (d *Device) Parameter(i int) model.Parameter {
	if i < 0 || i >= len(d.Params) || d.Params[i] == nil {
		return nil
	}
	return d.Params[i]
}

func (d *Device) LayerOrDrumPad(i int) model.Channel {
	if i < 0 || i >= len(d.Layers) || d.Layers[i] == nil {
		return nil
	}
	return d.Layers[i]
}

func (d *Device) SelectParameterPage(page int) {
	if page >= 0 && page < len(d.PageNames) {
		d.SelectedPage = page
	}
}

func (d *Device) PreviousParameterPage() { d.SelectParameterPage(d.SelectedPage - 1) }
func (d *Device) NextParameterPage()     { d.SelectParameterPage(d.SelectedPage + 1) }

// NewLayer creates a device layer channel using the host's value resolution.
func (h *Host) NewLayer(name string) *Channel {
	return &Channel{
		Live:       true,
		Activated:  true,
		Title:      name,
		Vol:        h.Values.FromNormalized(0.841),
		PanValue:   h.Values.Center(),
		values:     h.Values,
		defaultVol: h.Values.FromNormalized(0.841),
	}
}
