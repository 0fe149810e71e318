package display

import (
	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
)

const (
	msgSelectTrack  = "Please select a track..."
	msgSelectDevice = "Please select a device..."
	msgNoBrowser    = "Press Enter to browse..."
)

// Composer builds display descriptions. It only reads the model.
type Composer struct {
	// tracks is the number of track bank slots shown.
	tracks int
}

// NewComposer returns a composer for a track bank of the given size.
func NewComposer(tracks int) *Composer {
	return &Composer{tracks: tracks}
}

// Compose returns what the display of s should show for the current model
// state. Calling it twice without the model or surface changing returns equal
// descriptions.
func (c *Composer) Compose(m model.Model, s *surface.Surface) Description {
	var d Description
	switch s.Mode() {
	case surface.ModeDevice:
		d = c.composeDevice(m, s)
	case surface.ModeBrowser:
		d = c.composeBrowser(m)
	case surface.ModeClip:
		d = c.composeClip(m, s)
	default:
		d = c.composeTrack(m, s)
	}
	d.Mode = s.Mode().String()
	d.Notification = s.Notification()
	return d
}

func message(text string) []Row {
	return []Row{{Cells: []string{text}}}
}

func newRow() Row {
	return Row{Cells: make([]string, surface.NumKnobs)}
}

func color(c model.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}
