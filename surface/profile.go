package surface

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Profile is everything that differs between supported surfaces.
type Profile struct {
	Name string
	// ExtensionID identifies the surface to the host's extension registry.
	ExtensionID uuid.UUID
	// VendorID and ProductID identify the USB device, if it is claimed over
	// USB rather than driven purely by MIDI.
	VendorID  uint16
	ProductID uint16
	// Ports lists the MIDI port names the surface shows up as, keyed by
	// GOOS.
	Ports map[string][]string

	// Display is set for surfaces with a graphic display.
	Display bool
	// TouchKnobs is set for surfaces whose knobs report touch.
	TouchKnobs bool
	Knobs      KnobPolicy
	MIDI       MIDIMap
}

// PortNames returns the MIDI port names used on goos.
func (p *Profile) PortNames(goos string) []string {
	return p.Ports[goos]
}

func (p *Profile) String() string {
	return p.Name
}

// pushButtons are the CCs shared by both Push generations.
var pushButtons = map[uint8]Control{
	110: ControlModeDevice,
	111: ControlModeBrowser,
	112: ControlModeTrack,
	113: ControlModeClip,
	118: ControlDelete,
	48:  ControlEnter,
	44:  ControlPageLeft,
	45:  ControlPageRight,
	85:  ControlPlay,
	86:  ControlRecord,
}

var pushMIDI = MIDIMap{
	Knobs:   [NumKnobs]uint8{71, 72, 73, 74, 75, 76, 77, 78},
	Touches: [NumKnobs]uint8{0, 1, 2, 3, 4, 5, 6, 7},
	Buttons: pushButtons,
}

var kontrolMIDI = MIDIMap{
	Knobs:   [NumKnobs]uint8{14, 15, 16, 17, 18, 19, 20, 21},
	Touches: [NumKnobs]uint8{22, 23, 24, 25, 26, 27, 28, 29},
	Buttons: map[uint8]Control{
		96:  ControlEnter,
		97:  ControlModeTrack,
		98:  ControlModeDevice,
		99:  ControlModeBrowser,
		100: ControlModeClip,
		101: ControlDelete,
		102: ControlPageLeft,
		103: ControlPageRight,
		104: ControlPlay,
		105: ControlRecord,
	},
}

var profiles = []*Profile{
	{
		Name:        "Push 1",
		ExtensionID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/9600org/dawsync/surface/push1")),
		Ports: map[string][]string{
			"windows": {"Ableton Push"},
			"linux":   {"Ableton Push MIDI 2"},
			"darwin":  {"Ableton Push User Port"},
		},
		Display:    true,
		TouchKnobs: true,
		Knobs:      KnobPolicy{},
		MIDI:       pushMIDI,
	},
	{
		Name:        "Push 2",
		ExtensionID: uuid.MustParse("15176AA0-C476-11E6-9598-0800200C9A66"),
		VendorID:    0x2982,
		ProductID:   0x1967,
		Ports: map[string][]string{
			"windows": {"Ableton Push 2"},
			"linux":   {"Ableton Push 2 MIDI 1"},
			"darwin":  {"Ableton Push 2 Live Port"},
		},
		Display:    true,
		TouchKnobs: true,
		Knobs:      KnobPolicy{ReservedCrossfader: true, SendPage: 4},
		MIDI:       pushMIDI,
	},
	{
		Name:        "Kontrol S49 mk II",
		ExtensionID: uuid.MustParse("845377d1-89d5-4d54-9df7-b7a2d4c26db2"),
		VendorID:    0x17cc,
		ProductID:   0x1610,
		Ports:       kontrolPorts,
		Display:     true,
		TouchKnobs:  true,
		Knobs:       KnobPolicy{},
		MIDI:        kontrolMIDI,
	},
	{
		Name:        "Kontrol S61 mk II",
		ExtensionID: uuid.MustParse("9adc174c-5957-4a5c-9698-83a91bd2b18b"),
		VendorID:    0x17cc,
		ProductID:   0x1620,
		Ports:       kontrolPorts,
		Display:     true,
		TouchKnobs:  true,
		Knobs:       KnobPolicy{},
		MIDI:        kontrolMIDI,
	},
}

var kontrolPorts = map[string][]string{
	"windows": {"Komplete Kontrol - 2"},
	"linux":   {"Komplete Kontrol - 2"},
	"darwin":  {"Komplete Kontrol - 2"},
}

// Profiles returns all known profiles sorted by name.
func Profiles() []*Profile {
	r := append([]*Profile(nil), profiles...)
	sort.Slice(r, func(i, j int) bool { return r[i].Name < r[j].Name })
	return r
}

// LookupProfile returns the profile called name, ignoring case.
func LookupProfile(name string) (*Profile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown surface %q", name)
}

// LookupProfileByID returns the profile registered under extension ID id.
func LookupProfileByID(id uuid.UUID) (*Profile, error) {
	for _, p := range profiles {
		if p.ExtensionID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no surface with extension ID %s", id)
}

// LookupProfileByUSB returns the profile of the USB device vid:pid.
func LookupProfileByUSB(vid, pid uint16) (*Profile, error) {
	for _, p := range profiles {
		if p.VendorID != 0 && p.VendorID == vid && p.ProductID == pid {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no surface with USB ID %04x:%04x", vid, pid)
}
