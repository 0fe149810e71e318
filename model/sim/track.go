package sim

import (
	"fmt"

	"github.com/9600org/dawsync/model"
)

// Channel is the state shared by tracks and device layers.
type Channel struct {
	Live       bool
	Activated  bool
	Selected   bool
	Title      string
	Vol        int
	PanValue   int
	Muted      bool
	Soloed     bool
	Colour     model.Color
	Meter      int
	Sends      []*Parameter
	VolTouched bool
	PanTouched bool

	values     model.ValueChanger
	defaultVol int
	bank       *TrackBank
}

var _ model.Channel = &Channel{}

func (c *Channel) Exists() bool         { return c.Live }
func (c *Channel) IsActivated() bool    { return c.Activated }
func (c *Channel) IsSelected() bool     { return c.Selected }
func (c *Channel) Name() string         { return c.Title }
func (c *Channel) Volume() int          { return c.Vol }
func (c *Channel) ModulatedVolume() int { return c.Vol }
func (c *Channel) Pan() int             { return c.PanValue }
func (c *Channel) ModulatedPan() int    { return c.PanValue }
func (c *Channel) IsMute() bool         { return c.Muted }
func (c *Channel) IsSolo() bool         { return c.Soloed }
func (c *Channel) Color() model.Color   { return c.Colour }
func (c *Channel) VU() int              { return c.Meter }
func (c *Channel) NumSends() int        { return len(c.Sends) }

func (c *Channel) VolumeStr() string {
	return model.FormatDB(model.VolumeToDB(c.values.ToNormalized(c.Vol)))
}

func (c *Channel) PanStr() string {
	return model.FormatPan(c.values.ToNormalized(c.PanValue))
}

func (c *Channel) Send(i int) model.Parameter {
	if i < 0 || i >= len(c.Sends) || c.Sends[i] == nil {
		return nil
	}
	return c.Sends[i]
}

// Select selects this channel, deselecting its bank siblings.
func (c *Channel) Select() {
	if c.bank == nil {
		c.Selected = true
		return
	}
	for _, t := range c.bank.Tracks {
		if t != nil {
			t.Selected = &t.Channel == c
		}
	}
}

func (c *Channel) SetVolume(v int)          { c.Vol = c.values.Clamp(v) }
func (c *Channel) ChangeVolume(delta int)   { c.Vol = c.values.Change(c.Vol, delta) }
func (c *Channel) ResetVolume()             { c.Vol = c.defaultVol }
func (c *Channel) TouchVolume(touched bool) { c.VolTouched = touched }
func (c *Channel) SetPan(v int)             { c.PanValue = c.values.Clamp(v) }
func (c *Channel) ChangePan(delta int)      { c.PanValue = c.values.Change(c.PanValue, delta) }
func (c *Channel) ResetPan()                { c.PanValue = c.values.Center() }
func (c *Channel) TouchPan(touched bool)    { c.PanTouched = touched }
func (c *Channel) SetMute(on bool)          { c.Muted = on }
func (c *Channel) SetSolo(on bool)          { c.Soloed = on }
func (c *Channel) ToggleSolo()              { c.Soloed = !c.Soloed }

// crossfadeModes is indexed by CrossfadeModeAsNumber.
var crossfadeModes = []string{"A", "AB", "B"}

// Track is a simulated track.
type Track struct {
	Channel

	Kind        string
	Group       bool
	Armed       bool
	Monitor     bool
	AutoMonitor bool
	Notes       bool
	Audio       bool
	Pos         int
	Slots       []*Slot
	Crossfade   string

	idx int
}

var _ model.Track = &Track{}

func (t *Track) Index() int             { return t.idx }
func (t *Track) Type() string           { return t.Kind }
func (t *Track) IsGroup() bool          { return t.Group }
func (t *Track) IsRecArm() bool         { return t.Armed }
func (t *Track) IsMonitor() bool        { return t.Monitor }
func (t *Track) IsAutoMonitor() bool    { return t.AutoMonitor }
func (t *Track) CanHoldNotes() bool     { return t.Notes }
func (t *Track) CanHoldAudioData() bool { return t.Audio }
func (t *Track) Position() int          { return t.Pos }
func (t *Track) NumSlots() int          { return len(t.Slots) }
func (t *Track) CrossfadeMode() string  { return t.Crossfade }
func (t *Track) SetRecArm(on bool)      { t.Armed = on }

func (t *Track) Slot(i int) model.Slot {
	if i < 0 || i >= len(t.Slots) || t.Slots[i] == nil {
		return nil
	}
	return t.Slots[i]
}

func (t *Track) CrossfadeModeAsNumber() int {
	for i, m := range crossfadeModes {
		if m == t.Crossfade {
			return i
		}
	}
	return 1
}

func (t *Track) SetCrossfadeMode(mode string) {
	for _, m := range crossfadeModes {
		if m == mode {
			t.Crossfade = mode
			return
		}
	}
}

func (t *Track) ChangeCrossfadeModeAsNumber(delta int) {
	n := t.CrossfadeModeAsNumber()
	switch {
	case delta > 0 && n < len(crossfadeModes)-1:
		n++
	case delta < 0 && n > 0:
		n--
	}
	t.Crossfade = crossfadeModes[n]
}

// AddSlot appends a clip slot to t.
func (t *Track) AddSlot(name string, hasContent bool) *Slot {
	s := &Slot{Title: name, Content: hasContent, track: t}
	t.Slots = append(t.Slots, s)
	return s
}

// Slot is a simulated clip slot.
type Slot struct {
	Title      string
	Selected   bool
	Content    bool
	Playing    bool
	Recording  bool
	PlayQueued bool
	RecQueued  bool
	StopQueued bool
	Colour     model.Color
	Launched   int

	track *Track
}

var _ model.Slot = &Slot{}

func (s *Slot) Name() string            { return s.Title }
func (s *Slot) IsSelected() bool        { return s.Selected }
func (s *Slot) HasContent() bool        { return s.Content }
func (s *Slot) IsPlaying() bool         { return s.Playing }
func (s *Slot) IsRecording() bool       { return s.Recording }
func (s *Slot) IsPlayingQueued() bool   { return s.PlayQueued }
func (s *Slot) IsRecordingQueued() bool { return s.RecQueued }
func (s *Slot) IsStopQueued() bool      { return s.StopQueued }
func (s *Slot) Color() model.Color      { return s.Colour }

func (s *Slot) Select() {
	if s.track == nil {
		s.Selected = true
		return
	}
	for _, o := range s.track.Slots {
		o.Selected = o == s
	}
}

func (s *Slot) Launch() {
	s.Launched++
	if s.Content {
		s.PlayQueued = true
	}
}

// Parameter is a simulated device parameter or send.
type Parameter struct {
	Live    bool
	Title   string
	Val     int
	Default int
	Touched bool

	values model.ValueChanger
	volume bool
}

var _ model.Parameter = &Parameter{}

func (p *Parameter) Exists() bool            { return p.Live }
func (p *Parameter) Name() string            { return p.Title }
func (p *Parameter) Value() int              { return p.Val }
func (p *Parameter) ModulatedValue() int     { return p.Val }
func (p *Parameter) SetValue(v int)          { p.Val = p.values.Clamp(v) }
func (p *Parameter) ChangeValue(delta int)   { p.Val = p.values.Change(p.Val, delta) }
func (p *Parameter) ResetValue()             { p.Val = p.Default }
func (p *Parameter) TouchValue(touched bool) { p.Touched = touched }

func (p *Parameter) DisplayedValue() string {
	norm := p.values.ToNormalized(p.Val)
	if p.volume {
		return model.FormatDB(model.VolumeToDB(norm))
	}
	return fmt.Sprintf("%.0f%%", norm*100)
}
