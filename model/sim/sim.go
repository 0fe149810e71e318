// Package sim is an in-memory DAW host implementing the model interfaces.
//
// It stands in for the real host in tests and when the bridge runs without
// one attached. All state lives in exported fields so tests can arrange a
// scenario directly.
package sim

import (
	"github.com/9600org/dawsync/model"
)

// Host is a simulated DAW.
type Host struct {
	Trans    *Transport
	App      Application
	Arr      Arranger
	Mix      Mixer
	Proj     Project
	Master   *Track
	Tracks   *TrackBank
	Effects  *TrackBank
	FXActive bool
	Scenes   *SceneBank
	Cursor   *Device
	Primary  *Device
	Brwsr    *Browser
	Keys     *Keyboard
	Values   model.ValueChanger
}

var _ model.Model = &Host{}

// NewHost returns a host with an empty project, a master track and the given
// value resolution.
func NewHost(vc model.ValueChanger) *Host {
	h := &Host{
		Trans:   &Transport{BPM: 120, Num: 4, Den: 4},
		App:     Application{Layout: "ARRANGE", EngineActive: true},
		Proj:    Project{Title: "Untitled"},
		Tracks:  &TrackBank{},
		Scenes:  &SceneBank{},
		Cursor:  &Device{},
		Primary: &Device{},
		Brwsr:   &Browser{},
		Keys:    &Keyboard{Pressed: make(map[int]bool)},
		Values:  vc,
	}
	h.Master = h.NewTrack("Master", "master")
	h.Master.Live = true
	return h
}

func (h *Host) Transport() model.Transport     { return h.Trans }
func (h *Host) Application() model.Application { return &h.App }
func (h *Host) Arranger() model.Arranger       { return &h.Arr }
func (h *Host) Mixer() model.Mixer             { return &h.Mix }
func (h *Host) Project() model.Project         { return &h.Proj }
func (h *Host) MasterTrack() model.Track       { return h.Master }
func (h *Host) IsEffectTrackBankActive() bool  { return h.FXActive }
func (h *Host) Keyboard() model.Keyboard       { return h.Keys }
func (h *Host) ValueChanger() model.ValueChanger {
	return h.Values
}

// CursorDevice, PrimaryDevice and Browser return nil interfaces when the
// host has none, never a nil pointer wrapped in an interface.
func (h *Host) CursorDevice() model.Device {
	if h.Cursor == nil {
		return nil
	}
	return h.Cursor
}

func (h *Host) PrimaryDevice() model.Device {
	if h.Primary == nil {
		return nil
	}
	return h.Primary
}

func (h *Host) Browser() model.Browser {
	if h.Brwsr == nil {
		return nil
	}
	return h.Brwsr
}

func (h *Host) TrackBank() model.TrackBank {
	if h.FXActive && h.Effects != nil {
		return h.Effects
	}
	return h.Tracks
}

func (h *Host) EffectTrackBank() model.TrackBank {
	if h.Effects == nil {
		return nil
	}
	return h.Effects
}

func (h *Host) SceneBank() model.SceneBank {
	if h.Scenes == nil {
		return nil
	}
	return h.Scenes
}

// NewTrack creates a track using this host's value resolution. It is not
// added to any bank.
func (h *Host) NewTrack(name, kind string) *Track {
	t := &Track{Kind: kind, Crossfade: "AB"}
	t.Channel = Channel{
		Live:       true,
		Activated:  true,
		Title:      name,
		Vol:        h.Values.FromNormalized(0.841),
		PanValue:   h.Values.Center(),
		values:     h.Values,
		Colour:     model.ColorGrey,
		defaultVol: h.Values.FromNormalized(0.841),
	}
	return t
}

// AddTrack appends a new track to the instrument/audio bank.
func (h *Host) AddTrack(name string) *Track {
	t := h.NewTrack(name, "instrument")
	t.Channel.bank = h.Tracks
	h.Tracks.Tracks = append(h.Tracks.Tracks, t)
	return t
}

// NewParameter creates a parameter using this host's value resolution.
func (h *Host) NewParameter(name string, value int) *Parameter {
	return &Parameter{Live: true, Title: name, Val: value, Default: value, values: h.Values}
}

// AddSend appends a send to t.
func (h *Host) AddSend(t *Track, name string, value int) *Parameter {
	p := h.NewParameter(name, value)
	p.volume = true
	t.Sends = append(t.Sends, p)
	return p
}

// TrackBank is a window of tracks. Tracks beyond the slice are empty slots.
type TrackBank struct {
	Tracks []*Track
}

func (b *TrackBank) Track(i int) model.Track {
	if i < 0 || i >= len(b.Tracks) || b.Tracks[i] == nil {
		return nil
	}
	b.Tracks[i].idx = i
	return b.Tracks[i]
}

func (b *TrackBank) SelectedTrack() model.Track {
	for i, t := range b.Tracks {
		if t != nil && t.Selected {
			t.idx = i
			return t
		}
	}
	return nil
}

// Select selects the track at i and deselects the rest.
func (b *TrackBank) Select(i int) {
	for j, t := range b.Tracks {
		if t != nil {
			t.Selected = i == j
		}
	}
}

// Swap exchanges the tracks at slots i and j.
func (b *TrackBank) Swap(i, j int) {
	b.Tracks[i], b.Tracks[j] = b.Tracks[j], b.Tracks[i]
}

// SceneBank is a window of scenes.
type SceneBank struct {
	Scenes []*Scene
}

func (b *SceneBank) Scene(i int) model.Scene {
	if i < 0 || i >= len(b.Scenes) || b.Scenes[i] == nil {
		return nil
	}
	return b.Scenes[i]
}

// Scene is a simulated scene.
type Scene struct {
	Live     bool
	Title    string
	Selected bool
	Launched int
}

func (s *Scene) Exists() bool     { return s.Live }
func (s *Scene) Name() string     { return s.Title }
func (s *Scene) IsSelected() bool { return s.Selected }
func (s *Scene) Launch()          { s.Launched++ }

// Application is simulated window state.
type Application struct {
	Layout       string
	EngineActive bool
}

func (a *Application) PanelLayout() string  { return a.Layout }
func (a *Application) IsEngineActive() bool { return a.EngineActive }

// Arranger holds arranger visibility flags.
type Arranger struct {
	CueMarkers, PlaybackFollow, DoubleRow, ClipLauncher, Timeline, IOSection, EffectTracks bool
}

func (a *Arranger) AreCueMarkersVisible() bool    { return a.CueMarkers }
func (a *Arranger) IsPlaybackFollowEnabled() bool { return a.PlaybackFollow }
func (a *Arranger) HasDoubleRowTrackHeight() bool { return a.DoubleRow }
func (a *Arranger) IsClipLauncherVisible() bool   { return a.ClipLauncher }
func (a *Arranger) IsTimelineVisible() bool       { return a.Timeline }
func (a *Arranger) IsIOSectionVisible() bool      { return a.IOSection }
func (a *Arranger) AreEffectTracksVisible() bool  { return a.EffectTracks }

// Mixer holds mixer visibility flags.
type Mixer struct {
	ClipLauncher, CrossFade, Device, Sends, IOSection, Meters bool
}

func (m *Mixer) IsClipLauncherSectionVisible() bool { return m.ClipLauncher }
func (m *Mixer) IsCrossFadeSectionVisible() bool    { return m.CrossFade }
func (m *Mixer) IsDeviceSectionVisible() bool       { return m.Device }
func (m *Mixer) IsSendSectionVisible() bool         { return m.Sends }
func (m *Mixer) IsIOSectionVisible() bool           { return m.IOSection }
func (m *Mixer) IsMeterSectionVisible() bool        { return m.Meters }

// Project is a simulated project.
type Project struct {
	Title string
}

func (p *Project) Name() string { return p.Title }

// Keyboard is simulated note input state.
type Keyboard struct {
	CanHoldNotes bool
	Recording    bool
	Pressed      map[int]bool
	// Scale holds the pitch classes of the current scale, root first. Empty
	// means chromatic in C.
	Scale []int
}

func (k *Keyboard) Enabled() bool           { return k.CanHoldNotes }
func (k *Keyboard) IsPressed(note int) bool { return k.Pressed[note] }
func (k *Keyboard) IsRecording() bool       { return k.Recording }

func (k *Keyboard) Role(note int) model.NoteRole {
	if !k.CanHoldNotes {
		return model.NoteOff
	}
	pc := note % 12
	if len(k.Scale) == 0 {
		if pc == 0 {
			return model.NoteRoot
		}
		return model.NoteInScale
	}
	for i, s := range k.Scale {
		if s == pc {
			if i == 0 {
				return model.NoteRoot
			}
			return model.NoteInScale
		}
	}
	return model.NoteOutOfScale
}
