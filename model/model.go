// Package model declares the DAW host capabilities consumed by the sync core.
//
// Nothing in this package owns host state. Every handle returned by an
// accessor is borrowed: callers resolve it again on every tick and never keep
// it beyond the call that obtained it. Bank accessors may return nil for a
// slot with no backing object.
package model

// Model is the root of the host object model.
type Model interface {
	Transport() Transport
	Application() Application
	Arranger() Arranger
	Mixer() Mixer
	Project() Project

	MasterTrack() Track
	// TrackBank returns the currently active track bank (instrument/audio or
	// effect tracks).
	TrackBank() TrackBank
	// EffectTrackBank may be nil if the host has no effect tracks.
	EffectTrackBank() TrackBank
	IsEffectTrackBankActive() bool
	// SceneBank may be nil.
	SceneBank() SceneBank

	CursorDevice() Device
	PrimaryDevice() Device
	Browser() Browser
	Keyboard() Keyboard
	ValueChanger() ValueChanger
}

// Transport is the host transport.
type Transport interface {
	IsPlaying() bool
	IsRecording() bool
	IsArrangerOverdub() bool
	IsLauncherOverdub() bool
	IsLoop() bool
	IsPunchInEnabled() bool
	IsPunchOutEnabled() bool
	IsMetronomeOn() bool
	IsMetronomeTicksOn() bool
	MetronomeVolume() int
	MetronomeVolumeStr() string
	IsPrerollMetronomeEnabled() bool
	PrerollAsBars() int
	Tempo() float64
	Crossfade() int
	IsWritingArrangerAutomation() bool
	IsWritingClipLauncherAutomation() bool
	AutomationWriteMode() string
	PositionText() string
	Numerator() int
	Denominator() int
	BeatText() string

	Play()
	Stop()
	Record()
	ToggleLoop()
	ToggleMetronome()
	SetTempo(bpm float64)
	SetCrossfade(v int)
	ToggleWriteArrangerAutomation()
}

// Application exposes host window state.
type Application interface {
	PanelLayout() string
	IsEngineActive() bool
}

// Arranger exposes arranger panel visibility flags.
type Arranger interface {
	AreCueMarkersVisible() bool
	IsPlaybackFollowEnabled() bool
	HasDoubleRowTrackHeight() bool
	IsClipLauncherVisible() bool
	IsTimelineVisible() bool
	IsIOSectionVisible() bool
	AreEffectTracksVisible() bool
}

// Mixer exposes mixer panel visibility flags.
type Mixer interface {
	IsClipLauncherSectionVisible() bool
	IsCrossFadeSectionVisible() bool
	IsDeviceSectionVisible() bool
	IsSendSectionVisible() bool
	IsIOSectionVisible() bool
	IsMeterSectionVisible() bool
}

// Project is the open host project.
type Project interface {
	Name() string
}

// Parameter is a single automatable value: a device parameter or a track send.
type Parameter interface {
	Exists() bool
	Name() string
	DisplayedValue() string
	Value() int
	ModulatedValue() int

	SetValue(v int)
	ChangeValue(delta int)
	ResetValue()
	TouchValue(touched bool)
}

// Channel is the part shared by tracks, device layers and drum pads.
type Channel interface {
	Exists() bool
	IsActivated() bool
	IsSelected() bool
	Name() string
	VolumeStr() string
	Volume() int
	ModulatedVolume() int
	PanStr() string
	Pan() int
	ModulatedPan() int
	IsMute() bool
	IsSolo() bool
	Color() Color
	VU() int
	NumSends() int
	// Send returns nil for an index outside the send bank.
	Send(i int) Parameter

	Select()
	SetVolume(v int)
	ChangeVolume(delta int)
	ResetVolume()
	TouchVolume(touched bool)
	SetPan(v int)
	ChangePan(delta int)
	ResetPan()
	TouchPan(touched bool)
	SetMute(on bool)
	SetSolo(on bool)
	ToggleSolo()
}

// Track is a channel with clip slots, arming and crossfader assignment.
type Track interface {
	Channel

	// Index is the zero based position in the current bank page.
	Index() int
	Type() string
	IsGroup() bool
	IsRecArm() bool
	IsMonitor() bool
	IsAutoMonitor() bool
	CanHoldNotes() bool
	CanHoldAudioData() bool
	Position() int
	NumSlots() int
	// Slot returns nil for an index outside the slot bank.
	Slot(i int) Slot
	// CrossfadeMode is one of "A", "B" or "AB".
	CrossfadeMode() string
	CrossfadeModeAsNumber() int

	SetRecArm(on bool)
	SetCrossfadeMode(mode string)
	ChangeCrossfadeModeAsNumber(delta int)
}

// Slot is a clip launcher slot.
type Slot interface {
	Name() string
	IsSelected() bool
	HasContent() bool
	IsPlaying() bool
	IsRecording() bool
	IsPlayingQueued() bool
	IsRecordingQueued() bool
	IsStopQueued() bool
	Color() Color

	Select()
	Launch()
}

// TrackBank is a fixed size window onto the host's tracks.
type TrackBank interface {
	// Track returns nil for an empty slot.
	Track(i int) Track
	// SelectedTrack returns nil if no track in the bank is selected.
	SelectedTrack() Track
}

// Scene is a row of clip slots.
type Scene interface {
	Exists() bool
	Name() string
	IsSelected() bool

	Launch()
}

// SceneBank is a fixed size window onto the host's scenes.
type SceneBank interface {
	// Scene returns nil for an empty slot.
	Scene(i int) Scene
}

// Device is the cursor or primary device.
type Device interface {
	Exists() bool
	Name() string
	IsEnabled() bool
	IsExpanded() bool
	IsWindowOpen() bool
	PositionInBank() int
	NumSiblings() int
	SiblingName(i int) string
	NumParameters() int
	// Parameter returns nil for an index outside the parameter bank.
	Parameter(i int) Parameter
	ParameterPageNames() []string
	SelectedParameterPage() int
	HasDrumPads() bool
	NumDrumPads() int
	NumLayers() int
	// LayerOrDrumPad returns nil if the slot has no layer.
	LayerOrDrumPad(i int) Channel

	ToggleEnabled()
	SelectParameterPage(page int)
	PreviousParameterPage()
	NextParameterPage()
}

// Browser is the host's preset/device browser.
type Browser interface {
	IsActive() bool
	SelectedContentType() string
	NumFilterColumns() int
	// FilterColumn returns nil for an index outside the column bank.
	FilterColumn(i int) BrowserColumn
	// ResultItems may hold nil entries for slots the host has not filled.
	ResultItems() []BrowserItem

	Browse()
	Stop(commit bool)
	ChangeFilter(column, delta int)
	ChangeResult(delta int)
}

// BrowserColumn is a browser filter column.
type BrowserColumn interface {
	Exists() bool
	Name() string
	Wildcard() string
	// Items may hold nil entries for slots the host has not filled.
	Items() []BrowserItem
}

// BrowserItem is a filter entry or a result.
type BrowserItem interface {
	Exists() bool
	Name() string
	HitCount() int
	IsSelected() bool
}

// NoteRole describes how a note is rendered on a pad grid or virtual keyboard.
type NoteRole int

const (
	NoteOff NoteRole = iota
	NoteRoot
	NoteInScale
	NoteOutOfScale
)

// Keyboard is the state of the selected track's note input.
type Keyboard interface {
	// Enabled reports whether the selected track can hold notes.
	Enabled() bool
	IsPressed(note int) bool
	Role(note int) NoteRole
	IsRecording() bool
}
