package sim

import (
	"fmt"

	"github.com/9600org/dawsync/model"
)

// Transport is a simulated transport.
type Transport struct {
	Playing          bool
	Recording        bool
	ArrangerOverdub  bool
	LauncherOverdub  bool
	Loop             bool
	PunchIn          bool
	PunchOut         bool
	Metronome        bool
	MetronomeTicks   bool
	MetronomeVol     int
	PrerollMetronome bool
	Preroll          int
	BPM              float64
	CrossfadeValue   int
	WriteArranger    bool
	WriteLauncher    bool
	WriteMode        string
	Position         string
	Num, Den         int
	Beat             string
}

var _ model.Transport = &Transport{}

func (t *Transport) IsPlaying() bool                       { return t.Playing }
func (t *Transport) IsRecording() bool                     { return t.Recording }
func (t *Transport) IsArrangerOverdub() bool               { return t.ArrangerOverdub }
func (t *Transport) IsLauncherOverdub() bool               { return t.LauncherOverdub }
func (t *Transport) IsLoop() bool                          { return t.Loop }
func (t *Transport) IsPunchInEnabled() bool                { return t.PunchIn }
func (t *Transport) IsPunchOutEnabled() bool               { return t.PunchOut }
func (t *Transport) IsMetronomeOn() bool                   { return t.Metronome }
func (t *Transport) IsMetronomeTicksOn() bool              { return t.MetronomeTicks }
func (t *Transport) MetronomeVolume() int                  { return t.MetronomeVol }
func (t *Transport) IsPrerollMetronomeEnabled() bool       { return t.PrerollMetronome }
func (t *Transport) PrerollAsBars() int                    { return t.Preroll }
func (t *Transport) Tempo() float64                        { return t.BPM }
func (t *Transport) Crossfade() int                        { return t.CrossfadeValue }
func (t *Transport) IsWritingArrangerAutomation() bool     { return t.WriteArranger }
func (t *Transport) IsWritingClipLauncherAutomation() bool { return t.WriteLauncher }
func (t *Transport) AutomationWriteMode() string           { return t.WriteMode }
func (t *Transport) PositionText() string                  { return t.Position }
func (t *Transport) Numerator() int                        { return t.Num }
func (t *Transport) Denominator() int                      { return t.Den }
func (t *Transport) BeatText() string                      { return t.Beat }

func (t *Transport) MetronomeVolumeStr() string {
	return fmt.Sprintf("%d %%", t.MetronomeVol)
}

func (t *Transport) Play() { t.Playing = !t.Playing }

func (t *Transport) Stop() {
	t.Playing = false
	t.Recording = false
}

func (t *Transport) Record()                        { t.Recording = !t.Recording }
func (t *Transport) ToggleLoop()                    { t.Loop = !t.Loop }
func (t *Transport) ToggleMetronome()               { t.Metronome = !t.Metronome }
func (t *Transport) SetTempo(bpm float64)           { t.BPM = bpm }
func (t *Transport) SetCrossfade(v int)             { t.CrossfadeValue = v }
func (t *Transport) ToggleWriteArrangerAutomation() { t.WriteArranger = !t.WriteArranger }
