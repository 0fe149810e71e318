package dawsync

import (
	"fmt"
	"strings"

	"github.com/9600org/dawsync/model"
	"github.com/9600org/go-osc/osc"
	"github.com/golang/glog"
)

// numNotes is the size of the note colour table.
const numNotes = 127

// Flusher writes the host model to the remote surface as OSC, sending only
// the leaves which changed since the last flush.
type Flusher struct {
	model   model.Model
	client  Client
	tracker *Tracker
	banks   BankConfig
	// vuMeters enables track and layer meter values. When off, track meters
	// are sent as 0 and layer meters are not sent at all.
	vuMeters bool

	// needResync is set when a flush was skipped or failed, forcing the next
	// connected flush to send everything.
	needResync bool

	force bool
	queue []*osc.Message
}

// NewFlusher returns a flusher for m sending through c.
func NewFlusher(m model.Model, c Client, banks BankConfig, vuMeters bool) *Flusher {
	return &Flusher{
		model:      m,
		client:     c,
		tracker:    NewTracker(),
		banks:      banks,
		vuMeters:   vuMeters,
		needResync: true,
	}
}

// Tracker returns the flusher's change tracker.
func (f *Flusher) Tracker() *Tracker {
	return f.tracker
}

// NeedsResync reports whether the next flush will send every leaf.
func (f *Flusher) NeedsResync() bool {
	return f.needResync
}

// Flush walks the model and sends every leaf whose value changed, or every
// leaf if force is set or a resync is pending. It returns the number of
// messages sent.
//
// When the client is disconnected nothing is sent and a resync is scheduled.
// A send error aborts the flush and also schedules a resync.
func (f *Flusher) Flush(force bool) (int, error) {
	if !f.client.Connected() {
		f.needResync = true
		return 0, nil
	}
	f.force = force || f.needResync
	if f.force {
		f.tracker.Invalidate()
	}
	f.queue = f.queue[:0]

	f.flushTransport()
	f.flushFrames()
	f.flushTracks()
	f.flushScenes()

	cd := f.model.CursorDevice()
	f.flushDevice(Root("device"), cd)
	pads, layers := 0, 0
	if cd != nil {
		if cd.HasDrumPads() {
			pads = cd.NumDrumPads()
		}
		layers = cd.NumLayers()
	}
	f.flushLayers(Root("device"), "drumpad", cd, pads)
	f.flushLayers(Root("device"), "layer", cd, layers)
	f.flushDevice(Root("primary"), f.model.PrimaryDevice())

	f.flushBrowser()
	f.flushNotes()

	sent := 0
	for _, m := range f.queue {
		if err := f.client.Send(m); err != nil {
			f.needResync = true
			glog.Errorf("Failed to send %s, aborting flush after %d of %d messages: %v", m.Address, sent, len(f.queue), err)
			return sent, fmt.Errorf("failed to send %s: %w", m.Address, err)
		}
		glog.V(2).Infof("-> %s %v", m.Address, m.Arguments)
		sent++
	}
	f.needResync = false
	return sent, nil
}

func (f *Flusher) send(a Address, v Value) {
	if f.tracker.Update(a, v, f.force) {
		f.queue = append(f.queue, message(a, v))
	}
}

func (f *Flusher) sendBool(a Address, b bool)         { f.send(a, Bool(b)) }
func (f *Flusher) sendInt(a Address, i int)           { f.send(a, Int(i)) }
func (f *Flusher) sendFloat(a Address, v float64)     { f.send(a, Float(v)) }
func (f *Flusher) sendString(a Address, s string)     { f.send(a, String(s)) }
func (f *Flusher) sendColor(a Address, c model.Color) { f.send(a, Color(c)) }

func (f *Flusher) flushTransport() {
	t := f.model.Transport()
	r := Root("")
	f.sendBool(r.Attr("play"), t.IsPlaying())
	f.sendBool(r.Attr("record"), t.IsRecording())
	f.sendBool(r.Attr("overdub"), t.IsArrangerOverdub())
	f.sendBool(r.Sub("overdub").Attr("launcher"), t.IsLauncherOverdub())
	f.sendBool(r.Attr("repeat"), t.IsLoop())
	f.sendBool(r.Attr("punchIn"), t.IsPunchInEnabled())
	f.sendBool(r.Attr("punchOut"), t.IsPunchOutEnabled())
	f.sendBool(r.Attr("click"), t.IsMetronomeOn())
	click := Root("click")
	f.sendBool(click.Attr("ticks"), t.IsMetronomeTicksOn())
	f.sendInt(click.Attr("volume"), t.MetronomeVolume())
	f.sendString(click.Attr("volumeStr"), t.MetronomeVolumeStr())
	f.sendBool(click.Attr("preroll"), t.IsPrerollMetronomeEnabled())
	f.sendInt(r.Attr("preroll"), t.PrerollAsBars())
	f.sendFloat(Root("tempo").Attr("raw"), t.Tempo())
	f.sendInt(r.Attr("crossfade"), t.Crossfade())
	f.sendBool(r.Attr("autowrite"), t.IsWritingArrangerAutomation())
	f.sendBool(Root("autowrite").Attr("launcher"), t.IsWritingClipLauncherAutomation())
	f.sendString(r.Attr("automationWriteMode"), t.AutomationWriteMode())
	f.sendString(Root("time").Attr("str"), t.PositionText())
	f.sendString(Root("time").Attr("signature"), fmt.Sprintf("%d / %d", t.Numerator(), t.Denominator()))
	f.sendString(Root("beat").Attr("str"), t.BeatText())
}

func (f *Flusher) flushFrames() {
	app := f.model.Application()
	f.sendString(Root("").Attr("layout"), strings.ToLower(app.PanelLayout()))

	arr := f.model.Arranger()
	a := Root("arranger")
	f.sendBool(a.Attr("cueMarkerVisibility"), arr.AreCueMarkersVisible())
	f.sendBool(a.Attr("playbackFollow"), arr.IsPlaybackFollowEnabled())
	f.sendBool(a.Attr("trackRowHeight"), arr.HasDoubleRowTrackHeight())
	f.sendBool(a.Attr("clipLauncherSectionVisibility"), arr.IsClipLauncherVisible())
	f.sendBool(a.Attr("timeLineVisibility"), arr.IsTimelineVisible())
	f.sendBool(a.Attr("ioSectionVisibility"), arr.IsIOSectionVisible())
	f.sendBool(a.Attr("effectTracksVisibility"), arr.AreEffectTracksVisible())

	mix := f.model.Mixer()
	m := Root("mixer")
	f.sendBool(m.Attr("clipLauncherSectionVisibility"), mix.IsClipLauncherSectionVisible())
	f.sendBool(m.Attr("crossFadeSectionVisibility"), mix.IsCrossFadeSectionVisible())
	f.sendBool(m.Attr("deviceSectionVisibility"), mix.IsDeviceSectionVisible())
	f.sendBool(m.Attr("sendsSectionVisibility"), mix.IsSendSectionVisible())
	f.sendBool(m.Attr("ioSectionVisibility"), mix.IsIOSectionVisible())
	f.sendBool(m.Attr("meterSectionVisibility"), mix.IsMeterSectionVisible())

	p := Root("project")
	f.sendString(p.Attr("name"), f.model.Project().Name())
	f.sendBool(p.Attr("engine"), app.IsEngineActive())
}

func (f *Flusher) flushTracks() {
	bank := f.model.TrackBank()
	for i := 0; i < f.banks.Tracks; i++ {
		var t model.Track
		if bank != nil {
			t = bank.Track(i)
		}
		f.flushTrack(Root("track").Index(i+1), t)
	}
	f.flushTrack(Root("master"), f.model.MasterTrack())
	var sel model.Track
	if bank != nil {
		sel = bank.SelectedTrack()
	}
	f.flushTrack(Root("track").Sub("selected"), sel)
	f.sendInt(Root("track").Attr("toggleBank"), boolToInt(f.model.IsEffectTrackBankActive()))
}

// flushTrack sends all leaves of a track slot. An empty slot only reports
// that it does not exist.
func (f *Flusher) flushTrack(b Builder, t model.Track) {
	if t == nil {
		f.sendBool(b.Attr("exists"), false)
		return
	}
	f.sendBool(b.Attr("exists"), t.Exists())
	f.sendString(b.Attr("type"), strings.ToLower(t.Type()))
	f.sendBool(b.Attr("activated"), t.IsActivated())
	f.sendBool(b.Attr("selected"), t.IsSelected())
	f.sendBool(b.Attr("isGroup"), t.IsGroup())
	f.sendString(b.Attr("name"), t.Name())
	f.sendString(b.Attr("volumeStr"), t.VolumeStr())
	f.sendInt(b.Attr("volume"), t.Volume())
	f.sendString(b.Attr("panStr"), t.PanStr())
	f.sendInt(b.Attr("pan"), t.Pan())
	f.sendBool(b.Attr("mute"), t.IsMute())
	f.sendBool(b.Attr("solo"), t.IsSolo())
	f.sendBool(b.Attr("recarm"), t.IsRecArm())
	f.sendBool(b.Attr("monitor"), t.IsMonitor())
	f.sendBool(b.Attr("autoMonitor"), t.IsAutoMonitor())
	f.sendBool(b.Attr("canHoldNotes"), t.CanHoldNotes())
	f.sendBool(b.Attr("canHoldAudioData"), t.CanHoldAudioData())
	f.sendInt(b.Attr("position"), t.Position())

	for i := 0; i < f.banks.Sends; i++ {
		f.flushParameter(b.Slot("send", i+1), t.Send(i), true)
	}

	for i := 0; i < f.banks.Slots; i++ {
		f.flushSlot(b.Slot("clip", i+1), t.Slot(i))
	}

	f.sendColor(b.Attr("color"), t.Color())

	mode := t.CrossfadeMode()
	xf := b.Sub("crossfadeMode")
	f.sendBool(xf.Attr("A"), mode == "A")
	f.sendBool(xf.Attr("B"), mode == "B")
	f.sendBool(xf.Attr("AB"), mode == "AB")

	vu := 0
	if f.vuMeters {
		vu = t.VU()
	}
	f.sendInt(b.Attr("vu"), vu)
}

// flushSlot sends a clip slot. A missing slot is sent as an empty one so the
// slot's leaves stay in step with the bank.
func (f *Flusher) flushSlot(b Builder, s model.Slot) {
	if s == nil {
		f.sendString(b.Attr("name"), "")
		for _, attr := range []string{"isSelected", "hasContent", "isPlaying", "isRecording", "isPlayingQueued", "isRecordingQueued", "isStopQueued"} {
			f.sendBool(b.Attr(attr), false)
		}
		f.sendColor(b.Attr("color"), model.ColorOff)
		return
	}
	f.sendString(b.Attr("name"), s.Name())
	f.sendBool(b.Attr("isSelected"), s.IsSelected())
	f.sendBool(b.Attr("hasContent"), s.HasContent())
	f.sendBool(b.Attr("isPlaying"), s.IsPlaying())
	f.sendBool(b.Attr("isRecording"), s.IsRecording())
	f.sendBool(b.Attr("isPlayingQueued"), s.IsPlayingQueued())
	f.sendBool(b.Attr("isRecordingQueued"), s.IsRecordingQueued())
	f.sendBool(b.Attr("isStopQueued"), s.IsStopQueued())
	f.sendColor(b.Attr("color"), s.Color())
}

// flushParameter sends a device parameter or, if isSend, a track send. A
// missing parameter is sent as an empty one.
func (f *Flusher) flushParameter(b Builder, p model.Parameter, isSend bool) {
	strAttr, valAttr := "valueStr", "value"
	if isSend {
		strAttr, valAttr = "volumeStr", "volume"
	}
	if p == nil {
		f.sendString(b.Attr("name"), "")
		f.sendString(b.Attr(strAttr), "")
		f.sendInt(b.Attr(valAttr), 0)
		f.sendInt(b.Attr("modulatedValue"), 0)
		return
	}
	f.sendString(b.Attr("name"), p.Name())
	f.sendString(b.Attr(strAttr), p.DisplayedValue())
	f.sendInt(b.Attr(valAttr), p.Value())
	f.sendInt(b.Attr("modulatedValue"), p.ModulatedValue())
}

func (f *Flusher) flushScenes() {
	bank := f.model.SceneBank()
	if bank == nil {
		return
	}
	for i := 0; i < f.banks.Scenes; i++ {
		b := Root("scene").Index(i + 1)
		s := bank.Scene(i)
		if s == nil {
			f.sendBool(b.Attr("exists"), false)
			continue
		}
		f.sendBool(b.Attr("exists"), s.Exists())
		f.sendString(b.Attr("name"), s.Name())
		f.sendBool(b.Attr("selected"), s.IsSelected())
	}
}

func (f *Flusher) flushDevice(b Builder, d model.Device) {
	if d == nil {
		f.sendBool(b.Attr("exists"), false)
		return
	}
	f.sendBool(b.Attr("exists"), d.Exists())
	f.sendString(b.Attr("name"), d.Name())
	f.sendBool(b.Attr("bypass"), !d.IsEnabled())
	f.sendBool(b.Attr("expand"), d.IsExpanded())
	f.sendBool(b.Attr("window"), d.IsWindowOpen())

	pos, siblings := d.PositionInBank(), d.NumSiblings()
	for i := 0; i < f.banks.Siblings; i++ {
		s := b.Slot("sibling", i+1)
		name := ""
		if i < siblings {
			name = d.SiblingName(i)
		}
		f.sendString(s.Attr("name"), name)
		f.sendBool(s.Attr("selected"), i < siblings && i == pos)
	}

	params := d.NumParameters()
	for i := 0; i < f.banks.Params; i++ {
		var p model.Parameter
		if i < params {
			p = d.Parameter(i)
		}
		f.flushParameter(b.Slot("param", i+1), p, false)
	}

	names := d.ParameterPageNames()
	page, start := model.PageWindow(d.SelectedParameterPage(), len(names))
	for i := 0; i < 8; i++ {
		idx := start + i
		name := ""
		if idx < len(names) {
			name = names[idx]
		}
		p := b.Slot("page", i+1)
		f.sendString(p.Attr(""), name)
		f.sendBool(p.Attr("selected"), page == idx)
	}
	selName := ""
	if page >= 0 {
		selName = names[page]
	}
	f.sendString(b.Sub("page").Sub("selected").Attr("name"), selName)
}

// flushLayers sends the layer or drum pad bank of d. Slots from live onwards
// report that they don't exist; nil slots below live are skipped.
func (f *Flusher) flushLayers(b Builder, kind string, d model.Device, live int) {
	for i := 0; i < f.banks.Layers; i++ {
		lb := b.Slot(kind, i+1)
		if i >= live {
			f.sendBool(lb.Attr("exists"), false)
			continue
		}
		f.flushLayer(lb, d.LayerOrDrumPad(i))
	}
}

// flushLayer sends a device layer or drum pad. Slots without a layer are
// skipped.
func (f *Flusher) flushLayer(b Builder, c model.Channel) {
	if c == nil {
		return
	}
	f.sendBool(b.Attr("exists"), c.Exists())
	f.sendBool(b.Attr("activated"), c.IsActivated())
	f.sendBool(b.Attr("selected"), c.IsSelected())
	f.sendString(b.Attr("name"), c.Name())
	f.sendString(b.Attr("volumeStr"), c.VolumeStr())
	f.sendInt(b.Attr("volume"), c.Volume())
	f.sendString(b.Attr("panStr"), c.PanStr())
	f.sendInt(b.Attr("pan"), c.Pan())
	f.sendBool(b.Attr("mute"), c.IsMute())
	f.sendBool(b.Attr("solo"), c.IsSolo())
	for i := 0; i < f.banks.Sends; i++ {
		f.flushParameter(b.Slot("send", i+1), c.Send(i), true)
	}
	if f.vuMeters {
		f.sendInt(b.Attr("vu"), c.VU())
	}
	f.sendColor(b.Attr("color"), c.Color())
}

// flushBrowser sends the browser. A missing browser is sent as inactive
// with every column and result absent.
func (f *Flusher) flushBrowser() {
	br := f.model.Browser()
	b := Root("browser")
	columns := 0
	var results []model.BrowserItem
	if br == nil {
		f.sendBool(b.Attr("isActive"), false)
	} else {
		f.sendBool(b.Attr("isActive"), br.IsActive())
		f.sendString(b.Attr("tab"), br.SelectedContentType())
		columns = br.NumFilterColumns()
		results = br.ResultItems()
	}

	for i := 0; i < f.banks.FilterColumns; i++ {
		fb := b.Slot("filter", i+1)
		var col model.BrowserColumn
		if i < columns {
			col = br.FilterColumn(i)
		}
		var items []model.BrowserItem
		if col == nil {
			f.sendBool(fb.Attr("exists"), false)
		} else {
			f.sendBool(fb.Attr("exists"), col.Exists())
			f.sendString(fb.Attr("name"), col.Name())
			f.sendString(fb.Attr("wildcard"), col.Wildcard())
			items = col.Items()
		}
		f.flushBrowserItems(fb, "item", items, f.banks.FilterItems)
	}
	f.flushBrowserItems(b, "result", results, f.banks.Results)
}

// flushBrowserItems sends n item slots; slots past the end of items report
// that they don't exist.
func (f *Flusher) flushBrowserItems(b Builder, kind string, items []model.BrowserItem, n int) {
	for i := 0; i < n; i++ {
		var it model.BrowserItem
		if i < len(items) {
			it = items[i]
		}
		f.flushBrowserItem(b.Slot(kind, i+1), it)
	}
}

func (f *Flusher) flushBrowserItem(b Builder, it model.BrowserItem) {
	if it == nil {
		f.sendBool(b.Attr("exists"), false)
		return
	}
	f.sendBool(b.Attr("exists"), it.Exists())
	f.sendString(b.Attr("name"), it.Name())
	f.sendInt(b.Attr("hits"), it.HitCount())
	f.sendBool(b.Attr("isSelected"), it.IsSelected())
}

func (f *Flusher) flushNotes() {
	kb := f.model.Keyboard()
	b := Root("vkb_midi").Sub("note")
	for i := 0; i < numNotes; i++ {
		f.sendColor(b.Index(i).Attr("color"), noteColor(kb, i))
	}
}

// noteColor returns the colour of a note on the virtual keyboard: off when
// the selected track can't hold notes, red or green while pressed depending
// on whether the host is recording, and the scale colour otherwise.
func noteColor(kb model.Keyboard, note int) model.Color {
	if kb == nil || !kb.Enabled() {
		return model.ColorOff
	}
	if kb.IsPressed(note) {
		if kb.IsRecording() {
			return model.ColorRed
		}
		return model.ColorGreen
	}
	switch kb.Role(note) {
	case model.NoteRoot:
		return model.ColorBlue
	case model.NoteInScale:
		return model.ColorWhite
	default:
		return model.ColorOff
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
