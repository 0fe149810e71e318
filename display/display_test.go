package display

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/model/sim"
	"github.com/9600org/dawsync/surface"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHost() (*sim.Host, *sim.Track) {
	h := sim.NewHost(model.DefaultValueChanger())
	h.AddTrack("Bass")
	tr := h.AddTrack("Drums")
	h.AddTrack("Keys")
	for i := 0; i < 4; i++ {
		h.AddSend(tr, fmt.Sprintf("FX %d", i+1), 100)
	}
	h.Tracks.Select(1)
	return h, tr
}

func newSurface(t *testing.T, h *sim.Host, opts surface.Options) *surface.Surface {
	t.Helper()
	p, err := surface.LookupProfile("Push 2")
	require.NoError(t, err)
	return surface.New(h, p, opts)
}

func TestComposeIsStable(t *testing.T) {
	h, _ := newHost()
	s := newSurface(t, h, surface.DefaultOptions())
	c := NewComposer(8)

	for _, mode := range []surface.Mode{surface.ModeTrack, surface.ModeDevice, surface.ModeBrowser, surface.ModeClip} {
		t.Run(mode.String(), func(t *testing.T) {
			s.SetMode(mode)
			a, b := c.Compose(h, s), c.Compose(h, s)
			if diff := pretty.Diff(a, b); len(diff) > 0 {
				t.Fatalf("Compose() not stable: %v", diff)
			}
			ab, err := Encode(a)
			require.NoError(t, err)
			bb, err := Encode(b)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(ab, bb), "encodings differ")
		})
	}
}

func TestComposeTrack(t *testing.T) {
	h, tr := newHost()
	s := newSurface(t, h, surface.DefaultOptions())
	c := NewComposer(8)

	d := c.Compose(h, s)
	assert.Equal(t, "track", d.Mode)
	require.Len(t, d.Rows, 3)
	assert.Equal(t, []string{"Volume", "Pan", "Crossfdr", "", "FX 1", "FX 2", "FX 3", "FX 4"}, d.Rows[0].Cells)
	assert.Equal(t, tr.VolumeStr(), d.Rows[1].Cells[0])
	assert.Equal(t, []string{"Bass", "Drums", "Keys", "", "", "", "", ""}, d.Rows[2].Cells)

	require.Len(t, d.Elements, 8)
	assert.Equal(t, ElementSelector, d.Elements[0].Kind)
	assert.Equal(t, ElementChannel, d.Elements[1].Kind)
	assert.True(t, d.Elements[1].Selected)
	assert.Len(t, d.Elements[1].Values, 3)
	assert.Equal(t, ElementSends, d.Elements[2].Kind)
	assert.Equal(t, "Drums", d.Elements[2].Name)
	assert.Len(t, d.Elements[2].Values, 4)
	assert.Equal(t, ElementSelector, d.Elements[3].Kind)
	assert.Empty(t, d.Elements[3].Name)
}

func TestComposeTrackLastSlot(t *testing.T) {
	h := sim.NewHost(model.DefaultValueChanger())
	var last *sim.Track
	for i := 0; i < 8; i++ {
		last = h.AddTrack(fmt.Sprintf("Track %d", i+1))
	}
	h.AddSend(last, "Reverb", 100)
	h.Tracks.Select(7)
	s := newSurface(t, h, surface.DefaultOptions())

	d := NewComposer(8).Compose(h, s)
	require.Len(t, d.Elements, 8)
	for i, e := range d.Elements {
		switch i {
		case 6:
			assert.Equal(t, ElementSends, e.Kind, "element %d", i)
			assert.Equal(t, "Track 8", e.Name)
		case 7:
			assert.Equal(t, ElementChannel, e.Kind, "element %d", i)
		default:
			assert.Equal(t, ElementSelector, e.Kind, "element %d", i)
		}
	}
}

func TestComposeTrackEffectBank(t *testing.T) {
	h, _ := newHost()
	fx := h.NewTrack("Reverb", "effect")
	h.AddSend(fx, "FX 1", 100)
	fx.Selected = true
	h.Effects = &sim.TrackBank{Tracks: []*sim.Track{fx}}
	h.FXActive = true
	s := newSurface(t, h, surface.DefaultOptions())

	d := NewComposer(8).Compose(h, s)
	assert.Equal(t, []string{"Volume", "Pan", "Crossfdr", "", "", "", "", ""}, d.Rows[0].Cells)
	assert.Equal(t, []string{"Reverb", "", "", "", "", "", "", ""}, d.Rows[2].Cells)
	require.Len(t, d.Elements, 8)
	assert.Equal(t, ElementChannel, d.Elements[0].Kind)
	for _, e := range d.Elements[1:] {
		assert.Equal(t, ElementSelector, e.Kind)
	}
}

func TestComposeTrackTouch(t *testing.T) {
	h, _ := newHost()
	s := newSurface(t, h, surface.DefaultOptions())
	c := NewComposer(8)

	s.Dispatch(surface.Event{Control: surface.Knob(0), Kind: surface.TouchStart})
	d := c.Compose(h, s)
	assert.True(t, d.Elements[1].Values[0].Touched)
	assert.Contains(t, d.Notification, "Volume: ")

	s.Dispatch(surface.Event{Control: surface.Knob(0), Kind: surface.TouchEnd})
	d = c.Compose(h, s)
	assert.False(t, d.Elements[1].Values[0].Touched)
	assert.Empty(t, d.Notification)
}

func TestComposeNoSelection(t *testing.T) {
	h, _ := newHost()
	h.Tracks.Select(-1)
	s := newSurface(t, h, surface.DefaultOptions())
	c := NewComposer(8)

	for _, test := range []struct {
		mode surface.Mode
		want string
	}{
		{mode: surface.ModeTrack, want: msgSelectTrack},
		{mode: surface.ModeClip, want: msgSelectTrack},
		{mode: surface.ModeDevice, want: msgSelectDevice},
		{mode: surface.ModeBrowser, want: msgNoBrowser},
	} {
		t.Run(test.mode.String(), func(t *testing.T) {
			s.SetMode(test.mode)
			d := c.Compose(h, s)
			assert.Equal(t, message(test.want), d.Rows)
			assert.Empty(t, d.Elements)
		})
	}
}

func TestComposeDevicePages(t *testing.T) {
	h, _ := newHost()
	h.Cursor.Live = true
	h.Cursor.Title = "Polysynth"
	for i := 0; i < 20; i++ {
		h.Cursor.PageNames = append(h.Cursor.PageNames, fmt.Sprintf("Page %d", i))
	}
	h.Cursor.SelectedPage = 13
	h.Cursor.Params = []*sim.Parameter{h.NewParameter("Cutoff", 512), h.NewParameter("Res", 0)}

	s := newSurface(t, h, surface.DefaultOptions())
	s.SetMode(surface.ModeDevice)
	d := NewComposer(8).Compose(h, s)

	require.Len(t, d.Elements, surface.NumKnobs)
	assert.Equal(t, "Page 8", d.Elements[0].MenuName)
	assert.Equal(t, "Page 15", d.Elements[7].MenuName)
	for i, e := range d.Elements {
		assert.Equal(t, i == 5, e.MenuSelected, "element %d", i)
	}
	assert.Equal(t, "Cutoff", d.Elements[0].Name)
	assert.Equal(t, model.DefaultValueChanger().ToDisplayValue(512), d.Elements[0].Values[0].Scaled)
	assert.Empty(t, d.Elements[2].Values)
	assert.Equal(t, []string{"Polysynth"}, d.Rows[3].Cells)

	h.Cursor.SelectedPage = 42
	d = NewComposer(8).Compose(h, s)
	assert.Equal(t, "Page 16", d.Elements[0].MenuName)
	assert.True(t, d.Elements[3].MenuSelected)
	assert.Empty(t, d.Elements[4].MenuName)
}

func TestComposeBrowser(t *testing.T) {
	h, _ := newHost()
	h.Brwsr.Active = true
	h.Brwsr.ContentType = "Presets"
	h.Brwsr.Columns = []*sim.BrowserColumn{
		{Live: true, Title: "Category", Entries: []*sim.BrowserItem{
			{Live: true, Title: "Bass"},
			{Live: true, Title: "Lead", Selected: true},
		}},
		{Title: "Creator"},
	}
	h.Brwsr.Results = []*sim.BrowserItem{{Live: true, Title: "Acid", Selected: true}, {Title: "hidden"}}

	s := newSurface(t, h, surface.DefaultOptions())
	s.SetMode(surface.ModeBrowser)
	d := NewComposer(8).Compose(h, s)

	require.Len(t, d.Elements, 3)
	assert.Equal(t, "Category", d.Elements[0].Name)
	assert.Equal(t, []Item{{Name: "Bass"}, {Name: "Lead", Selected: true}}, d.Elements[0].Items)
	assert.Empty(t, d.Elements[1].Name)
	assert.Equal(t, []Item{{Name: "Acid", Selected: true}}, d.Elements[2].Items)
	assert.Equal(t, "Lead", d.Rows[1].Cells[0])
	assert.Equal(t, "Acid", d.Rows[1].Cells[surface.NumKnobs-1])
	assert.Equal(t, "Presets", d.Rows[0].Cells[surface.NumKnobs-1])
}

func TestComposeClip(t *testing.T) {
	h, tr := newHost()
	tr.AddSlot("Intro", true)
	tr.AddSlot("", false)
	tr.AddSlot("Verse", true).Select()

	s := newSurface(t, h, surface.DefaultOptions())
	s.SetMode(surface.ModeClip)
	d := NewComposer(8).Compose(h, s)

	require.Len(t, d.Elements, 1)
	assert.Equal(t, []Item{{Name: "Intro"}, {Name: "-"}, {Name: "Verse", Selected: true}}, d.Elements[0].Items)
	assert.Equal(t, []string{"Drums", "Verse"}, d.Rows[0].Cells)
}

func TestEncodeDecode(t *testing.T) {
	h, _ := newHost()
	s := newSurface(t, h, surface.DefaultOptions())
	want := NewComposer(8).Compose(h, s)

	b, err := Encode(want)
	require.NoError(t, err)
	got, err := Decode(b)
	require.NoError(t, err)
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Errorf("Decode(Encode()) differs: %v", diff)
	}

	_, err = Decode([]byte{0xff})
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPusher(t *testing.T) {
	var buf bytes.Buffer
	p := NewPusher(&buf)
	d := Description{Mode: "track", Rows: message("hello")}

	wrote, err := p.Push(d)
	require.NoError(t, err)
	assert.True(t, wrote)
	n := buf.Len()

	wrote, err = p.Push(d)
	require.NoError(t, err)
	assert.False(t, wrote, "unchanged description written again")
	assert.Equal(t, n, buf.Len())

	d.Notification = "Volume: 0.0 dB"
	wrote, err = p.Push(d)
	require.NoError(t, err)
	assert.True(t, wrote)

	p.Reset()
	wrote, err = p.Push(d)
	require.NoError(t, err)
	assert.True(t, wrote, "Push after Reset skipped")

	_, err = NewPusher(failWriter{}).Push(d)
	assert.Error(t, err)
}
