package display

import (
	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
)

// composeTrack shows the knob targets of the selected track, and one column
// per bank slot: the selected track's mixer values, its sends to the right of
// it, and a track selector everywhere else. When the selected track is in the
// last slot its sends go two slots to the left. Sends are hidden while the
// effect track bank is active.
func (c *Composer) composeTrack(m model.Model, s *surface.Surface) Description {
	t := s.SelectedTrack()
	if t == nil {
		return Description{Rows: message(msgSelectTrack)}
	}

	vc := m.ValueChanger()
	fxActive := m.IsEffectTrackBankActive()
	labels, texts := newRow(), newRow()
	var mixer, sends []Value
	for k, target := range s.Layout() {
		if target.Kind == surface.TargetSend && fxActive {
			continue
		}
		v := targetValue(m, vc, t, target)
		v.Touched = s.Touched(k)
		labels.Cells[k], texts.Cells[k] = v.Label, v.Text
		switch target.Kind {
		case surface.TargetNone:
		case surface.TargetSend:
			sends = append(sends, v)
		default:
			mixer = append(mixer, v)
		}
	}

	names := newRow()
	bank := m.TrackBank()
	sel := t.Index()
	sendsAt := sel + 1
	if sendsAt >= c.tracks {
		sendsAt = c.tracks - 2
	}
	elements := make([]Element, 0, c.tracks)
	for i := 0; i < c.tracks; i++ {
		var tr model.Track
		if bank != nil {
			tr = bank.Track(i)
		}
		e := Element{Kind: ElementSelector}
		if tr != nil && tr.Exists() {
			e.MenuName = tr.Name()
			e.Name = tr.Name()
			e.Color = color(tr.Color())
			e.Selected = tr.IsSelected()
			if i < len(names.Cells) {
				names.Cells[i] = tr.Name()
			}
		}
		switch {
		case i == sel:
			e.Kind = ElementChannel
			e.Values = mixer
		case i == sendsAt && len(sends) > 0:
			e.Kind = ElementSends
			e.Name = t.Name()
			e.Color = color(t.Color())
			e.Selected = false
			e.Values = sends
		}
		elements = append(elements, e)
	}

	return Description{
		Rows:     []Row{labels, texts, names},
		Elements: elements,
	}
}

func targetValue(m model.Model, vc model.ValueChanger, t model.Track, target surface.Target) Value {
	switch target.Kind {
	case surface.TargetVolume:
		return Value{Label: "Volume", Text: t.VolumeStr(), Scaled: vc.ToDisplayValue(t.Volume())}
	case surface.TargetPan:
		return Value{Label: "Pan", Text: t.PanStr(), Scaled: vc.ToDisplayValue(t.Pan())}
	case surface.TargetCrossfader:
		return Value{
			Label:  "Crossfdr",
			Text:   t.CrossfadeMode(),
			Scaled: t.CrossfadeModeAsNumber() * (model.DisplayUpperBound - 1) / 2,
		}
	case surface.TargetSend:
		if target.Send >= t.NumSends() {
			return Value{}
		}
		p := t.Send(target.Send)
		if p == nil {
			return Value{}
		}
		return Value{
			Label:  surface.SendName(m, t, target.Send),
			Text:   p.DisplayedValue(),
			Scaled: vc.ToDisplayValue(p.Value()),
		}
	}
	return Value{}
}
