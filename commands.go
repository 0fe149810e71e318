package dawsync

import (
	"fmt"

	"github.com/9600org/dawsync/model"
	"github.com/9600org/go-osc/osc"
)

// command applies one inbound OSC message to the host.
//
// There is one command for each OSC address we accept from the surface.
type command struct {
	// apply does the work. index holds the numbers from the address's
	// numbered segments, e.g. the track and send of
	// /track/{n}/send/{n}/volume.
	apply func(s *Server, index []int, msg *osc.Message) error
}

// trackCommand applies a message to a single track.
type trackCommand struct {
	apply func(vc model.ValueChanger, t model.Track, msg *osc.Message) error
}

var (
	// globalCommands are matched on their exact address.
	globalCommands = map[string]command{
		"/refresh": {
			apply: func(s *Server, _ []int, _ *osc.Message) error {
				s.refresh = true
				return nil
			},
		},
		"/play": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				tr := s.model.Transport()
				return toggle(msg, tr.IsPlaying(), tr.Play)
			},
		},
		"/stop": {
			apply: func(s *Server, _ []int, _ *osc.Message) error {
				s.model.Transport().Stop()
				return nil
			},
		},
		"/record": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				tr := s.model.Transport()
				return toggle(msg, tr.IsRecording(), tr.Record)
			},
		},
		"/repeat": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				tr := s.model.Transport()
				return toggle(msg, tr.IsLoop(), tr.ToggleLoop)
			},
		},
		"/click": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				tr := s.model.Transport()
				return toggle(msg, tr.IsMetronomeOn(), tr.ToggleMetronome)
			},
		},
		"/autowrite": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				tr := s.model.Transport()
				return toggle(msg, tr.IsWritingArrangerAutomation(), tr.ToggleWriteArrangerAutomation)
			},
		},
		"/tempo/raw": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				f, err := getFloatArg(msg, 0)
				if err != nil {
					return err
				}
				if f <= 0 {
					return fmt.Errorf("invalid tempo %f", f)
				}
				s.model.Transport().SetTempo(float64(f))
				return nil
			},
		},
		"/crossfade": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				v, err := getIntArg(msg, 0)
				if err != nil {
					return err
				}
				s.model.Transport().SetCrossfade(s.model.ValueChanger().Clamp(int(v)))
				return nil
			},
		},
		"/device/page/select": {
			apply: func(s *Server, _ []int, msg *osc.Message) error {
				d, err := cursorDevice(s.model)
				if err != nil {
					return err
				}
				page, err := getIntArg(msg, 0)
				if err != nil {
					return err
				}
				if n := len(d.ParameterPageNames()); page < 1 || int(page) > n {
					return fmt.Errorf("page %d out of range 1-%d", page, n)
				}
				d.SelectParameterPage(int(page) - 1)
				return nil
			},
		},
		"/browser/preset": {
			apply: func(s *Server, _ []int, _ *osc.Message) error {
				b, err := browser(s.model)
				if err != nil {
					return err
				}
				b.Browse()
				return nil
			},
		},
		"/browser/commit": {
			apply: func(s *Server, _ []int, _ *osc.Message) error {
				b, err := browser(s.model)
				if err != nil {
					return err
				}
				b.Stop(true)
				return nil
			},
		},
		"/browser/cancel": {
			apply: func(s *Server, _ []int, _ *osc.Message) error {
				b, err := browser(s.model)
				if err != nil {
					return err
				}
				b.Stop(false)
				return nil
			},
		},
	}

	// routeCommands are matched on patterns with numbered segments, which
	// count bank slots from 1.
	routeCommands = map[string]command{
		"/track/{n}/send/{n}/volume": {
			apply: func(s *Server, index []int, msg *osc.Message) error {
				t, err := bankTrack(s, index[0])
				if err != nil {
					return err
				}
				if index[1] > t.NumSends() {
					return fmt.Errorf("track %d has no send %d", index[0], index[1])
				}
				p := t.Send(index[1] - 1)
				if p == nil {
					return fmt.Errorf("track %d has no send %d", index[0], index[1])
				}
				v, err := getIntArg(msg, 0)
				if err != nil {
					return err
				}
				p.SetValue(s.model.ValueChanger().Clamp(int(v)))
				return nil
			},
		},
		"/track/{n}/clip/{n}/launch": {
			apply: func(s *Server, index []int, _ *osc.Message) error {
				t, err := bankTrack(s, index[0])
				if err != nil {
					return err
				}
				if index[1] > t.NumSlots() {
					return fmt.Errorf("track %d has no clip slot %d", index[0], index[1])
				}
				sl := t.Slot(index[1] - 1)
				if sl == nil {
					return fmt.Errorf("track %d has no clip slot %d", index[0], index[1])
				}
				sl.Launch()
				return nil
			},
		},
		"/device/param/{n}/value": {
			apply: func(s *Server, index []int, msg *osc.Message) error {
				d, err := cursorDevice(s.model)
				if err != nil {
					return err
				}
				if index[0] > d.NumParameters() {
					return fmt.Errorf("device has no parameter %d", index[0])
				}
				p := d.Parameter(index[0] - 1)
				if p == nil {
					return fmt.Errorf("device has no parameter %d", index[0])
				}
				v, err := getIntArg(msg, 0)
				if err != nil {
					return err
				}
				p.SetValue(s.model.ValueChanger().Clamp(int(v)))
				return nil
			},
		},
		"/scene/{n}/launch": {
			apply: func(s *Server, index []int, _ *osc.Message) error {
				if index[0] > s.config.Banks.Scenes {
					return fmt.Errorf("scene %d out of range 1-%d", index[0], s.config.Banks.Scenes)
				}
				bank := s.model.SceneBank()
				if bank == nil {
					return fmt.Errorf("host has no scenes")
				}
				sc := bank.Scene(index[0] - 1)
				if sc == nil || !sc.Exists() {
					return fmt.Errorf("no scene in slot %d", index[0])
				}
				sc.Launch()
				return nil
			},
		},
	}

	// trackCommands are the /track/{n}/..., /track/selected/... and
	// /master/... sub-addresses.
	trackCommands = map[string]trackCommand{
		"volume": {
			apply: func(vc model.ValueChanger, t model.Track, msg *osc.Message) error {
				v, err := getIntArg(msg, 0)
				if err != nil {
					return err
				}
				t.SetVolume(vc.Clamp(int(v)))
				return nil
			},
		},
		"pan": {
			apply: func(vc model.ValueChanger, t model.Track, msg *osc.Message) error {
				v, err := getIntArg(msg, 0)
				if err != nil {
					return err
				}
				t.SetPan(vc.Clamp(int(v)))
				return nil
			},
		},
		"mute": {
			apply: func(_ model.ValueChanger, t model.Track, msg *osc.Message) error {
				on, ok, err := getBoolArg(msg, 0)
				if err != nil {
					return err
				}
				if !ok {
					on = !t.IsMute()
				}
				t.SetMute(on)
				return nil
			},
		},
		"solo": {
			apply: func(_ model.ValueChanger, t model.Track, msg *osc.Message) error {
				on, ok, err := getBoolArg(msg, 0)
				if err != nil {
					return err
				}
				if !ok {
					t.ToggleSolo()
					return nil
				}
				t.SetSolo(on)
				return nil
			},
		},
		"recarm": {
			apply: func(_ model.ValueChanger, t model.Track, msg *osc.Message) error {
				on, ok, err := getBoolArg(msg, 0)
				if err != nil {
					return err
				}
				if !ok {
					on = !t.IsRecArm()
				}
				t.SetRecArm(on)
				return nil
			},
		},
		"select": {
			apply: func(_ model.ValueChanger, t model.Track, msg *osc.Message) error {
				on, ok, err := getBoolArg(msg, 0)
				if err != nil {
					return err
				}
				if ok && !on {
					return nil
				}
				t.Select()
				return nil
			},
		},
		"crossfadeMode": {
			apply: func(_ model.ValueChanger, t model.Track, msg *osc.Message) error {
				mode, err := getStringArg(msg, 0)
				if err != nil {
					return err
				}
				switch mode {
				case "A", "B", "AB":
				default:
					return fmt.Errorf("invalid crossfade mode %q", mode)
				}
				t.SetCrossfadeMode(mode)
				return nil
			},
		},
	}
)

// toggle calls f if the message asks for a state other than current. A
// message without arguments always toggles.
func toggle(msg *osc.Message, current bool, f func()) error {
	on, ok, err := getBoolArg(msg, 0)
	if err != nil {
		return err
	}
	if ok && on == current {
		return nil
	}
	f()
	return nil
}

// bankTrack returns the track in 1-based slot n of the active track bank.
func bankTrack(s *Server, n int) (model.Track, error) {
	if n > s.config.Banks.Tracks {
		return nil, fmt.Errorf("track %d out of range 1-%d", n, s.config.Banks.Tracks)
	}
	bank := s.model.TrackBank()
	if bank == nil {
		return nil, fmt.Errorf("host has no track bank")
	}
	t := bank.Track(n - 1)
	if t == nil || !t.Exists() {
		return nil, fmt.Errorf("no track in slot %d", n)
	}
	return t, nil
}

func cursorDevice(m model.Model) (model.Device, error) {
	d := m.CursorDevice()
	if d == nil || !d.Exists() {
		return nil, fmt.Errorf("no device selected")
	}
	return d, nil
}

func browser(m model.Model) (model.Browser, error) {
	b := m.Browser()
	if b == nil {
		return nil, fmt.Errorf("host has no browser")
	}
	return b, nil
}

// registerCommands adds handlers for every command to d.
func registerCommands(d *ExactDispatcher, s *Server) error {
	for addr, c := range globalCommands {
		addr, c := addr, c
		if err := d.AddMsgHandler(addr, func(msg *osc.Message) {
			if err := c.apply(s, nil, msg); err != nil {
				logCommandError(msg, err)
			}
		}); err != nil {
			return err
		}
	}
	for pattern, c := range routeCommands {
		c := c
		if err := d.AddRoute(pattern, func(index []int, msg *osc.Message) error {
			return c.apply(s, index, msg)
		}); err != nil {
			return err
		}
	}
	for sub, c := range trackCommands {
		c := c
		if err := d.AddRoute("/track/{n}/"+sub, func(index []int, msg *osc.Message) error {
			t, err := bankTrack(s, index[0])
			if err != nil {
				return err
			}
			return c.apply(s.model.ValueChanger(), t, msg)
		}); err != nil {
			return err
		}
		for prefix, resolve := range map[string]func() model.Track{
			"/track/selected/": func() model.Track {
				if bank := s.model.TrackBank(); bank != nil {
					return bank.SelectedTrack()
				}
				return nil
			},
			"/master/": s.model.MasterTrack,
		} {
			resolve := resolve
			if err := d.AddMsgHandler(prefix+sub, func(msg *osc.Message) {
				t := resolve()
				if t == nil {
					logCommandError(msg, fmt.Errorf("no track"))
					return
				}
				if err := c.apply(s.model.ValueChanger(), t, msg); err != nil {
					logCommandError(msg, err)
				}
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
