package main

import (
	"fmt"

	"github.com/9600org/dawsync"
	"github.com/9600org/dawsync/surface"
	"github.com/golang/glog"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // registers the rtmidi driver
)

// inPortNames returns the names of the available MIDI inputs.
func inPortNames() []string {
	var r []string
	for _, in := range midi.GetInPorts() {
		r = append(r, in.String())
	}
	return r
}

func findInPort(name string) (drivers.In, error) {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("MIDI input %q not found", name)
}

// listenMIDI decodes messages from the named port with p's MIDI map and
// hands the resulting events to s. The returned func stops listening.
func listenMIDI(port string, p *surface.Profile, s *dawsync.Server) (func(), error) {
	in, err := findInPort(port)
	if err != nil {
		return nil, err
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		ev, ok := p.MIDI.Decode(msg)
		if !ok {
			glog.V(3).Infof("MIDI: ignoring %s", msg)
			return
		}
		s.HandleEvent(ev)
	}, midi.HandleError(func(err error) {
		glog.Errorf("MIDI input %s: %v", port, err)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to listen to %s: %w", port, err)
	}
	glog.Infof("Listening to MIDI input %s", port)
	return stop, nil
}
