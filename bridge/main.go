// Command bridge runs dawsync against a simulated host, syncing it to an OSC
// surface and optionally reading surface events from a MIDI controller.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"runtime"
	"strconv"

	"github.com/9600org/dawsync"
	"github.com/9600org/dawsync/advertise"
	"github.com/9600org/dawsync/model/sim"
	"github.com/golang/glog"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = flag.String("config", "", "dawsync YAML config file; defaults are used if empty")
	useConsole = flag.Bool("console", false, "Read surface commands from the terminal")
)

// demoHost returns a simulated project to drive the surface with.
func demoHost(c dawsync.Config) *sim.Host {
	h := sim.NewHost(c.Values.ValueChanger())
	for _, name := range []string{"Drums", "Bass", "Keys", "Vocals"} {
		t := h.AddTrack(name)
		h.AddSend(t, "Reverb", 0)
		h.AddSend(t, "Delay", 0)
		t.AddSlot(name+" 1", true)
		t.AddSlot("", false)
	}
	h.Tracks.Select(0)
	for i := 1; i <= 4; i++ {
		h.Scenes.Scenes = append(h.Scenes.Scenes, &sim.Scene{Live: true, Title: fmt.Sprintf("Scene %d", i)})
	}
	h.Cursor.Live = true
	h.Cursor.Title = "Polysynth"
	h.Cursor.Enabled = true
	h.Cursor.PageNames = []string{"Osc", "Filter", "Envelope"}
	for _, name := range []string{"Cutoff", "Resonance", "Attack", "Release"} {
		h.Cursor.Params = append(h.Cursor.Params, h.NewParameter(name, c.Values.UpperBound/2))
	}
	return h
}

func listenPort(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(p)
}

func main() {
	flag.Parse()
	flag.Set("logtostderr", "true")

	conf := dawsync.DefaultConfig()
	if *configFile != "" {
		var err error
		if conf, err = dawsync.LoadConfig(*configFile); err != nil {
			glog.Exitf("Failed to read config file: %s", err)
		}
	}

	profile, port, err := dawsync.SelectProfile(conf, inPortNames(), runtime.GOOS)
	if err != nil {
		glog.Exitf("Failed to select surface: %s", err)
	}
	glog.Infof("Starting dawsync bridge for %s", profile)

	client, err := dawsync.DialUDP(conf.SendAddress)
	if err != nil {
		glog.Exitf("Failed to create OSC client: %s", err)
	}
	defer client.Close()

	var display io.Writer
	if conf.DisplayAddress != "" {
		conn, err := net.Dial("udp", conf.DisplayAddress)
		if err != nil {
			glog.Exitf("Failed to connect to display: %s", err)
		}
		defer conn.Close()
		display = conn
	}

	srv, err := dawsync.NewServer(conf, demoHost(conf), client, profile, display)
	if err != nil {
		glog.Exitf("Failed to create server: %s", err)
	}

	if port != "" {
		stop, err := listenMIDI(port, profile, srv)
		if err != nil {
			glog.Exitf("Failed to open MIDI input: %s", err)
		}
		defer midi.CloseDriver()
		defer stop()
	} else {
		glog.Warningf("No MIDI input found for %s", profile)
	}

	if conf.Advertise.Enabled {
		p, err := listenPort(conf.ListenAddress)
		if err != nil {
			glog.Exitf("Invalid listen address: %s", err)
		}
		var a advertise.Advertiser
		err = a.Start(advertise.Info{
			Instance:    conf.Advertise.Instance,
			Service:     conf.Advertise.Service,
			Domain:      conf.Advertise.Domain,
			Port:        p,
			Surface:     profile.Name,
			ExtensionID: profile.ExtensionID,
		})
		if err != nil {
			glog.Errorf("Failed to advertise: %s", err)
		}
		defer a.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error { return srv.Run(ctx) })
	if conf.StatusAddress != "" {
		g.Go(func() error { return dawsync.ListenAndServeStatus(conf.StatusAddress, srv) })
	}
	if *useConsole {
		c, err := newConsole(srv)
		if err != nil {
			glog.Exitf("Failed to start console: %s", err)
		}
		g.Go(func() error { return c.Run(ctx, cancel) })
	}

	glog.Exitf("Server exiting: %s", g.Wait())
}
