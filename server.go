// Package dawsync keeps a remote control surface in step with a DAW host.
//
// State flows out as differential OSC: each tick the Flusher walks the host
// model and sends only the leaves whose values changed since they were last
// sent. Control flows in as OSC commands and as surface events, which are
// applied to the host by the surface's active mode.
package dawsync

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/9600org/dawsync/display"
	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
	"github.com/9600org/go-osc/osc"
	"github.com/golang/glog"
)

func splitAddress(a string) (string, int, error) {
	bits := strings.Split(a, ":")
	if c := len(bits); c != 2 {
		return "", 0, fmt.Errorf("invalid address:port - found %d ':', expected 1", c-1)
	}
	port, err := strconv.Atoi(bits[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid port: %q", err)
	}
	if port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port %d", port)
	}
	return bits[0], port, nil
}

func logCommandError(msg *osc.Message, err error) {
	glog.Errorf("Failed to handle %s %v: %v", msg.Address, msg.Arguments, err)
}

// Server ties a host model to a remote surface. All access to the model goes
// through the server's lock, so OSC commands, surface events and ticks never
// interleave.
type Server struct {
	// mu serialises everything below.
	mu         sync.Mutex
	config     Config
	model      model.Model
	client     Client
	flusher    *Flusher
	surface    *surface.Surface
	composer   *display.Composer
	pusher     *display.Pusher
	dispatcher *ExactDispatcher
	// refresh forces the next tick to resend everything.
	refresh bool
}

var _ osc.Dispatcher = &Server{}

// NewServer returns a server syncing m to c for the surface described by p.
// If w is not nil, display descriptions are written to it on every tick in
// which they change.
func NewServer(config Config, m model.Model, c Client, p *surface.Profile, w io.Writer) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		config:     config,
		model:      m,
		client:     c,
		flusher:    NewFlusher(m, c, config.Banks, config.VUMeters),
		surface:    surface.New(m, p, config.Options),
		composer:   display.NewComposer(config.Banks.Tracks),
		dispatcher: NewExactDispatcher(),
	}
	if w != nil {
		s.pusher = display.NewPusher(w)
	}
	if err := registerCommands(s.dispatcher, s); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	return s, nil
}

// Dispatch applies an inbound OSC packet.
func (s *Server) Dispatch(p osc.Packet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher.Dispatch(p)
}

// AddMsgHandler registers f for the exact address addr, alongside the
// built-in commands.
func (s *Server) AddMsgHandler(addr string, f osc.HandlerFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher.AddMsgHandler(addr, f)
}

// HandleEvent applies a surface control event.
func (s *Server) HandleEvent(ev surface.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.Dispatch(ev)
}

// SetMode switches the surface mode.
func (s *Server) SetMode(m surface.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.SetMode(m)
}

// Refresh makes the next tick resend every value, and the display.
func (s *Server) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = true
}

// Tick flushes changed state to the client and pushes the display if it
// changed. It returns the number of OSC messages sent.
func (s *Server) Tick() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	force := s.refresh
	s.refresh = false
	if force && s.pusher != nil {
		s.pusher.Reset()
	}

	n, err := s.flusher.Flush(force)
	if err != nil {
		return n, err
	}
	if s.pusher != nil {
		if _, err := s.pusher.Push(s.composer.Compose(s.model, s.surface)); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Run ticks until ctx is done. Tick errors are logged; the next tick resyncs.
func (s *Server) Run(ctx context.Context) error {
	t := time.NewTicker(s.config.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if _, err := s.Tick(); err != nil {
				glog.Errorf("Tick failed: %v", err)
			}
		}
	}
}

// Serve handles OSC packets read from conn until it is closed.
func (s *Server) Serve(conn net.PacketConn) error {
	server := &osc.Server{Dispatcher: s}
	return server.Serve(conn)
}

// ListenAndServe handles OSC packets sent to the configured listen address.
func (s *Server) ListenAndServe() error {
	server := &osc.Server{Addr: s.config.ListenAddress, Dispatcher: s}
	return server.ListenAndServe()
}

// Status is a point in time view of the server for the status page.
type Status struct {
	Surface string
	Mode    string
	// Resync is set while a full resend is pending.
	Resync bool
	Values []TrackedValue
}

// Status returns the server's current status.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Surface: s.surface.Profile().Name,
		Mode:    s.surface.Mode().String(),
		Resync:  s.refresh || s.flusher.NeedsResync(),
		Values:  s.flusher.Tracker().Snapshot(),
	}
}
