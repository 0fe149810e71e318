package dawsync

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/9600org/go-osc/osc"
	"github.com/golang/glog"
)

// IndexedHandler handles a message whose address matched a route pattern.
// index holds the numbers which matched the pattern's {n} segments, in order.
type IndexedHandler func(index []int, msg *osc.Message) error

type route struct {
	pattern  string
	segments []string
	handler  IndexedHandler
}

// ExactDispatcher routes messages to handlers registered for their exact
// address, falling back to routes with numbered segments such as
// "/track/{n}/volume".
type ExactDispatcher struct {
	handlers map[string]osc.Handler
	routes   []route
}

var _ osc.Dispatcher = &ExactDispatcher{}

func NewExactDispatcher() *ExactDispatcher {
	return &ExactDispatcher{
		handlers: make(map[string]osc.Handler),
	}
}

func (s *ExactDispatcher) AddMsgHandler(addr string, f osc.HandlerFunc) error {
	if _, ok := s.handlers[addr]; ok {
		return fmt.Errorf("duplicate handler for %s", addr)
	}
	s.handlers[addr] = f
	return nil
}

// AddRoute registers h for addresses matching pattern, where each {n}
// segment matches a positive number.
func (s *ExactDispatcher) AddRoute(pattern string, h IndexedHandler) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("invalid route %q: must start with /", pattern)
	}
	for _, r := range s.routes {
		if r.pattern == pattern {
			return fmt.Errorf("duplicate route for %s", pattern)
		}
	}
	s.routes = append(s.routes, route{
		pattern:  pattern,
		segments: strings.Split(pattern[1:], "/"),
		handler:  h,
	})
	return nil
}

// match returns the numbers matched by r's {n} segments.
func (r *route) match(segments []string) ([]int, bool) {
	if len(segments) != len(r.segments) {
		return nil, false
	}
	var index []int
	for i, seg := range r.segments {
		if seg != "{n}" {
			if seg != segments[i] {
				return nil, false
			}
			continue
		}
		n, err := strconv.Atoi(segments[i])
		if err != nil || n < 1 {
			return nil, false
		}
		index = append(index, n)
	}
	return index, true
}

func (s *ExactDispatcher) dispatchMessage(msg *osc.Message) {
	if handler, ok := s.handlers[msg.Address]; ok {
		handler.HandleMessage(msg)
		return
	}
	if strings.HasPrefix(msg.Address, "/") {
		segments := strings.Split(msg.Address[1:], "/")
		for i := range s.routes {
			r := &s.routes[i]
			index, ok := r.match(segments)
			if !ok {
				continue
			}
			if err := r.handler(index, msg); err != nil {
				glog.Errorf("Failed to handle %s: %v", msg.Address, err)
			}
			return
		}
	}
	glog.V(2).Infof("No handler for %s", msg.Address)
}

// Dispatch handles a message, or every message of a bundle in order. Bundles
// are handled synchronously so that their messages apply before the next
// packet.
func (s *ExactDispatcher) Dispatch(packet osc.Packet) {
	switch p := packet.(type) {
	default:
		return

	case *osc.Message:
		s.dispatchMessage(p)

	case *osc.Bundle:
		for _, message := range p.Messages {
			s.dispatchMessage(message)
		}
		for _, b := range p.Bundles {
			s.Dispatch(b)
		}
	}
}
