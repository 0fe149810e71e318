package dawsync

import (
	"fmt"
	"net"
	"sync"

	"github.com/9600org/go-osc/osc"
)

// Client sends OSC packets to the remote surface.
type Client interface {
	Send(osc.Packet) error
	// Connected reports whether the remote end is currently reachable.
	Connected() bool
}

// UDPClient sends packets over a connected UDP socket.
type UDPClient struct {
	// mu protects conn.
	mu   sync.Mutex
	conn *net.UDPConn
}

var _ Client = &UDPClient{}

// DialUDP returns a client sending to addr.
func DialUDP(addr string) (*UDPClient, error) {
	host, port, err := splitAddress(addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: net.ParseIP(host), Port: port})
	if err != nil {
		return nil, fmt.Errorf("couldn't create UDP connection to %s: %q", addr, err)
	}
	return &UDPClient{conn: conn}, nil
}

func (c *UDPClient) Send(p osc.Packet) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("client closed")
	}
	if _, err := c.conn.Write(data); err != nil {
		return err
	}
	return nil
}

func (c *UDPClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Close closes the socket. A closed client reports itself disconnected.
func (c *UDPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// message builds the outbound message for a tracked value.
func message(a Address, v Value) *osc.Message {
	return osc.NewMessage(a.Path, v.Args()...)
}

func getIntArg(m *osc.Message, i int) (int32, error) {
	if l := len(m.Arguments); l <= i {
		return 0, fmt.Errorf("insufficient args (%d), wanted > %d", l, i)
	}
	switch r := m.Arguments[i].(type) {
	case int32:
		return r, nil
	case float32:
		return int32(r), nil
	}
	return 0, fmt.Errorf("got arg type %T, wanted int32", m.Arguments[i])
}

func getFloatArg(m *osc.Message, i int) (float32, error) {
	if l := len(m.Arguments); l <= i {
		return 0, fmt.Errorf("insufficient args (%d), wanted > %d", l, i)
	}
	switch r := m.Arguments[i].(type) {
	case float32:
		return r, nil
	case int32:
		return float32(r), nil
	}
	return 0, fmt.Errorf("got arg type %T, wanted float32", m.Arguments[i])
}

func getStringArg(m *osc.Message, i int) (string, error) {
	if l := len(m.Arguments); l <= i {
		return "", fmt.Errorf("insufficient args (%d), wanted > %d", l, i)
	}
	r, ok := m.Arguments[i].(string)
	if !ok {
		return "", fmt.Errorf("got arg type %T, wanted string", m.Arguments[i])
	}
	return r, nil
}

// getBoolArg interprets an int or float argument as on when non-zero. A
// message without arguments toggles, which is reported as ok=false.
func getBoolArg(m *osc.Message, i int) (on bool, ok bool, err error) {
	if len(m.Arguments) <= i {
		return false, false, nil
	}
	v, err := getFloatArg(m, i)
	if err != nil {
		return false, false, err
	}
	return v != 0, true, nil
}
