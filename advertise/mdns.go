// Package advertise announces the bridge's OSC port over mDNS so that
// surfaces can find it without configuration.
package advertise

import (
	"fmt"
	"net"
	"sort"
	"sync"

	"github.com/enbility/zeroconf/v3"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Info describes the advertised service.
type Info struct {
	Instance string
	// Service is the DNS-SD service type, e.g. "_osc._udp".
	Service string
	Domain  string
	Port    int
	// Interface restricts advertising to one network interface if set.
	Interface string

	// Surface and ExtensionID identify the surface profile the bridge serves.
	Surface     string
	ExtensionID uuid.UUID
}

// TXT returns the service's TXT records, sorted by key.
func (i Info) TXT() []string {
	txt := map[string]string{
		"surface": i.Surface,
		"proto":   "osc",
	}
	if i.ExtensionID != uuid.Nil {
		txt["id"] = i.ExtensionID.String()
	}
	r := make([]string, 0, len(txt))
	for k, v := range txt {
		if v == "" {
			continue
		}
		r = append(r, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(r)
	return r
}

// Advertiser registers a single mDNS service.
type Advertiser struct {
	mu     sync.Mutex
	server *zeroconf.Server
}

// Start advertises info, replacing anything advertised before.
func (a *Advertiser) Start(info Info) error {
	if info.Port <= 0 || info.Port > 65535 {
		return fmt.Errorf("invalid port %d", info.Port)
	}

	var ifaces []net.Interface
	if info.Interface != "" {
		iface, err := net.InterfaceByName(info.Interface)
		if err != nil {
			return fmt.Errorf("unknown interface %q: %w", info.Interface, err)
		}
		ifaces = []net.Interface{*iface}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	server, err := zeroconf.Register(info.Instance, info.Service, info.Domain, info.Port, info.TXT(), ifaces)
	if err != nil {
		return fmt.Errorf("failed to register %s service: %w", info.Service, err)
	}
	glog.Infof("Advertising %s.%s%s on port %d", info.Instance, info.Service, info.Domain, info.Port)
	a.server = server
	return nil
}

// Stop withdraws the advertised service, if any.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// Running reports whether a service is advertised.
func (a *Advertiser) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}
