package dawsync

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/9600org/dawsync/surface"
)

// portHint maps MIDI port names matching a regex to a surface profile.
type portHint struct {
	// matcher is tested against the lower cased port name.
	matcher *regexp.Regexp
	profile *surface.Profile
}

// buildPortHints parses the configured port name hints. Hints are ordered by
// pattern so that matching doesn't depend on map iteration order.
func buildPortHints(src map[string]string) ([]portHint, error) {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := make([]portHint, 0, len(src))
	for _, k := range keys {
		ph, err := newPortHint(k, src[k])
		if err != nil {
			return nil, err
		}
		r = append(r, *ph)
	}
	return r, nil
}

func newPortHint(m, profile string) (*portHint, error) {
	matcher, err := regexp.Compile(strings.ToLower(m))
	if err != nil {
		return nil, fmt.Errorf("invalid port hint %q: %w", m, err)
	}
	p, err := surface.LookupProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("invalid port hint %q: %w", m, err)
	}
	return &portHint{matcher: matcher, profile: p}, nil
}

// guessProfile returns the profile for the first port matching a hint, along
// with that port. Ports which exactly match a profile's own port names for
// goos win over hints.
func guessProfile(hints []portHint, ports []string, goos string) (*surface.Profile, string, bool) {
	for _, port := range ports {
		for _, p := range surface.Profiles() {
			for _, name := range p.PortNames(goos) {
				if strings.EqualFold(name, port) {
					return p, port, true
				}
			}
		}
	}
	for _, hint := range hints {
		for _, port := range ports {
			if hint.matcher.MatchString(strings.ToLower(port)) {
				return hint.profile, port, true
			}
		}
	}
	return nil, "", false
}

// SelectProfile picks the surface profile and MIDI input port to use. A
// configured surface wins; its port is the configured MIDIPort, or the first
// available port named by the profile. Without a configured surface the
// profile is guessed from the available ports. An empty port means no MIDI
// input was found.
func SelectProfile(c Config, ports []string, goos string) (*surface.Profile, string, error) {
	if c.Surface == "" {
		hints, err := buildPortHints(c.PortHints)
		if err != nil {
			return nil, "", err
		}
		p, port, ok := guessProfile(hints, ports, goos)
		if !ok {
			return nil, "", fmt.Errorf("no surface found among MIDI ports %q", ports)
		}
		return p, port, nil
	}

	p, err := surface.LookupProfile(c.Surface)
	if err != nil {
		return nil, "", err
	}
	if c.MIDIPort != "" {
		return p, c.MIDIPort, nil
	}
	for _, port := range ports {
		for _, name := range p.PortNames(goos) {
			if strings.EqualFold(name, port) {
				return p, port, nil
			}
		}
	}
	return p, "", nil
}
