package dawsync

import (
	"errors"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/9600org/dawsync/model"
	"github.com/9600org/dawsync/surface"
	"github.com/go-yaml/yaml"
)

var (
	ErrInvalidBanks      = errors.New("invalid bank sizes")
	ErrInvalidResolution = errors.New("invalid value resolution")
	ErrInvalidTick       = errors.New("invalid tick interval")
	ErrUnknownSurface    = errors.New("unknown surface")
)

// BankConfig holds the sizes of the host's banks, which determine how many
// slots of each collection are synced. Slots past the host's live count are
// sent as absent so the receiver never keeps stale values. Layers sizes both
// device layers and drum pads; FilterItems is per filter column.
type BankConfig struct {
	Tracks        int `yaml:"tracks"`
	Scenes        int `yaml:"scenes"`
	Sends         int `yaml:"sends"`
	Slots         int `yaml:"slots"`
	Params        int `yaml:"params"`
	Siblings      int `yaml:"siblings"`
	Layers        int `yaml:"layers"`
	FilterColumns int `yaml:"filterColumns"`
	FilterItems   int `yaml:"filterItems"`
	Results       int `yaml:"results"`
}

// ValueConfig is the resolution of host values.
type ValueConfig struct {
	UpperBound int `yaml:"upperBound"`
	Step       int `yaml:"step"`
}

// ValueChanger returns the value changer for this resolution.
func (v ValueConfig) ValueChanger() model.ValueChanger {
	return model.ValueChanger{UpperBound: v.UpperBound, Step: v.Step}
}

// AdvertiseConfig controls mDNS advertising of the OSC listen port.
type AdvertiseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Instance string `yaml:"instance"`
	Service  string `yaml:"service"`
	Domain   string `yaml:"domain"`
}

// Config is the bridge configuration.
type Config struct {
	// ListenAddress is the host:port OSC commands are received on.
	ListenAddress string `yaml:"listenAddress"`
	// SendAddress is the host:port state updates are sent to.
	SendAddress string `yaml:"sendAddress"`
	// StatusAddress serves the status page if set.
	StatusAddress string `yaml:"statusAddress"`
	// DisplayAddress receives encoded display descriptions over UDP if set.
	DisplayAddress string `yaml:"displayAddress"`
	// TickInterval is how often state is flushed.
	TickInterval time.Duration `yaml:"tickInterval"`

	// Surface names the surface profile. If empty the profile is guessed
	// from the available MIDI port names using PortHints.
	Surface string `yaml:"surface"`
	// PortHints maps a MIDI port name regex to a surface profile name.
	PortHints map[string]string `yaml:"portHints"`
	// MIDIPort overrides the port named by the profile.
	MIDIPort string `yaml:"midiPort"`

	surface.Options `yaml:",inline"`

	// VUMeters enables sending meter levels, which change on every tick.
	VUMeters bool `yaml:"vuMeters"`

	Banks     BankConfig      `yaml:"banks"`
	Values    ValueConfig     `yaml:"values"`
	Advertise AdvertiseConfig `yaml:"advertise"`
}

var defaultBanks = BankConfig{
	Tracks:        8,
	Scenes:        8,
	Sends:         8,
	Slots:         8,
	Params:        8,
	Siblings:      8,
	Layers:        8,
	FilterColumns: 6,
	FilterItems:   16,
	Results:       16,
}

// DefaultConfig returns a config with every field set to a usable default.
func DefaultConfig() Config {
	return Config{
		ListenAddress: "127.0.0.1:8000",
		SendAddress:   "127.0.0.1:9000",
		TickInterval:  50 * time.Millisecond,
		Surface:       "Push 2",
		Options:       surface.DefaultOptions(),
		Banks:         defaultBanks,
		Values:        ValueConfig{UpperBound: 1024, Step: 8},
		Advertise: AdvertiseConfig{
			Instance: "dawsync",
			Service:  "_osc._udp",
			Domain:   "local.",
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults and validates the
// result.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if _, _, err := splitAddress(c.ListenAddress); err != nil {
		return fmt.Errorf("invalid listenAddress: %w", err)
	}
	if _, _, err := splitAddress(c.SendAddress); err != nil {
		return fmt.Errorf("invalid sendAddress: %w", err)
	}
	if c.StatusAddress != "" {
		if _, _, err := splitAddress(c.StatusAddress); err != nil {
			return fmt.Errorf("invalid statusAddress: %w", err)
		}
	}
	if c.DisplayAddress != "" {
		if _, _, err := splitAddress(c.DisplayAddress); err != nil {
			return fmt.Errorf("invalid displayAddress: %w", err)
		}
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTick, c.TickInterval)
	}
	if c.Surface != "" {
		if _, err := surface.LookupProfile(c.Surface); err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownSurface, c.Surface)
		}
	}
	if _, err := buildPortHints(c.PortHints); err != nil {
		return err
	}
	if b := c.Banks; b.Tracks < 1 || b.Scenes < 0 || b.Sends < 0 || b.Slots < 0 ||
		b.Params < 0 || b.Siblings < 0 || b.Layers < 0 || b.FilterColumns < 0 || b.FilterItems < 0 || b.Results < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidBanks, b)
	}
	if c.Values.UpperBound < 2 || c.Values.Step < 1 {
		return fmt.Errorf("%w: %+v", ErrInvalidResolution, c.Values)
	}
	if c.CrossfaderSlowdown < 1 {
		c.CrossfaderSlowdown = 1
	}
	return nil
}
