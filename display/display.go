// Package display derives what a surface's screen should show from the host
// model and the surface's interaction state.
package display

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/golang/glog"
)

// ElementKind is the kind of a graphic display column.
type ElementKind int

const (
	// ElementSelector is a track which can be selected.
	ElementSelector ElementKind = iota
	// ElementChannel is the selected track with its mixer values.
	ElementChannel
	// ElementSends shows the send values of the selected track.
	ElementSends
	// ElementParameter is a single device parameter.
	ElementParameter
	// ElementList is a scrollable list such as a browser column.
	ElementList
)

// Value is a parameter readout.
type Value struct {
	Label string `cbor:"1,keyasint,omitempty"`
	Text  string `cbor:"2,keyasint,omitempty"`
	// Scaled is the value in display resolution.
	Scaled  int  `cbor:"3,keyasint"`
	Touched bool `cbor:"4,keyasint,omitempty"`
}

// Item is an entry of a list element.
type Item struct {
	Name     string `cbor:"1,keyasint"`
	Selected bool   `cbor:"2,keyasint,omitempty"`
}

// Element is one of the columns of a graphic display.
type Element struct {
	Kind         ElementKind `cbor:"1,keyasint"`
	MenuName     string      `cbor:"2,keyasint,omitempty"`
	MenuSelected bool        `cbor:"3,keyasint,omitempty"`
	Name         string      `cbor:"4,keyasint,omitempty"`
	Color        [3]float64  `cbor:"5,keyasint"`
	Selected     bool        `cbor:"6,keyasint,omitempty"`
	Values       []Value     `cbor:"7,keyasint,omitempty"`
	Items        []Item      `cbor:"8,keyasint,omitempty"`
}

// Row is a line of text cells, one per knob.
type Row struct {
	Cells []string `cbor:"1,keyasint"`
}

// Description is everything a display shows at one point in time.
type Description struct {
	Mode         string    `cbor:"1,keyasint"`
	Rows         []Row     `cbor:"2,keyasint"`
	Elements     []Element `cbor:"3,keyasint,omitempty"`
	Notification string    `cbor:"4,keyasint,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Encode returns the deterministic CBOR encoding of d. Equal descriptions
// always encode to equal bytes.
func Encode(d Description) ([]byte, error) {
	return encMode.Marshal(d)
}

// Decode is the inverse of Encode.
func Decode(b []byte) (Description, error) {
	var d Description
	if err := decMode.Unmarshal(b, &d); err != nil {
		return Description{}, fmt.Errorf("failed to decode display description: %w", err)
	}
	return d, nil
}

// Pusher writes descriptions to a display sink, skipping any which encode to
// the same bytes as the last one written.
type Pusher struct {
	// mu protects the fields below.
	mu   sync.Mutex
	w    io.Writer
	last []byte
}

// NewPusher returns a pusher writing to w.
func NewPusher(w io.Writer) *Pusher {
	return &Pusher{w: w}
}

// Push writes d if it differs from the last description written, and reports
// whether it did.
func (p *Pusher) Push(d Description) (bool, error) {
	b, err := Encode(d)
	if err != nil {
		return false, fmt.Errorf("failed to encode display description: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last != nil && bytes.Equal(b, p.last) {
		return false, nil
	}
	if _, err := p.w.Write(b); err != nil {
		return false, fmt.Errorf("failed to write display description: %w", err)
	}
	glog.V(2).Infof("display: wrote %d bytes for %s mode", len(b), d.Mode)
	p.last = b
	return true, nil
}

// Reset forgets the last description so that the next Push always writes.
func (p *Pusher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = nil
}
