package dawsync

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/9600org/dawsync/model"
	"github.com/golang/glog"
)

// Kind is the type tag of a tracked value.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindInt
	KindFloat
	KindString
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindColor:
		return "color"
	default:
		return "unknown"
	}
}

// Value is a single scalar emitted for an address.
//
// Values are comparable with ==. Floats and colours are compared exactly since
// they come from discrete host state rather than continuous sampling.
type Value struct {
	kind Kind
	b    bool
	i    int32
	f    float32
	s    string
	c    model.Color
}

func Bool(b bool) Value         { return Value{kind: KindBool, b: b} }
func Int(i int) Value           { return Value{kind: KindInt, i: int32(i)} }
func String(s string) Value     { return Value{kind: KindString, s: s} }
func Color(c model.Color) Value { return Value{kind: KindColor, c: c} }

// Float returns a float value. NaN is stored as 0 so that it compares equal
// to itself.
func Float(f float64) Value {
	if math.IsNaN(f) {
		f = 0
	}
	return Value{kind: KindFloat, f: float32(f)}
}

// Kind returns the type tag of v.
func (v Value) Kind() Kind { return v.kind }

// Args returns v as OSC message arguments: booleans as int32 0/1, colours as
// three float32s.
func (v Value) Args() []interface{} {
	switch v.kind {
	case KindBool:
		if v.b {
			return []interface{}{int32(1)}
		}
		return []interface{}{int32(0)}
	case KindInt:
		return []interface{}{v.i}
	case KindFloat:
		return []interface{}{v.f}
	case KindString:
		return []interface{}{v.s}
	case KindColor:
		return []interface{}{float32(v.c.R), float32(v.c.G), float32(v.c.B)}
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindColor:
		return fmt.Sprintf("rgb(%g,%g,%g)", v.c.R, v.c.G, v.c.B)
	}
	return "<unset>"
}

// TrackedValue is the last value sent for an address.
type TrackedValue struct {
	Address Address
	Value   Value
}

// Tracker caches the last value sent for every address and decides whether
// an update needs to go out.
type Tracker struct {
	// mu protects the fields below.
	mu   sync.Mutex
	last map[string]TrackedValue
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]TrackedValue)}
}

// Changed reports whether v differs from the last value recorded for a. An
// address that was never recorded is always changed; a value of a different
// kind never is, since Update would drop it.
func (t *Tracker) Changed(a Address, v Value) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.last[a.Path]
	if !ok {
		return true
	}
	return prev.Value.kind == v.kind && prev.Value != v
}

// Record stores v as the last value sent for a.
func (t *Tracker) Record(a Address, v Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[a.Path] = TrackedValue{Address: a, Value: v}
}

// Update returns true and records v if v differs from the last value of a or
// force is set. An address keeps the kind of its first value; a value of a
// different kind is dropped and never sent.
func (t *Tracker) Update(a Address, v Value, force bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.last[a.Path]
	if ok && prev.Value.kind != v.kind {
		glog.Errorf("dropping %s value for %s: address holds %s values", v.kind, a.Path, prev.Value.kind)
		return false
	}
	if ok && !force && prev.Value == v {
		return false
	}
	t.last[a.Path] = TrackedValue{Address: a, Value: v}
	return true
}

// Invalidate forgets all recorded values.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = make(map[string]TrackedValue)
}

// Len returns the number of tracked addresses.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.last)
}

// Snapshot returns a copy of all tracked values sorted by path.
func (t *Tracker) Snapshot() []TrackedValue {
	t.mu.Lock()
	r := make([]TrackedValue, 0, len(t.last))
	for _, tv := range t.last {
		r = append(r, tv)
	}
	t.mu.Unlock()
	sort.Slice(r, func(i, j int) bool { return r[i].Address.Path < r[j].Address.Path })
	return r
}
