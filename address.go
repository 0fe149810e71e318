package dawsync

import (
	"strconv"
)

// Address identifies one OSC leaf value.
//
// Paths are built from entity kind, 1-based slot position and attribute name
// only, so an address refers to a slot and not to whichever entity occupies
// it this tick.
type Address struct {
	Path string
	// Index is the number of the innermost indexed entity in Path, or 0 if
	// the path has none. Bank slots are numbered from 1.
	Index int
}

// Builder is an address prefix ending in "/".
type Builder struct {
	prefix string
	index  int
}

// Root returns the builder for a top level entity kind, e.g. Root("device")
// builds "/device/...". An empty kind builds top level leaves such as "/play".
func Root(kind string) Builder {
	if kind == "" {
		return Builder{prefix: "/"}
	}
	return Builder{prefix: "/" + kind + "/"}
}

// Slot descends into the 1-based slot n of a child collection, e.g.
// Root("track").Index(3).Slot("send", 2) builds "/track/3/send/2/...".
func (b Builder) Slot(kind string, n int) Builder {
	return Builder{prefix: b.prefix + kind + "/" + strconv.Itoa(n) + "/", index: n}
}

// Index descends into the numbered child n directly below the prefix, e.g.
// Root("track").Index(3) builds "/track/3/...".
func (b Builder) Index(n int) Builder {
	return Builder{prefix: b.prefix + strconv.Itoa(n) + "/", index: n}
}

// Sub descends into a named, unindexed child, e.g. "selected".
func (b Builder) Sub(name string) Builder {
	return Builder{prefix: b.prefix + name + "/", index: b.index}
}

// Attr returns the address of attribute name below the prefix.
func (b Builder) Attr(name string) Address {
	return Address{Path: b.prefix + name, Index: b.index}
}

// Prefix returns the builder's path prefix including the trailing "/".
func (b Builder) Prefix() string {
	return b.prefix
}
