package model

import (
	"fmt"
	"math"
)

// Color is an RGB triple with components in 0..1.
type Color struct {
	R, G, B float64
}

// Some fixed colours used for pads and note tables.
var (
	ColorOff   = Color{}
	ColorRed   = Color{R: 1}
	ColorGreen = Color{G: 1}
	ColorBlue  = Color{B: 1}
	ColorWhite = Color{R: 1, G: 1, B: 1}
	ColorGrey  = Color{R: 0.3, G: 0.3, B: 0.3}
)

// DisplayUpperBound is the resolution of values drawn on graphic displays.
const DisplayUpperBound = 1024

// ValueChanger knows the resolution of host values and how relative knob
// movement maps onto them.
type ValueChanger struct {
	// UpperBound is the exclusive maximum of a host value, e.g. 128 or 1024.
	UpperBound int
	// Step is the value change applied per knob tick.
	Step int
}

// DefaultValueChanger matches a 1024 step host resolution.
func DefaultValueChanger() ValueChanger {
	return ValueChanger{UpperBound: 1024, Step: 8}
}

// Clamp limits v to 0..UpperBound-1.
func (vc ValueChanger) Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if max := vc.UpperBound - 1; v > max {
		return max
	}
	return v
}

// Change applies a relative knob delta to v.
func (vc ValueChanger) Change(v, delta int) int {
	step := vc.Step
	if step < 1 {
		step = 1
	}
	return vc.Clamp(v + delta*step)
}

// Center returns the mid value, used as the reset value of pans.
func (vc ValueChanger) Center() int {
	return vc.UpperBound / 2
}

// ToDisplayValue scales v to 0..DisplayUpperBound-1.
func (vc ValueChanger) ToDisplayValue(v int) int {
	if vc.UpperBound <= 1 {
		return 0
	}
	return vc.Clamp(v) * (DisplayUpperBound - 1) / (vc.UpperBound - 1)
}

// ToNormalized returns v as 0..1.
func (vc ValueChanger) ToNormalized(v int) float64 {
	if vc.UpperBound <= 1 {
		return 0
	}
	return float64(vc.Clamp(v)) / float64(vc.UpperBound-1)
}

// FromNormalized converts a 0..1 float into a host value. Values outside the
// range are treated as though they were at the corresponding range limit.
func (vc ValueChanger) FromNormalized(f float64) int {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return int(math.Round(f * float64(vc.UpperBound-1)))
}

// PageWindow clamps selected to 0..count-1 and returns the clamped page along
// with the first page of the window of 8 containing it. With no pages the
// returned page is -1.
func PageWindow(selected, count int) (page, start int) {
	page = selected
	if page < 0 {
		page = 0
	}
	if page > count-1 {
		page = count - 1
	}
	if page < 0 {
		return page, 0
	}
	return page, page / 8 * 8
}

// VolumeToDB converts a normalised fader position to dB, with 0.841 being
// unity gain and 1.0 being +6dB.
func VolumeToDB(norm float64) float64 {
	if norm <= 0 {
		return math.Inf(-1)
	}
	if norm > 1 {
		norm = 1
	}
	return 20 * math.Log10(2*math.Pow(norm, 4))
}

// FormatDB renders a dB value the way host displays show it.
func FormatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// FormatPan renders a normalised pan position as C, L<n> or R<n>.
func FormatPan(norm float64) string {
	p := int(math.Round((norm - 0.5) * 200))
	switch {
	case p == 0:
		return "C"
	case p < 0:
		return fmt.Sprintf("L%d", -p)
	default:
		return fmt.Sprintf("R%d", p)
	}
}
