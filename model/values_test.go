package model

import (
	"math"
	"testing"
)

func TestPageWindow(t *testing.T) {
	for _, test := range []struct {
		desc      string
		selected  int
		count     int
		wantPage  int
		wantStart int
	}{
		{desc: "SecondWindow", selected: 13, count: 20, wantPage: 13, wantStart: 8},
		{desc: "FirstWindow", selected: 3, count: 20, wantPage: 3, wantStart: 0},
		{desc: "ClampHigh", selected: 40, count: 20, wantPage: 19, wantStart: 16},
		{desc: "ClampLow", selected: -3, count: 20, wantPage: 0, wantStart: 0},
		{desc: "NoPages", selected: 2, count: 0, wantPage: -1, wantStart: 0},
	} {
		t.Run(test.desc, func(t *testing.T) {
			page, start := PageWindow(test.selected, test.count)
			if page != test.wantPage || start != test.wantStart {
				t.Errorf("got page %d start %d, want page %d start %d", page, start, test.wantPage, test.wantStart)
			}
		})
	}
}

func TestValueChanger(t *testing.T) {
	vc := ValueChanger{UpperBound: 128, Step: 1}
	if got := vc.Change(126, 5); got != 127 {
		t.Errorf("Change(126, 5) = %d, want 127", got)
	}
	if got := vc.Change(3, -5); got != 0 {
		t.Errorf("Change(3, -5) = %d, want 0", got)
	}
	if got := vc.ToDisplayValue(127); got != DisplayUpperBound-1 {
		t.Errorf("ToDisplayValue(127) = %d, want %d", got, DisplayUpperBound-1)
	}
	if got := vc.FromNormalized(2); got != 127 {
		t.Errorf("FromNormalized(2) = %d, want 127", got)
	}
	if got := vc.Center(); got != 64 {
		t.Errorf("Center() = %d, want 64", got)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatDB(VolumeToDB(0)); got != "-inf dB" {
		t.Errorf("got %q, want -inf dB", got)
	}
	if db := VolumeToDB(1); math.Abs(db-6.02) > 0.01 {
		t.Errorf("VolumeToDB(1) = %f, want ~6.02", db)
	}
	for _, test := range []struct {
		norm float64
		want string
	}{
		{0.5, "C"},
		{0, "L100"},
		{1, "R100"},
		{0.25, "L50"},
	} {
		if got := FormatPan(test.norm); got != test.want {
			t.Errorf("FormatPan(%v) = %q, want %q", test.norm, got, test.want)
		}
	}
}
