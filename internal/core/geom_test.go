package core

import (
	"testing"
	"time"
)

func TestRect(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right(), Bottom() = %d, %d, expected 6, 8", r.Right(), r.Bottom())
	}

	tests := []struct {
		x, y int
		in   bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false}, // right edge is exclusive
		{2, 8, false}, // so is the bottom
		{1, 4, false},
		{3, 2, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.in {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.in)
		}
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		outer Rect
		w, h  int
		want  Rect
	}{
		{NewRect(0, 0, 80, 24), 20, 6, NewRect(30, 9, 20, 6)},
		{NewRect(10, 10, 5, 5), 3, 3, NewRect(11, 11, 3, 3)},
		{NewRect(0, 0, 10, 4), 14, 6, NewRect(-2, -1, 14, 6)},
	}
	for _, tc := range tests {
		if got := tc.outer.Centered(tc.w, tc.h); got != tc.want {
			t.Errorf("%+v.Centered(%d, %d) = %+v, expected %+v", tc.outer, tc.w, tc.h, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestActions(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		want := a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
		if a.IsMove() != want {
			t.Errorf("%v.IsMove() = %v, expected %v", a, a.IsMove(), want)
		}
		if a.String() == "Unknown" {
			t.Errorf("Action(%d) has no name", int(a))
		}
	}
	if got := Action(99).String(); got != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", got)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{10, 100 * time.Millisecond},
		{0, time.Second / DefaultTickRate},
		{-3, time.Second / DefaultTickRate},
	}
	for _, tc := range tests {
		if got := FrameInterval(tc.rate); got != tc.want {
			t.Errorf("FrameInterval(%d) = %v, expected %v", tc.rate, got, tc.want)
		}
	}
	if got := DefaultConfig().FrameInterval(); got != time.Second/60 {
		t.Errorf("DefaultConfig().FrameInterval() = %v", got)
	}
}
