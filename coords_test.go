package main

import (
	"math"
	"testing"
)

func TestTimeToX(t *testing.T) {
	if x := TimeToX(0, 10, 1000); x != 0 {
		t.Errorf("expected 0, got %v", x)
	}
	if x := TimeToX(10, 10, 1000); x != 1000 {
		t.Errorf("expected 1000, got %v", x)
	}
	if x := TimeToX(2.5, 10, 1000); x != 250 {
		t.Errorf("expected 250, got %v", x)
	}
}

func TestXToTimeClamps(t *testing.T) {
	if tm := XToTime(-50, 10, 1000); tm != 0 {
		t.Errorf("expected 0 for off-left pointer, got %v", tm)
	}
	if tm := XToTime(1500, 10, 1000); tm != 10 {
		t.Errorf("expected duration for off-right pointer, got %v", tm)
	}
	if tm := XToTime(500, 10, 1000); tm != 5 {
		t.Errorf("expected 5, got %v", tm)
	}
}

func TestXToTimeZeroWidth(t *testing.T) {
	if tm := XToTime(123, 10, 0); tm != 0 {
		t.Errorf("expected 0 for zero width, got %v", tm)
	}
}

func TestCoordRoundTrip(t *testing.T) {
	const duration = 37.5
	const width = 1200
	for _, tm := range []float64{0, 1.25, 18.7, duration} {
		x := TimeToX(tm, duration, width)
		back := XToTime(x, duration, width)
		if math.Abs(back-tm) > 1e-9 {
			t.Errorf("round trip of %v: got %v", tm, back)
		}
	}
}
