package main

import (
	"math"
	"testing"
)

func TestNewTrimSelectionCoversSignal(t *testing.T) {
	sel := NewTrimSelection(12.5)
	if sel.Start != 0 || sel.End != 12.5 {
		t.Errorf("expected [0, 12.5], got [%v, %v]", sel.Start, sel.End)
	}
	if sel.Duration() != 12.5 {
		t.Errorf("expected duration 12.5, got %v", sel.Duration())
	}
}

func TestDragStartClampedByMinimumWidth(t *testing.T) {
	const duration = 10.0
	const width = 1000
	sel := TrimSelection{Start: 2, End: 8}
	ctl := CreateSelectionController(&sel, duration)

	startX := TimeToX(sel.Start, duration, width)
	if !ctl.HandlePointerDown(startX, width) {
		t.Fatal("expected start handle grab")
	}
	// Drag the start handle past the end handle.
	ctl.HandlePointerMove(950, width)
	if math.Abs(sel.Start-7.9) > 1e-9 {
		t.Errorf("expected start clamped to 7.9, got %v", sel.Start)
	}
	if sel.End != 8 {
		t.Errorf("end must not move, got %v", sel.End)
	}
}

func TestDragEndClampedByMinimumWidth(t *testing.T) {
	const duration = 10.0
	const width = 1000
	sel := TrimSelection{Start: 2, End: 8}
	ctl := CreateSelectionController(&sel, duration)

	endX := TimeToX(sel.End, duration, width)
	if !ctl.HandlePointerDown(endX, width) {
		t.Fatal("expected end handle grab")
	}
	ctl.HandlePointerMove(50, width)
	if math.Abs(sel.End-2.1) > 1e-9 {
		t.Errorf("expected end clamped to 2.1, got %v", sel.End)
	}
	if sel.Start != 2 {
		t.Errorf("start must not move, got %v", sel.Start)
	}
}

func TestDragClampedToSignalBounds(t *testing.T) {
	const duration = 10.0
	const width = 1000
	sel := TrimSelection{Start: 2, End: 8}
	ctl := CreateSelectionController(&sel, duration)

	ctl.HandlePointerDown(TimeToX(sel.Start, duration, width), width)
	ctl.HandlePointerMove(-200, width)
	if sel.Start != 0 {
		t.Errorf("expected start clamped to 0, got %v", sel.Start)
	}
	ctl.HandlePointerUp()

	ctl.HandlePointerDown(TimeToX(sel.End, duration, width), width)
	ctl.HandlePointerMove(5000, width)
	if sel.End != duration {
		t.Errorf("expected end clamped to duration, got %v", sel.End)
	}
}

func TestPointerUpEndsDrag(t *testing.T) {
	const duration = 10.0
	const width = 1000
	sel := NewTrimSelection(duration)
	ctl := CreateSelectionController(&sel, duration)

	ctl.HandlePointerDown(TimeToX(sel.End, duration, width), width)
	if !ctl.Dragging() {
		t.Fatal("expected drag in progress")
	}
	ctl.HandlePointerUp()
	if ctl.Dragging() {
		t.Fatal("expected drag ended")
	}
	before := sel
	if ctl.HandlePointerMove(500, width) {
		t.Fatal("move without a drag must be ignored")
	}
	if sel != before {
		t.Errorf("selection changed without a drag: %+v", sel)
	}
}

func TestHandleHitThreshold(t *testing.T) {
	const duration = 10.0
	const width = 1000
	sel := TrimSelection{Start: 2, End: 8}
	ctl := CreateSelectionController(&sel, duration)

	startX := TimeToX(sel.Start, duration, width)
	if !ctl.HandlePointerDown(startX+hitThresholdPx, width) {
		t.Error("pointer within threshold must grab the handle")
	}
	ctl.HandlePointerUp()
	if ctl.HandlePointerDown(startX+hitThresholdPx+1, width) {
		t.Error("pointer outside threshold must not grab the handle")
	}
}

func TestSetDurationCancelsDrag(t *testing.T) {
	const width = 1000
	sel := TrimSelection{Start: 2, End: 8}
	ctl := CreateSelectionController(&sel, 10)

	ctl.HandlePointerDown(TimeToX(sel.Start, 10, width), width)
	ctl.SetDuration(20)
	if ctl.Dragging() {
		t.Error("expected drag cancelled by duration change")
	}
}
