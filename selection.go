package main

import "math"

const (
	// minSelectionSeconds is the smallest allowed gap between the
	// selection handles.
	minSelectionSeconds = 0.1
	// hitThresholdPx is how close (in pixels) a pointer-down must land
	// to a handle to grab it.
	hitThresholdPx = 12
)

// TrimSelection is the user-chosen [Start, End] sub-range in seconds,
// intended for export. It is only ever edited through a
// SelectionController.
type TrimSelection struct {
	Start float64
	End   float64
}

// NewTrimSelection covers the whole signal.
func NewTrimSelection(duration float64) TrimSelection {
	return TrimSelection{Start: 0, End: duration}
}

func (sel TrimSelection) Duration() float64 {
	return sel.End - sel.Start
}

type dragTarget int

const (
	dragNone dragTarget = iota
	dragSelectionStart
	dragSelectionEnd
)

// SelectionController is the drag state machine for the trim handles.
// Every edit it emits keeps Start/End inside [0, duration] with at
// least minSelectionSeconds between them; no intermediate state may
// violate that.
type SelectionController struct {
	sel      *TrimSelection
	duration float64
	drag     dragTarget
}

func CreateSelectionController(sel *TrimSelection, duration float64) *SelectionController {
	return &SelectionController{
		sel:      sel,
		duration: duration,
	}
}

// SetDuration rebinds the controller to a newly loaded signal and
// cancels any drag in progress.
func (sc *SelectionController) SetDuration(duration float64) {
	sc.duration = duration
	sc.drag = dragNone
}

func (sc *SelectionController) Dragging() bool {
	return sc.drag != dragNone
}

// HandlePointerDown starts a drag when x lands within hitThresholdPx
// of a handle. The start handle is tested first, so it wins when the
// handles overlap.
func (sc *SelectionController) HandlePointerDown(x float64, width int) bool {
	if sc.duration <= 0 || width <= 0 {
		return false
	}
	startX := TimeToX(sc.sel.Start, sc.duration, width)
	endX := TimeToX(sc.sel.End, sc.duration, width)
	switch {
	case math.Abs(x-startX) <= hitThresholdPx:
		sc.drag = dragSelectionStart
	case math.Abs(x-endX) <= hitThresholdPx:
		sc.drag = dragSelectionEnd
	default:
		return false
	}
	return true
}

// HandlePointerMove moves the grabbed handle. The new edge is clamped
// before it is stored, so the selection invariant holds even
// transiently.
func (sc *SelectionController) HandlePointerMove(x float64, width int) bool {
	if width <= 0 {
		return sc.drag != dragNone
	}
	t := XToTime(x, sc.duration, width)
	switch sc.drag {
	case dragSelectionStart:
		sc.sel.Start = math.Max(0, math.Min(t, sc.sel.End-minSelectionSeconds))
	case dragSelectionEnd:
		sc.sel.End = math.Min(sc.duration, math.Max(t, sc.sel.Start+minSelectionSeconds))
	default:
		return false
	}
	return true
}

func (sc *SelectionController) HandlePointerUp() {
	sc.drag = dragNone
}
