package main

import "math"

// playheadHitThresholdPx is the grab distance for the playhead line.
// It is checked after the selection handles, which take precedence.
const playheadHitThresholdPx = 10

// SeekFunc issues a fire-and-forget seek command to the engine.
type SeekFunc func(seconds float64)

// PlayheadController translates pointer input on the playhead into
// seek requests. It keeps a locally displayed time that is updated
// optimistically on every request so the indicator does not lag the
// pointer; the polled transport time overwrites it on the next tick
// (last-poll-wins).
type PlayheadController struct {
	duration float64
	seek     SeekFunc
	dragging bool
	time     float64
}

func CreatePlayheadController(duration float64, seek SeekFunc) *PlayheadController {
	return &PlayheadController{
		duration: duration,
		seek:     seek,
	}
}

// SetDuration rebinds the controller to a newly loaded signal.
func (pc *PlayheadController) SetDuration(duration float64) {
	pc.duration = duration
	pc.dragging = false
	pc.time = 0
}

// Time is the currently displayed playback time.
func (pc *PlayheadController) Time() float64 {
	return pc.time
}

// SyncTime installs the authoritative time reported by the transport
// poll. The last poll always wins, including during a drag: the drag
// emits a seek per move, so the engine converges on the pointer.
func (pc *PlayheadController) SyncTime(t float64) {
	pc.time = t
}

func (pc *PlayheadController) CanSeek() bool {
	return pc.seek != nil
}

func (pc *PlayheadController) Dragging() bool {
	return pc.dragging
}

// HandlePointerDown grabs the playhead when x lands within the hit
// threshold of its rendered position and seeking is available.
func (pc *PlayheadController) HandlePointerDown(x float64, width int) bool {
	if pc.seek == nil || pc.duration <= 0 || width <= 0 {
		return false
	}
	px := TimeToX(pc.time, pc.duration, width)
	if math.Abs(x-px) > playheadHitThresholdPx {
		return false
	}
	pc.dragging = true
	return true
}

// HandlePointerMove emits a clamped seek for the pointer position and
// moves the displayed time with it.
func (pc *PlayheadController) HandlePointerMove(x float64, width int) bool {
	if !pc.dragging {
		return false
	}
	pc.requestSeek(XToTime(x, pc.duration, width))
	return true
}

func (pc *PlayheadController) HandlePointerUp() {
	pc.dragging = false
}

// SeekTo seeks directly to the time under x. Used for clicks on the
// waveform body outside any handle.
func (pc *PlayheadController) SeekTo(x float64, width int) {
	if pc.seek == nil || pc.duration <= 0 || width <= 0 {
		return
	}
	pc.requestSeek(XToTime(x, pc.duration, width))
}

func (pc *PlayheadController) requestSeek(t float64) {
	pc.time = t
	pc.seek(t)
}
