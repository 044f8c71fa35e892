package main

import "image"

// WaveformSurface is the composition root of the waveform view. It
// owns the raster image and its GL texture, routes pointer events to
// the selection and playhead controllers, and re-renders exactly when
// peaks, selection or playback time change — there is no other redraw
// path.
type WaveformSurface struct {
	theme  *Theme
	engine Engine

	peaks   *WaveformPeaks
	sel     TrimSelection
	selCtl  *SelectionController
	playCtl *PlayheadController
	sync    *PlaybackSync
	state   PlaybackState

	img     *image.RGBA
	quad    *RasterQuad
	rect    Rect
	dirty   bool
	mounted bool
}

// CreateWaveformSurface wires the controllers and the transport poll.
// post routes closures onto the UI thread; poll results arrive
// through it so playback state is only ever applied between frames.
func CreateWaveformSurface(theme *Theme, engine Engine, post func(Event)) *WaveformSurface {
	ws := &WaveformSurface{
		theme:   theme,
		engine:  engine,
		mounted: true,
		dirty:   true,
	}
	ws.selCtl = CreateSelectionController(&ws.sel, 0)
	ws.playCtl = CreatePlayheadController(0, ws.requestSeek)
	ws.sync = CreatePlaybackSync(engine, func(state PlaybackState) {
		post(func() {
			ws.ApplyPlaybackState(state)
		})
	})
	return ws
}

// SetPeaks installs a newly loaded peak summary, resets the selection
// to the whole signal and starts the transport poll. A nil summary
// unloads the view and stops polling.
func (ws *WaveformSurface) SetPeaks(peaks *WaveformPeaks) {
	ws.peaks = peaks
	var duration float64
	if peaks != nil {
		duration = peaks.DurationSeconds
	}
	ws.sel = NewTrimSelection(duration)
	ws.selCtl.SetDuration(duration)
	ws.playCtl.SetDuration(duration)
	ws.state = PlaybackState{}
	ws.dirty = true
	if peaks != nil {
		ws.sync.Start()
	} else {
		ws.sync.Stop()
	}
}

func (ws *WaveformSurface) Peaks() *WaveformPeaks {
	return ws.peaks
}

func (ws *WaveformSurface) Selection() TrimSelection {
	return ws.sel
}

func (ws *WaveformSurface) PlaybackState() PlaybackState {
	return ws.state
}

// ApplyPlaybackState installs the latest polled transport snapshot.
// Polling only ever touches playback state, never the selection, so a
// drag in progress cannot be overwritten by a stale poll.
func (ws *WaveformSurface) ApplyPlaybackState(state PlaybackState) {
	if !ws.mounted || state == ws.state {
		return
	}
	ws.state = state
	ws.playCtl.SyncTime(state.CurrentTime)
	ws.dirty = true
}

// OnPointerDown hit-tests in fixed precedence order: selection
// handles first, then the playhead, then the waveform body (which
// seeks).
func (ws *WaveformSurface) OnPointerDown(x, y float64) {
	if ws.peaks == nil || ws.peaks.DurationSeconds <= 0 {
		return
	}
	width := ws.rect.Dx()
	if ws.selCtl.HandlePointerDown(x, width) {
		ws.dirty = true
		return
	}
	if ws.playCtl.HandlePointerDown(x, width) {
		return
	}
	ws.playCtl.SeekTo(x, width)
}

func (ws *WaveformSurface) OnPointerMove(x, y float64) {
	width := ws.rect.Dx()
	if ws.selCtl.HandlePointerMove(x, width) {
		ws.dirty = true
		return
	}
	ws.playCtl.HandlePointerMove(x, width)
}

func (ws *WaveformSurface) OnPointerUp(x, y float64) {
	ws.selCtl.HandlePointerUp()
	ws.playCtl.HandlePointerUp()
}

// Resize reallocates the raster to cover the client area at native
// pixel density.
func (ws *WaveformSurface) Resize(rect Rect) {
	if rect == ws.rect && ws.img != nil {
		return
	}
	ws.rect = rect
	if rect.Empty() {
		ws.img = nil
		return
	}
	ws.img = image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	ws.dirty = true
}

// Render redraws the raster if it is dirty, then blits it. Called
// once per frame by the app.
func (ws *WaveformSurface) Render() error {
	if ws.img == nil {
		return nil
	}
	if ws.dirty {
		showPlayhead := ws.peaks != nil && ws.state.Duration > 0
		RenderWaveform(ws.img, ws.theme, ws.peaks, ws.sel, ws.playCtl.Time(), showPlayhead)
		if ws.quad == nil {
			quad, err := CreateRasterQuad()
			if err != nil {
				return err
			}
			ws.quad = quad
		}
		ws.quad.Upload(ws.img)
		ws.dirty = false
	}
	if ws.quad != nil {
		ws.quad.Draw(ws.rect)
	}
	return nil
}

// Close stops the poll and marks the surface unmounted so any
// in-flight poll result is discarded instead of touching a torn-down
// view.
func (ws *WaveformSurface) Close() {
	ws.mounted = false
	ws.sync.Stop()
	if ws.quad != nil {
		ws.quad.Close()
		ws.quad = nil
	}
}

func (ws *WaveformSurface) requestSeek(seconds float64) {
	// Optimistic: the playhead already shows the target; the next
	// poll reconciles.
	ws.dirty = true
	if err := ws.engine.SeekAudio(seconds); err != nil {
		logger.Debug("seek failed", "seconds", seconds, "error", err)
	}
}
