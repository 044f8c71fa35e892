package main

import (
	"testing"
	"time"
)

func newTestApp(t *testing.T, engine Engine) *App {
	t.Helper()
	app := CreateApp(engine, DefaultTheme(), "testdata/input.wav", defaultNumPeaks)
	if err := app.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { app.surface.Close() })
	return app
}

// waitFor pumps the event queue until cond holds or the deadline hits.
func waitFor(t *testing.T, app *App, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		app.drainEvents()
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached within 2s")
}

func TestTogglePlaybackStartsWhenNothingLoaded(t *testing.T) {
	engine := &fakeEngine{stateErr: ErrNoFileLoaded}
	app := newTestApp(t, engine)

	app.togglePlayback()
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if len(engine.played) != 1 || engine.played[0] != "testdata/input.wav" {
		t.Errorf("expected playback started, got %v", engine.played)
	}
}

func TestTogglePlaybackPausesAndResumes(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(t, engine)

	engine.setState(PlaybackState{IsPlaying: true, CurrentTime: 1, Duration: 10}, nil)
	app.togglePlayback()
	engine.mu.Lock()
	paused := engine.paused
	engine.mu.Unlock()
	if paused != 1 {
		t.Fatalf("expected pause, got %d", paused)
	}

	engine.setState(PlaybackState{IsPlaying: false, CurrentTime: 1, Duration: 10}, nil)
	app.togglePlayback()
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.resumed != 1 {
		t.Errorf("expected resume, got %d", engine.resumed)
	}
}

func TestStopPlayback(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(t, engine)
	app.stopPlayback()
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.stopped != 1 {
		t.Errorf("expected stop, got %d", engine.stopped)
	}
}

func TestTrimSelectionUsesCurrentSelection(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(t, engine)
	app.surface.SetPeaks(testPeaks(100, 10))
	app.surface.sel = TrimSelection{Start: 2, End: 8}

	app.trimSelection()
	waitFor(t, app, func() bool { return !app.trimming })

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if len(engine.trims) != 1 {
		t.Fatalf("expected one trim, got %d", len(engine.trims))
	}
	if engine.trims[0].StartSeconds != 2 || engine.trims[0].EndSeconds != 8 {
		t.Errorf("unexpected trim range %+v", engine.trims[0])
	}
}

func TestTrimSelectionRequiresLoadedPeaks(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(t, engine)

	app.trimSelection()
	if app.trimming {
		t.Error("trim must not start without a loaded signal")
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if len(engine.trims) != 0 {
		t.Errorf("expected no trims, got %d", len(engine.trims))
	}
}

func TestLoadPeaksFailureIsRetryable(t *testing.T) {
	engine := &fakeEngine{stateErr: ErrNoFileLoaded}
	app := newTestApp(t, engine)

	// fakeEngine always fails peak extraction.
	waitFor(t, app, func() bool { return !app.loading })
	if app.lastError == nil {
		t.Error("expected load failure recorded")
	}
	if app.surface.Peaks() != nil {
		t.Error("failed load must not install partial peaks")
	}
	if app.loading {
		t.Error("expected load flag cleared for retry")
	}
}

func TestQuit(t *testing.T) {
	engine := &fakeEngine{}
	app := newTestApp(t, engine)
	if !app.IsRunning() {
		t.Fatal("expected running after Init")
	}
	if !app.keymap.HandleKey("q") {
		t.Fatal("expected q bound")
	}
	if app.IsRunning() {
		t.Error("expected exit requested")
	}
}
