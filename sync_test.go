package main

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeEngine records commands and serves canned playback state.
type fakeEngine struct {
	mu       sync.Mutex
	state    PlaybackState
	stateErr error
	polls    int
	seeks    []float64
	played   []string
	paused   int
	resumed  int
	stopped  int
	trims    []TrimParams
}

func (f *fakeEngine) GetWaveformPeaks(path string, numPeaks int) (*WaveformPeaks, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) PlayAudio(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, path)
	return nil
}

func (f *fakeEngine) PauseAudio() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused++
	return nil
}

func (f *fakeEngine) ResumeAudio() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumed++
	return nil
}

func (f *fakeEngine) StopAudio() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

func (f *fakeEngine) SeekAudio(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	return nil
}

func (f *fakeEngine) GetPlaybackState() (PlaybackState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	return f.state, f.stateErr
}

func (f *fakeEngine) TrimAudioFile(inputPath, outputPath string, start, end float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trims = append(f.trims, TrimParams{StartSeconds: start, EndSeconds: end})
	return nil
}

func (f *fakeEngine) setState(state PlaybackState, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
	f.stateErr = err
}

func TestPlaybackSyncPublishesPolledState(t *testing.T) {
	engine := &fakeEngine{}
	engine.setState(PlaybackState{IsPlaying: true, CurrentTime: 1.5, Duration: 10}, nil)

	states := make(chan PlaybackState, 64)
	ps := CreatePlaybackSync(engine, func(s PlaybackState) { states <- s })
	ps.Start()
	defer ps.Stop()

	select {
	case s := <-states:
		if !s.IsPlaying || s.CurrentTime != 1.5 || s.Duration != 10 {
			t.Errorf("unexpected state %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("no state published within 1s")
	}
}

func TestPlaybackSyncStartIsIdempotent(t *testing.T) {
	engine := &fakeEngine{}
	engine.setState(PlaybackState{Duration: 10}, nil)

	var mu sync.Mutex
	published := 0
	ps := CreatePlaybackSync(engine, func(PlaybackState) {
		mu.Lock()
		published++
		mu.Unlock()
	})
	// Double Start must not leave a second poll loop behind.
	ps.Start()
	ps.Start()
	if !ps.Running() {
		t.Fatal("expected running")
	}
	time.Sleep(4 * pollInterval)
	ps.Stop()
	if ps.Running() {
		t.Fatal("expected stopped")
	}
	time.Sleep(2 * pollInterval)
	mu.Lock()
	after := published
	mu.Unlock()
	time.Sleep(4 * pollInterval)
	mu.Lock()
	final := published
	mu.Unlock()
	if final != after {
		t.Errorf("publishes continued after Stop: %d -> %d", after, final)
	}
}

func TestPlaybackSyncDropsFailedPolls(t *testing.T) {
	engine := &fakeEngine{}
	engine.setState(PlaybackState{}, ErrNoFileLoaded)

	states := make(chan PlaybackState, 64)
	ps := CreatePlaybackSync(engine, func(s PlaybackState) { states <- s })
	ps.Start()
	defer ps.Stop()

	time.Sleep(4 * pollInterval)
	select {
	case s := <-states:
		t.Fatalf("failed polls must not publish, got %+v", s)
	default:
	}

	engine.setState(PlaybackState{IsPlaying: true, Duration: 5}, nil)
	select {
	case s := <-states:
		if !s.IsPlaying {
			t.Errorf("unexpected state %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("polling did not recover after errors")
	}
}

func TestPlaybackSyncStopWhenNotRunning(t *testing.T) {
	ps := CreatePlaybackSync(&fakeEngine{}, func(PlaybackState) {})
	ps.Stop()
	if ps.Running() {
		t.Fatal("expected not running")
	}
}
