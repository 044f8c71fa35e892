package main

import "time"

// pollInterval is the fixed cadence at which the engine transport is
// polled. The engine offers no event stream, so polling is the
// intended synchronization mechanism, not a workaround.
const pollInterval = 50 * time.Millisecond

// PlaybackSync polls the engine transport on a fixed interval and
// republishes each snapshot through publish. A failed poll is logged
// and dropped, leaving the previously published state in effect.
//
// publish runs on the poll goroutine; owners are expected to route it
// back onto the UI thread (the surface posts an event).
type PlaybackSync struct {
	engine  Engine
	publish func(PlaybackState)
	done    chan struct{}
}

func CreatePlaybackSync(engine Engine, publish func(PlaybackState)) *PlaybackSync {
	return &PlaybackSync{
		engine:  engine,
		publish: publish,
	}
}

// Start begins polling. Calling it while already running is a no-op,
// so duplicate timers cannot pile up.
func (ps *PlaybackSync) Start() {
	if ps.done != nil {
		return
	}
	ps.done = make(chan struct{})
	go ps.run(ps.done)
}

// Stop cancels polling. Safe to call when not running.
func (ps *PlaybackSync) Stop() {
	if ps.done == nil {
		return
	}
	close(ps.done)
	ps.done = nil
}

func (ps *PlaybackSync) Running() bool {
	return ps.done != nil
}

func (ps *PlaybackSync) run(done chan struct{}) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			state, err := ps.engine.GetPlaybackState()
			if err != nil {
				// Transient: engine unreachable or no file loaded.
				logger.Debug("playback state poll failed", "error", err)
				continue
			}
			ps.publish(state)
		}
	}
}
