package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/dh1tw/gosamplerate"
	"github.com/ebitengine/oto/v3"
)

const engineChannels = 2

var ErrNoFileLoaded = errors.New("no file loaded")

// OtoEngine implements Engine on top of an oto output context. One
// file plays at a time; all commands are safe to call from any
// goroutine (the transport poll and the UI thread both do).
type OtoEngine struct {
	ctx        *oto.Context
	sampleRate int

	mu     sync.Mutex
	player *oto.Player
	track  *trackReader
}

func CreateOtoEngine(sampleRate int) (*OtoEngine, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: engineChannels,
		Format:       oto.FormatFloat32LE,
	}
	ctx, readyChan, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-readyChan
	return &OtoEngine{
		ctx:        ctx,
		sampleRate: sampleRate,
	}, nil
}

func (e *OtoEngine) GetWaveformPeaks(path string, numPeaks int) (*WaveformPeaks, error) {
	return ExtractWaveformPeaks(path, numPeaks)
}

// PlayAudio loads path and starts playback from 0, replacing any
// previous playback.
func (e *OtoEngine) PlayAudio(path string) error {
	audio, err := DecodeAudioFile(path)
	if err != nil {
		return err
	}
	samples, err := prepareEngineSamples(audio, e.sampleRate)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player != nil {
		e.player.Close()
	}
	e.track = createTrackReader(samples, e.sampleRate)
	e.player = e.ctx.NewPlayer(e.track)
	e.player.Play()
	return nil
}

// PauseAudio pauses playback, preserving the position.
func (e *OtoEngine) PauseAudio() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		return ErrNoFileLoaded
	}
	e.player.Pause()
	return nil
}

// ResumeAudio resumes from the paused position.
func (e *OtoEngine) ResumeAudio() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		return ErrNoFileLoaded
	}
	e.player.Play()
	return nil
}

// StopAudio halts playback and resets the position to 0. The file
// stays loaded so playback can be resumed from the start.
func (e *OtoEngine) StopAudio() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		return ErrNoFileLoaded
	}
	e.player.Pause()
	e.track.seekTo(0)
	return nil
}

// SeekAudio moves the transport position. Seeking a paused transport
// leaves it paused.
func (e *OtoEngine) SeekAudio(seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.track == nil {
		return ErrNoFileLoaded
	}
	e.track.seekTo(seconds)
	return nil
}

func (e *OtoEngine) GetPlaybackState() (PlaybackState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.track == nil {
		return PlaybackState{}, ErrNoFileLoaded
	}
	currentTime, duration, ended := e.track.snapshot()
	if ended {
		// Natural end of stream behaves like stop.
		e.player.Pause()
		e.track.seekTo(0)
		return PlaybackState{CurrentTime: 0, Duration: duration}, nil
	}
	return PlaybackState{
		IsPlaying:   e.player.IsPlaying(),
		CurrentTime: currentTime,
		Duration:    duration,
	}, nil
}

func (e *OtoEngine) TrimAudioFile(inputPath, outputPath string, startSeconds, endSeconds float64) error {
	return TrimToFile(inputPath, outputPath, startSeconds, endSeconds)
}

// Close tears down any active playback.
func (e *OtoEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player != nil {
		e.player.Close()
		e.player = nil
		e.track = nil
	}
	return nil
}

// prepareEngineSamples converts decoded audio to interleaved stereo
// at the output device rate.
func prepareEngineSamples(audio *AudioData, outRate int) ([]float32, error) {
	var stereo []float32
	switch {
	case audio.Channels == engineChannels:
		stereo = audio.Samples
	case audio.Channels == 1:
		stereo = make([]float32, 2*len(audio.Samples))
		for i, s := range audio.Samples {
			stereo[2*i] = s
			stereo[2*i+1] = s
		}
	default:
		// Keep the first two channels of multichannel material.
		frames := audio.FrameCount()
		stereo = make([]float32, 2*frames)
		for f := 0; f < frames; f++ {
			stereo[2*f] = audio.Samples[f*audio.Channels]
			stereo[2*f+1] = audio.Samples[f*audio.Channels+1]
		}
	}

	if audio.SampleRate == outRate {
		return stereo, nil
	}
	ratio := float64(outRate) / float64(audio.SampleRate)
	resampled, err := gosamplerate.Simple(stereo, ratio, engineChannels, gosamplerate.SRC_SINC_FASTEST)
	if err != nil {
		return nil, fmt.Errorf("resample %d -> %d Hz: %w", audio.SampleRate, outRate, err)
	}
	return resampled, nil
}

// trackReader feeds interleaved float32 samples to oto as little-
// endian bytes and tracks the transport position. oto reads from its
// own goroutine while seeks arrive from the engine, so the position
// is mutex-guarded.
type trackReader struct {
	mu      sync.Mutex
	samples []float32
	pos     int // sample index, always frame-aligned
	rate    int
}

func createTrackReader(samples []float32, rate int) *trackReader {
	return &trackReader{
		samples: samples,
		rate:    rate,
	}
}

func (tr *trackReader) Read(buf []byte) (int, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.pos >= len(tr.samples) {
		return 0, io.EOF
	}
	n := 0
	for tr.pos < len(tr.samples) && n+4 <= len(buf) {
		binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(tr.samples[tr.pos]))
		tr.pos++
		n += 4
	}
	return n, nil
}

// seekTo moves the read position to a frame boundary near seconds,
// clamped to the track.
func (tr *trackReader) seekTo(seconds float64) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	frame := int(clamp(seconds, 0, tr.durationLocked()) * float64(tr.rate))
	pos := frame * engineChannels
	if pos > len(tr.samples) {
		pos = len(tr.samples)
	}
	tr.pos = pos
}

// snapshot reports the current time, total duration and whether the
// read position has reached the end of the track.
func (tr *trackReader) snapshot() (currentTime, duration float64, ended bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	currentTime = float64(tr.pos/engineChannels) / float64(tr.rate)
	duration = tr.durationLocked()
	ended = len(tr.samples) > 0 && tr.pos >= len(tr.samples)
	return currentTime, duration, ended
}

func (tr *trackReader) durationLocked() float64 {
	return float64(len(tr.samples)/engineChannels) / float64(tr.rate)
}
