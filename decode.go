package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoAudioData       = errors.New("no audio samples decoded")
)

// AudioData is a fully decoded signal: interleaved float32 samples in
// [-1, 1], [L R L R ...] for stereo.
type AudioData struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// FrameCount is the number of frames (one sample per channel).
func (a *AudioData) FrameCount() int {
	if a.Channels == 0 {
		return 0
	}
	return len(a.Samples) / a.Channels
}

func (a *AudioData) DurationSeconds() float64 {
	if a.SampleRate == 0 {
		return 0
	}
	return float64(a.FrameCount()) / float64(a.SampleRate)
}

// DecodeAudioFile decodes a whole audio file, dispatching on the file
// extension. Supported: .wav, .mp3, .ogg.
func DecodeAudioFile(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var audio *AudioData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		audio, err = decodeWav(f)
	case ".mp3":
		audio, err = decodeMp3(f)
	case ".ogg":
		audio, err = decodeOgg(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(audio.Samples) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoAudioData)
	}
	return audio, nil
}

func decodeWav(f *os.File) (*AudioData, error) {
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}
	return &AudioData{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

func decodeMp3(f *os.File) (*AudioData, error) {
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	// go-mp3 emits 16-bit little-endian stereo PCM.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}
	return &AudioData{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}, nil
}

func decodeOgg(f *os.File) (*AudioData, error) {
	samples, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &AudioData{
		Samples:    samples,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
	}, nil
}
