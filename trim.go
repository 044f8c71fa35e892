package main

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// TrimParams is a validated [start, end] range in seconds.
type TrimParams struct {
	StartSeconds float64
	EndSeconds   float64
}

func NewTrimParams(start, end float64) (TrimParams, error) {
	if start < 0 {
		return TrimParams{}, fmt.Errorf("invalid trim parameters: start time cannot be negative: %g", start)
	}
	if end <= start {
		return TrimParams{}, fmt.Errorf("invalid trim parameters: end time (%g) must be greater than start time (%g)", end, start)
	}
	return TrimParams{StartSeconds: start, EndSeconds: end}, nil
}

func (p TrimParams) Duration() float64 {
	return p.EndSeconds - p.StartSeconds
}

// TrimAudio copies the frames of audio between the trim bounds. The
// range must lie within the signal.
func TrimAudio(audio *AudioData, params TrimParams) (*AudioData, error) {
	duration := audio.DurationSeconds()
	if params.EndSeconds > duration {
		return nil, fmt.Errorf("trim range (%gs to %gs) exceeds audio duration (%gs)",
			params.StartSeconds, params.EndSeconds, duration)
	}

	startFrame := int(params.StartSeconds * float64(audio.SampleRate))
	endFrame := int(params.EndSeconds * float64(audio.SampleRate))
	start := min(startFrame*audio.Channels, len(audio.Samples))
	end := min(endFrame*audio.Channels, len(audio.Samples))

	samples := make([]float32, end-start)
	copy(samples, audio.Samples[start:end])
	return &AudioData{
		Samples:    samples,
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
	}, nil
}

// EncodeWAVFile writes audio to path as 16-bit PCM WAV.
func EncodeWAVFile(audio *AudioData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: audio.Channels,
			SampleRate:  audio.SampleRate,
		},
		Data:           make([]int, len(audio.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range audio.Samples {
		buf.Data[i] = int(math.Round(clamp(float64(s), -1, 1) * 32767))
	}

	enc := wav.NewEncoder(f, audio.SampleRate, 16, audio.Channels, 1)
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return f.Close()
}

// TrimToFile decodes inputPath, trims it to [start, end] and writes
// the result to outputPath as WAV.
func TrimToFile(inputPath, outputPath string, start, end float64) error {
	params, err := NewTrimParams(start, end)
	if err != nil {
		return err
	}
	audio, err := DecodeAudioFile(inputPath)
	if err != nil {
		return err
	}
	trimmed, err := TrimAudio(audio, params)
	if err != nil {
		return err
	}
	return EncodeWAVFile(trimmed, outputPath)
}
