package main

import (
	"fmt"
	"math"
)

// defaultNumPeaks keeps the summary small enough to render at
// constant cost regardless of signal length (a 4-hour file still
// yields ~16 KB of peak data).
const defaultNumPeaks = 2000

// WaveformPeaks is a fixed-resolution min/max summary of a decoded
// signal. It is produced once per loaded file, replaced wholesale on
// a new load and never mutated in place.
type WaveformPeaks struct {
	MinPeaks        []float32
	MaxPeaks        []float32
	NumPeaks        int
	DurationSeconds float64
	SampleRate      int
	Channels        int
}

// ExtractWaveformPeaks decodes an audio file and summarizes it into
// numPeaks min/max buckets.
func ExtractWaveformPeaks(path string, numPeaks int) (*WaveformPeaks, error) {
	if numPeaks <= 0 {
		return nil, fmt.Errorf("numPeaks must be greater than 0, got %d", numPeaks)
	}
	audio, err := DecodeAudioFile(path)
	if err != nil {
		return nil, err
	}
	return ComputePeaks(audio, numPeaks)
}

// ComputePeaks buckets the frames of audio into numPeaks min/max
// pairs. Min and max are taken across all channels of a frame.
// Buckets that receive no frames are forced to 0.
func ComputePeaks(audio *AudioData, numPeaks int) (*WaveformPeaks, error) {
	if numPeaks <= 0 {
		return nil, fmt.Errorf("numPeaks must be greater than 0, got %d", numPeaks)
	}
	frameCount := audio.FrameCount()
	minPeaks := make([]float32, numPeaks)
	maxPeaks := make([]float32, numPeaks)
	for i := range minPeaks {
		minPeaks[i] = math.MaxFloat32
		maxPeaks[i] = -math.MaxFloat32
	}

	framesPerPeak := float64(frameCount) / float64(numPeaks)
	for frame := 0; frame < frameCount; frame++ {
		peakIndex := int(float64(frame) / framesPerPeak)
		if peakIndex >= numPeaks {
			break
		}
		base := frame * audio.Channels
		for ch := 0; ch < audio.Channels; ch++ {
			s := audio.Samples[base+ch]
			if s < minPeaks[peakIndex] {
				minPeaks[peakIndex] = s
			}
			if s > maxPeaks[peakIndex] {
				maxPeaks[peakIndex] = s
			}
		}
	}

	for i := range minPeaks {
		if minPeaks[i] == math.MaxFloat32 {
			minPeaks[i] = 0
		}
		if maxPeaks[i] == -math.MaxFloat32 {
			maxPeaks[i] = 0
		}
	}

	return &WaveformPeaks{
		MinPeaks:        minPeaks,
		MaxPeaks:        maxPeaks,
		NumPeaks:        numPeaks,
		DurationSeconds: audio.DurationSeconds(),
		SampleRate:      audio.SampleRate,
		Channels:        audio.Channels,
	}, nil
}
