package main

// PlaybackState is a snapshot of the engine transport. It is
// overwritten wholesale on each poll; Duration 0 means no file is
// loaded.
type PlaybackState struct {
	IsPlaying   bool
	CurrentTime float64
	Duration    float64
}

// Engine is the command interface to the audio engine. Any command
// may fail (engine busy, file missing, invalid range); failures are
// plain error values and never corrupt caller state.
type Engine interface {
	GetWaveformPeaks(path string, numPeaks int) (*WaveformPeaks, error)
	PlayAudio(path string) error
	PauseAudio() error
	ResumeAudio() error
	StopAudio() error
	SeekAudio(seconds float64) error
	GetPlaybackState() (PlaybackState, error)
	TrimAudioFile(inputPath, outputPath string, startSeconds, endSeconds float64) error
}
