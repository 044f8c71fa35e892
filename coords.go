package main

// Time <-> pixel mapping for a waveform viewport. Both directions are
// pure; callers must skip drawing and seeking entirely when there is
// no data (duration == 0), the mapping is undefined there.

// TimeToX returns the horizontal pixel position of a time in seconds.
func TimeToX(time, duration float64, width int) float64 {
	return time / duration * float64(width)
}

// XToTime returns the time under a pixel position. The position is
// clamped to the viewport, so the result always lies in [0, duration].
func XToTime(x, duration float64, width int) float64 {
	if width <= 0 {
		return 0
	}
	return clamp(x/float64(width), 0, 1) * duration
}

func clamp(value float64, lo float64, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
