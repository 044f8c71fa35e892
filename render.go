package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	// handleWidthPx is the width of the opaque bar drawn over each
	// selection edge.
	handleWidthPx = 8
	// peakMarginScale reserves headroom so full-scale peaks never
	// touch the frame edge.
	peakMarginScale = 0.9
	// playheadGlyphPx is the half-width of the triangular drag handle
	// at the top of the playhead line.
	playheadGlyphPx = 6
	labelPadPx      = 4
)

// Theme is the drawing context handed to the surface at construction;
// there is no module-level theme. Playhead must stay visually
// distinct from Handle so the two indicators cannot be confused.
type Theme struct {
	Background color.RGBA
	Bars       color.RGBA
	Dim        color.RGBA
	Handle     color.RGBA
	Label      color.RGBA
	Playhead   color.RGBA
	Face       font.Face
}

func DefaultTheme() *Theme {
	return &Theme{
		Background: color.RGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff},
		Bars:       color.RGBA{R: 0x4f, G: 0x9d, B: 0xde, A: 0xff},
		Dim:        color.RGBA{A: 0x8c},
		Handle:     color.RGBA{R: 0xff, G: 0xb0, B: 0x30, A: 0xff},
		Label:      color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
		Playhead:   color.RGBA{R: 0xff, G: 0x47, B: 0x5a, A: 0xff},
		Face:       basicfont.Face7x13,
	}
}

// RenderWaveform draws the peak bars, the dimmed regions outside the
// selection, the selection handles with their time labels and, when
// showPlayhead is set, the playhead indicator. It is a pure function
// of its inputs: repeated calls with unchanged arguments yield the
// same image. With no peaks or no duration only the background is
// drawn.
func RenderWaveform(dst *image.RGBA, theme *Theme, peaks *WaveformPeaks, sel TrimSelection, playhead float64, showPlayhead bool) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(theme.Background), image.Point{}, draw.Src)
	if peaks == nil || peaks.NumPeaks == 0 || peaks.DurationSeconds <= 0 {
		return
	}

	width := bounds.Dx()
	height := bounds.Dy()
	duration := peaks.DurationSeconds
	drawPeakBars(dst, theme, peaks, width, height)
	drawSelection(dst, theme, sel, duration, width, height)
	if showPlayhead {
		drawPlayhead(dst, theme, playhead, duration, width, height)
	}
}

func drawPeakBars(dst *image.RGBA, theme *Theme, peaks *WaveformPeaks, width, height int) {
	bounds := dst.Bounds()
	halfHeight := float64(height) / 2
	centerY := bounds.Min.Y + height/2
	for i := 0; i < peaks.NumPeaks; i++ {
		x0 := bounds.Min.X + i*width/peaks.NumPeaks
		x1 := bounds.Min.X + (i+1)*width/peaks.NumPeaks
		if x1 <= x0 {
			x1 = x0 + 1
		}
		yTop := centerY - int(float64(peaks.MaxPeaks[i])*peakMarginScale*halfHeight)
		yBot := centerY - int(float64(peaks.MinPeaks[i])*peakMarginScale*halfHeight)
		if yBot <= yTop {
			yBot = yTop + 1
		}
		fillRect(dst, image.Rect(x0, yTop, x1, yBot), theme.Bars)
	}
}

func drawSelection(dst *image.RGBA, theme *Theme, sel TrimSelection, duration float64, width, height int) {
	bounds := dst.Bounds()
	startX := bounds.Min.X + int(TimeToX(sel.Start, duration, width))
	endX := bounds.Min.X + int(TimeToX(sel.End, duration, width))

	dimRect(dst, image.Rect(bounds.Min.X, bounds.Min.Y, startX, bounds.Max.Y), theme.Dim)
	dimRect(dst, image.Rect(endX, bounds.Min.Y, bounds.Max.X, bounds.Max.Y), theme.Dim)

	fillRect(dst, image.Rect(startX-handleWidthPx/2, bounds.Min.Y, startX+handleWidthPx/2, bounds.Max.Y), theme.Handle)
	fillRect(dst, image.Rect(endX-handleWidthPx/2, bounds.Min.Y, endX+handleWidthPx/2, bounds.Max.Y), theme.Handle)

	labelY := bounds.Min.Y + theme.Face.Metrics().Ascent.Ceil() + labelPadPx
	startLabel := fmt.Sprintf("%.2f", sel.Start)
	endLabel := fmt.Sprintf("%.2f", sel.End)
	DrawText(dst, theme.Face, theme.Label, startX+handleWidthPx/2+labelPadPx, labelY, startLabel)
	endLabelX := endX - handleWidthPx/2 - labelPadPx - MeasureText(theme.Face, endLabel)
	DrawText(dst, theme.Face, theme.Label, endLabelX, labelY, endLabel)
}

func drawPlayhead(dst *image.RGBA, theme *Theme, playhead, duration float64, width, height int) {
	bounds := dst.Bounds()
	px := bounds.Min.X + int(TimeToX(clamp(playhead, 0, duration), duration, width))

	fillRect(dst, image.Rect(px, bounds.Min.Y, px+1, bounds.Max.Y), theme.Playhead)
	for dy := 0; dy < playheadGlyphPx; dy++ {
		half := playheadGlyphPx - dy
		fillRect(dst, image.Rect(px-half, bounds.Min.Y+dy, px+half+1, bounds.Min.Y+dy+1), theme.Playhead)
	}

	label := fmt.Sprintf("%.1f", playhead)
	labelX := px + labelPadPx
	if labelX+MeasureText(theme.Face, label) > bounds.Max.X {
		labelX = px - labelPadPx - MeasureText(theme.Face, label)
	}
	DrawText(dst, theme.Face, theme.Playhead, labelX, bounds.Max.Y-theme.Face.Metrics().Descent.Ceil()-labelPadPx, label)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func dimRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}
