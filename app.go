package main

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Event is the type of callback functions sent to the app's events channel
type Event func()

type App struct {
	engine   Engine
	theme    *Theme
	filePath string
	numPeaks int

	surface    *WaveformSurface
	keymap     KeyMap
	events     chan Event
	shouldExit bool
	lastError  error
	loading    bool
	trimming   bool

	viewRect    Rect
	cursorX     float64
	cursorY     float64
	pointerDown bool
}

func CreateApp(engine Engine, theme *Theme, filePath string, numPeaks int) *App {
	return &App{
		engine:   engine,
		theme:    theme,
		filePath: filePath,
		numPeaks: numPeaks,
	}
}

func (app *App) SetLastError(err error) {
	app.lastError = err
	if err != nil {
		logger.Error("command failed", "error", err)
	}
}

func (app *App) ClearLastError() {
	app.lastError = nil
}

func (app *App) postEvent(ev Event, dropIfFull bool) {
	if dropIfFull {
		select {
		case app.events <- ev:
		default:
		}
	} else {
		app.events <- ev
	}
}

func (app *App) Init() error {
	// Event queue used by the peak loader and the transport poll to
	// post updates to the main thread.
	app.events = make(chan Event, 1024)
	app.surface = CreateWaveformSurface(app.theme, app.engine, func(ev Event) {
		app.postEvent(ev, true)
	})
	app.surface.Resize(app.viewRect)

	keymap := CreateKeyMap()
	keymap.Bind("Space", app.togglePlayback)
	keymap.Bind("s", app.stopPlayback)
	keymap.Bind("t", app.trimSelection)
	keymap.Bind("r", app.loadPeaks)
	keymap.Bind("q", app.Quit)
	keymap.Bind("Escape", app.Quit)
	app.keymap = keymap

	app.loadPeaks()
	return nil
}

func (app *App) IsRunning() bool {
	return !app.shouldExit
}

func (app *App) Quit() {
	app.shouldExit = true
}

// loadPeaks extracts the peak summary in the background. On failure
// nothing is installed and the load can be retried with "r".
func (app *App) loadPeaks() {
	if app.loading {
		return
	}
	app.loading = true
	app.ClearLastError()
	go func() {
		peaks, err := app.engine.GetWaveformPeaks(app.filePath, app.numPeaks)
		app.postEvent(func() {
			app.loading = false
			if err != nil {
				app.SetLastError(err)
				return
			}
			logger.Info("peaks loaded",
				"file", app.filePath,
				"numPeaks", peaks.NumPeaks,
				"duration", peaks.DurationSeconds)
			app.surface.SetPeaks(peaks)
		}, false)
	}()
}

func (app *App) togglePlayback() {
	state, err := app.engine.GetPlaybackState()
	if err != nil {
		// Nothing in the transport yet, start from the top.
		if err := app.engine.PlayAudio(app.filePath); err != nil {
			app.SetLastError(err)
		}
		return
	}
	if state.IsPlaying {
		err = app.engine.PauseAudio()
	} else {
		err = app.engine.ResumeAudio()
	}
	if err != nil {
		app.SetLastError(err)
	}
}

func (app *App) stopPlayback() {
	if err := app.engine.StopAudio(); err != nil {
		app.SetLastError(err)
	}
}

// trimSelection writes the selected range next to the input file. The
// trimming flag is cleared on failure too, the UI never sticks.
func (app *App) trimSelection() {
	if app.trimming || app.surface.Peaks() == nil {
		return
	}
	sel := app.surface.Selection()
	outputPath := trimOutputPath(app.filePath)
	app.trimming = true
	go func() {
		err := app.engine.TrimAudioFile(app.filePath, outputPath, sel.Start, sel.End)
		app.postEvent(func() {
			app.trimming = false
			if err != nil {
				app.SetLastError(err)
				return
			}
			logger.Info("trim written", "path", outputPath,
				"start", sel.Start, "end", sel.End)
		}, false)
	}()
}

func trimOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".trimmed.wav"
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, modes glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	var keyName Key
	switch key {
	case glfw.KeySpace:
		keyName = "Space"
	case glfw.KeyEscape:
		keyName = "Escape"
	default:
		keyName = glfw.GetKeyName(key, scancode)
	}
	if keyName == "" {
		return
	}
	app.keymap.HandleKey(keyName)
}

func (app *App) OnChar(char rune) {
}

func (app *App) OnCursorPos(x, y float64) {
	app.cursorX = x
	app.cursorY = y
	if app.pointerDown && app.surface != nil {
		app.surface.OnPointerMove(x, y)
	}
}

func (app *App) OnMouseButton(button glfw.MouseButton, action glfw.Action, modes glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || app.surface == nil {
		return
	}
	switch action {
	case glfw.Press:
		app.pointerDown = true
		app.surface.OnPointerDown(app.cursorX, app.cursorY)
	case glfw.Release:
		app.pointerDown = false
		app.surface.OnPointerUp(app.cursorX, app.cursorY)
	}
}

func (app *App) OnFramebufferSize(width, height int) {
	app.viewRect = image.Rect(0, 0, width, height)
	if app.surface != nil {
		app.surface.Resize(app.viewRect)
	}
}

func (app *App) Render() error {
	return app.surface.Render()
}

func (app *App) drainEvents() {
	for {
		select {
		case ev := <-app.events:
			ev()
		default:
			return // nothing queued right now
		}
	}
}

func (app *App) Update() error {
	app.drainEvents()
	return nil
}

func (app *App) Close() error {
	logger.Debug("Close")
	app.surface.Close()
	if closer, ok := app.engine.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
