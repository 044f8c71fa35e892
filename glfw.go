package main

import (
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const desiredFPS = 30

const (
	defaultWindowWidth  = 1200
	defaultWindowHeight = 400
)

var fbSize Size

func init() {
	runtime.LockOSThread()
}

type GlfwApp interface {
	Init() error
	IsRunning() bool
	OnKey(key glfw.Key, scancode int, action glfw.Action, modes glfw.ModifierKey)
	OnChar(char rune)
	OnCursorPos(x, y float64)
	OnMouseButton(button glfw.MouseButton, action glfw.Action, modes glfw.ModifierKey)
	OnFramebufferSize(width, height int)
	Render() error
	Update() error
	Close() error
}

// cursorToFramebuffer converts window coordinates to framebuffer
// pixels (they differ on scaled displays).
func cursorToFramebuffer(w *glfw.Window, x, y float64) (float64, float64) {
	ww, wh := w.GetSize()
	if ww == 0 || wh == 0 {
		return x, y
	}
	return x * float64(fbSize.X) / float64(ww), y * float64(fbSize.Y) / float64(wh)
}

func WithGL(windowTitle string, app GlfwApp) error {
	err := glfw.Init()
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	window, err := glfw.CreateWindow(defaultWindowWidth, defaultWindowHeight, windowTitle, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	framebufferSizeCallback := func(w *glfw.Window, width, height int) {
		fbSize.X = width
		fbSize.Y = height
		gl.Viewport(0, 0, int32(width), int32(height))
		app.OnFramebufferSize(width, height)
	}
	window.SetFramebufferSizeCallback(framebufferSizeCallback)
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.OnKey(key, scancode, action, mods)
	})
	window.SetCharCallback(func(w *glfw.Window, char rune) {
		app.OnChar(char)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		fx, fy := cursorToFramebuffer(w, x, y)
		app.OnCursorPos(fx, fy)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		app.OnMouseButton(button, action, mods)
	})
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return err
	}
	width, height := glfw.GetCurrentContext().GetFramebufferSize()
	framebufferSizeCallback(nil, width, height)
	if err := app.Init(); err != nil {
		return err
	}
	defer app.Close()
	for app.IsRunning() {
		start := glfw.GetTime()
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := app.Render(); err != nil {
			return err
		}
		window.SwapBuffers()
		elapsedSeconds := glfw.GetTime() - start
		frameSeconds := 1.0 / desiredFPS
		if frameSeconds > elapsedSeconds {
			glfw.WaitEventsTimeout(frameSeconds - elapsedSeconds)
		} else {
			glfw.PollEvents()
		}
		if err := app.Update(); err != nil {
			return err
		}
	}
	return nil
}
