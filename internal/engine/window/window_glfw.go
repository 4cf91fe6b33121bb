//go:build glfw

package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/logger"
)

// Window wraps a GLFW window and its OpenGL context.
type Window struct {
	config  Config
	glfwWin *glfw.Window
	pending *input.Input
}

// Driver names the window system in use.
func Driver() string {
	return "GLFW " + glfw.GetVersionString()
}

// New creates a window and makes its OpenGL context current.
func New(cfg Config) (*Window, error) {
	w := &Window{config: cfg}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwInit failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, glMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, glMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	var err error
	w.glfwWin, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwCreateWindow failed: %w", err)
	}
	w.glfwWin.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.glfwWin.SetKeyCallback(w.onKey)
	w.glfwWin.SetFramebufferSizeCallback(w.onResize)

	logger.Info("window created",
		zap.String("driver", Driver()),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	logger.Info("closing window")
	if w.glfwWin != nil {
		w.glfwWin.Destroy()
	}
	glfw.Terminate()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.glfwWin.SwapBuffers()
}

// FramebufferSize returns the framebuffer size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.glfwWin.GetFramebufferSize()
}

// Time returns seconds since GLFW was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// PollEvents processes pending GLFW events into in.
func (w *Window) PollEvents(in *input.Input) {
	w.pending = in
	glfw.PollEvents()
	w.pending = nil

	if w.glfwWin.ShouldClose() {
		in.Push(input.Event{Type: input.EventQuit})
	}
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if w.pending == nil {
		return
	}
	switch action {
	case glfw.Press:
		w.pending.Push(input.Event{Type: input.EventKeyDown, Key: glfwKey(key)})
	case glfw.Release:
		w.pending.Push(input.Event{Type: input.EventKeyUp, Key: glfwKey(key)})
	}
}

func (w *Window) onResize(_ *glfw.Window, width, height int) {
	if w.pending == nil {
		return
	}
	w.pending.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
}

func glfwKey(key glfw.Key) input.Key {
	switch key {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyR:
		return input.KeyR
	case glfw.KeyP:
		return input.KeyP
	default:
		return input.KeyUnknown
	}
}
