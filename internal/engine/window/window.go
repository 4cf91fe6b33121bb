// Package window creates the OS window and its OpenGL context.
//
// The default driver uses SDL2; build with -tags glfw to use GLFW instead.
package window

import "runtime"

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Resizable  bool
}

// GL context version requested from the driver. 4.1 core is the highest
// macOS offers.
const (
	glMajor = 4
	glMinor = 1
)
