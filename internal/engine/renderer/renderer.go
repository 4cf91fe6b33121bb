// Package renderer owns the global OpenGL state: function loading, viewport
// and per-frame clearing.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/glbackend"
	"github.com/Faultbox/learngl/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Renderer handles frame setup for the current GL context.
type Renderer struct {
	config  Config
	backend *glbackend.Backend
}

// New loads the GL entry points and sets the default state.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version, name := glbackend.Version()
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", name),
	)

	r := &Renderer{
		config:  cfg,
		backend: glbackend.New(),
	}
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Backend returns the shader backend bound to this context.
func (r *Renderer) Backend() *glbackend.Backend {
	return r.backend
}

// Resize updates the viewport to the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row
// first. Call it after drawing and before swapping buffers.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End finishes the current frame and reports any pending GL error.
func (r *Renderer) End() {
	if code := gl.GetError(); code != gl.NO_ERROR {
		logger.Warn("GL error during frame", zap.String("code", fmt.Sprintf("0x%04X", code)))
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	gl.UseProgram(0)
}
