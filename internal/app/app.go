// Package app implements the frame loop: window, renderer, the selected
// scene and the state the keyboard changes.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/assets"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/input"
	"github.com/Faultbox/learngl/internal/engine/renderer"
	"github.com/Faultbox/learngl/internal/engine/screenshot"
	"github.com/Faultbox/learngl/internal/engine/watch"
	"github.com/Faultbox/learngl/internal/engine/window"
	"github.com/Faultbox/learngl/internal/logger"
	"github.com/Faultbox/learngl/internal/metrics"
)

// App is the running application.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	state    *State
	programs *programSet
	scene    Scene
	watcher  *watch.Watcher
	shots    *screenshot.Writer
	server   *http.Server
	running  bool
}

// New opens the window and builds the configured scene. Shader failures are
// logged and leave the affected draws empty; they do not fail New.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing application",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("scene", cfg.Render.Scene),
		zap.String("driver", window.Driver()),
	)

	a := &App{
		cfg:   cfg,
		input: input.New(),
		state: &State{MixLevel: cfg.Input.MixLevel, MixStep: cfg.Input.MixStep},
		shots: screenshot.NewWriter(cfg.Render.ScreenshotDir, "learngl"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Resizable:  cfg.Window.Resizable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made current.
	width, height := a.window.FramebufferSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.programs = newProgramSet(&loader{
		backend: a.renderer.Backend(),
		dir:     cfg.Shaders.Dir,
		fsys:    assets.Shaders(),
	})

	a.scene, err = newScene(cfg.Render.Scene, a.programs, cfg.Textures)
	if a.scene == nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	if err != nil {
		logger.Error("scene has unusable shader programs", zap.Error(err))
	}

	if cfg.Shaders.HotReload {
		a.startWatcher()
	}
	if cfg.Metrics.Addr != "" {
		a.startMetrics(cfg.Metrics.Addr)
	}

	logger.Info("application initialized")
	return a, nil
}

func (a *App) startWatcher() {
	files := a.programs.files()
	if len(files) == 0 {
		logger.Warn("hot reload needs shaders.dir; embedded shaders are not watched")
		return
	}
	w, err := watch.New(files...)
	if err != nil {
		logger.Warn("hot reload disabled", zap.Error(err))
		return
	}
	a.watcher = w
	logger.Info("watching shader sources", zap.Strings("files", files))
}

func (a *App) startMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	a.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics endpoint listening", zap.String("addr", addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
}

// Run drives the frame loop until the window is closed or Escape is released.
func (a *App) Run() error {
	a.running = true

	frames := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		// 1. Input
		a.input.Reset()
		a.window.PollEvents(a.input)
		if a.input.QuitRequested() || a.input.KeyReleased(input.KeyEscape) {
			a.running = false
			break
		}
		for _, e := range a.input.Events() {
			if e.Type == input.EventWindowResize {
				a.renderer.Resize(e.Width, e.Height)
			}
		}

		// 2. Update
		if a.state.HandleInput(a.input) {
			logger.Debug("mix level changed", zap.Float32("mix_level", a.state.MixLevel))
		}
		a.reload()

		// 3. Render
		a.renderer.Begin()
		a.scene.Draw(Frame{Time: a.window.Time(), State: a.state})
		a.renderer.End()
		if a.input.KeyReleased(input.KeyP) {
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()
		metrics.FramesRendered.Inc()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// reload rebuilds programs whose sources changed on disk, or all of them
// when R is released.
func (a *App) reload() {
	var changed []string
	switch {
	case a.input.KeyReleased(input.KeyR):
		// nil rebuilds everything
	case a.watcher != nil:
		changed = a.watcher.Drain()
		if len(changed) == 0 {
			return
		}
	default:
		return
	}
	if err := a.programs.reload(changed); err != nil {
		logger.Warn("shader reload failed", zap.Error(err))
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.WritePixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// State returns the application state.
func (a *App) State() *State { return a.state }

// Close releases every resource in reverse order of creation.
func (a *App) Close() {
	logger.Info("closing application")

	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := a.server.Shutdown(ctx); err != nil {
			logger.Warn("metrics endpoint shutdown", zap.Error(err))
		}
		cancel()
		a.server = nil
	}
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.scene != nil {
		a.scene.Close()
		a.scene = nil
	}
	if a.programs != nil {
		a.programs.close()
		a.programs = nil
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
