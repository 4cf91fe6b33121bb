// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Scene names understood by the application.
const (
	SceneTriangles = "triangles"
	SceneTextured  = "textured"
)

// Config holds all application settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Shaders  ShadersConfig  `yaml:"shaders"`
	Textures TexturesConfig `yaml:"textures"`
	Input    InputConfig    `yaml:"input"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Resizable  bool   `yaml:"resizable"`
}

// RenderConfig selects what gets drawn.
type RenderConfig struct {
	Scene         string     `yaml:"scene"`
	ClearColor    [4]float32 `yaml:"clear_color"`
	ScreenshotDir string     `yaml:"screenshot_dir"`
}

// ShadersConfig locates shader sources. An empty Dir uses the embedded shaders.
type ShadersConfig struct {
	Dir       string `yaml:"dir"`
	HotReload bool   `yaml:"hot_reload"`
}

// TexturesConfig locates the images used by the textured scene.
type TexturesConfig struct {
	Dir       string `yaml:"dir"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// InputConfig holds the mix level controlled from the keyboard.
type InputConfig struct {
	MixLevel float32 `yaml:"mix_level"`
	MixStep  float32 `yaml:"mix_step"`
}

// MetricsConfig holds the Prometheus endpoint address. Empty disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Learn OpenGL",
			Width:     800,
			Height:    600,
			VSync:     true,
			Resizable: false,
		},
		Render: RenderConfig{
			Scene:         SceneTextured,
			ClearColor:    [4]float32{0.2, 0.3, 0.3, 1.0},
			ScreenshotDir: "screenshots",
		},
		Textures: TexturesConfig{
			Dir:       "assets/textures",
			Primary:   "container.jpg",
			Secondary: "awesomeface.png",
		},
		Input: InputConfig{
			MixLevel: 0.2,
			MixStep:  0.1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Render.Scene {
	case SceneTriangles, SceneTextured:
	default:
		errs = append(errs, fmt.Errorf("unknown scene %q", c.Render.Scene))
	}
	if c.Input.MixLevel < 0 || c.Input.MixLevel > 1 {
		errs = append(errs, fmt.Errorf("mix_level %v outside [0, 1]", c.Input.MixLevel))
	}
	if c.Input.MixStep <= 0 {
		errs = append(errs, fmt.Errorf("mix_step %v must be positive", c.Input.MixStep))
	}
	return errors.Join(errs...)
}
