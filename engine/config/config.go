// Package config loads the application configuration: built-in defaults, then an optional YAML file,
// then command-line flag overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/feed"
	"github.com/Carmen-Shannon/oxy-orbit/engine/logger"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	// Scene is the route to open. Empty redirects to the default scene.
	Scene    string         `yaml:"scene"`
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Feed     FeedConfig     `yaml:"feed"`
	Assets   AssetsConfig   `yaml:"assets"`
	Settings SettingsConfig `yaml:"settings"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      logger.Config  `yaml:"log"`
}

// WindowConfig configures the native window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig configures the GPU renderer.
type RendererConfig struct {
	// VSync selects FIFO presentation; false presents immediately.
	VSync bool `yaml:"vsync"`
	// MSAA is the sample count of the main pass, 1 or 4.
	MSAA int `yaml:"msaa"`
	// ForceSoftware requests the fallback adapter.
	ForceSoftware bool `yaml:"force_software"`
}

// FeedConfig configures the near-earth-object feed fetch.
type FeedConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AssetsConfig locates the planet and asteroid textures.
type AssetsConfig struct {
	// BasePath is a local directory or an http(s) URL prefix.
	BasePath string `yaml:"base_path"`
	Earth    string `yaml:"earth"`
	Moon     string `yaml:"moon"`
}

// SettingsConfig seeds the debug panel and the procedural generators.
type SettingsConfig struct {
	UseRenderBundles bool `yaml:"use_render_bundles"`
	// Seed makes meshes and asteroid placement reproducible. Zero leaves them unseeded.
	Seed uint64 `yaml:"seed"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address. Empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Orbit",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			VSync: true,
			MSAA:  1,
		},
		Feed: FeedConfig{
			URL:     feed.DefaultURL,
			Timeout: 30 * time.Second,
		},
		Assets: AssetsConfig{
			BasePath: "assets",
			Earth:    "img/earth.jpg",
			Moon:     "img/moon.jpg",
		},
		Settings: SettingsConfig{
			UseRenderBundles: true,
		},
		Log: logger.Config{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads the YAML file at path over Default. An empty path returns the defaults.
//
// Parameters:
//   - path: the config file path, or ""
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges YAML data into cfg and validates the result. Keys absent from data keep their
// current values; unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//   - cfg: the configuration to merge into
//
// Returns:
//   - error: a parse or validation error
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks ranges and required values.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4:
		return fmt.Errorf("%w: msaa must be 1 or 4, got %d", ErrInvalidConfig, c.Renderer.MSAA)
	case c.Feed.URL == "":
		return fmt.Errorf("%w: feed url is empty", ErrInvalidConfig)
	case c.Feed.Timeout <= 0:
		return fmt.Errorf("%w: feed timeout must be positive", ErrInvalidConfig)
	case c.Assets.Earth == "" || c.Assets.Moon == "":
		return fmt.Errorf("%w: earth and moon textures are required", ErrInvalidConfig)
	}
	return nil
}
