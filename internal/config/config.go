// Package config loads polyview settings from defaults, an optional YAML file, POLYVIEW_*
// environment variables and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/polyview/engine/loader"
	"github.com/Carmen-Shannon/polyview/engine/renderer"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables read into the configuration.
	EnvPrefix = "POLYVIEW"

	// DefaultFileName is the configuration file looked up in the home directory.
	DefaultFileName = ".polyview.yaml"
)

// ErrInvalid is wrapped by every error returned from Config.Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete polyview configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Render    RenderConfig    `mapstructure:"render"`
	Animation AnimationConfig `mapstructure:"animation"`
	Loader    LoaderConfig    `mapstructure:"loader"`
}

// WindowConfig controls the viewer window.
type WindowConfig struct {
	Title     string `mapstructure:"title"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Resizable bool   `mapstructure:"resizable"`
}

// RenderConfig controls the GPU renderer.
type RenderConfig struct {
	// MSAA is the sample count, 1 or 4.
	MSAA          int       `mapstructure:"msaa"`
	VSync         bool      `mapstructure:"vsync"`
	ForceSoftware bool      `mapstructure:"force_software"`
	ClearColor    []float64 `mapstructure:"clear_color"`
}

// AnimationConfig controls the viewer's rotation and frame pacing.
type AnimationConfig struct {
	// FPS is the target frame rate. The loop sleeps until the next frame is due.
	FPS int `mapstructure:"fps"`

	// Speed scales the rotation rate. Zero holds the mesh still.
	Speed float64 `mapstructure:"speed"`

	// Paused starts the viewer with rotation stopped.
	Paused bool `mapstructure:"paused"`
}

// LoaderConfig controls document loading.
type LoaderConfig struct {
	// PolygonPolicy is "reject" or "fan".
	PolygonPolicy string `mapstructure:"polygon_policy"`

	// Workers is the number of concurrent loads used by validate.
	Workers int `mapstructure:"workers"`
}

// SetDefaults registers every default on v. Keys must be known to viper for
// environment variables to reach Unmarshal.
//
// Parameters:
//   - v: the viper instance to populate
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "polyview")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.resizable", true)

	v.SetDefault("render.msaa", 4)
	v.SetDefault("render.vsync", true)
	v.SetDefault("render.force_software", false)
	v.SetDefault("render.clear_color", []float64{0.05, 0.05, 0.08, 1})

	v.SetDefault("animation.fps", 60)
	v.SetDefault("animation.speed", 1.0)
	v.SetDefault("animation.paused", false)

	v.SetDefault("loader.polygon_policy", "reject")
	v.SetDefault("loader.workers", 4)
}

// NewViper creates a viper instance with defaults, environment binding and the
// configuration file read in.
//
// Parameters:
//   - configFile: explicit configuration file; empty looks for DefaultFileName in the home
//     directory and tolerates its absence
//
// Returns:
//   - *viper.Viper: the populated instance
//   - error: error if an explicit file cannot be read or any file fails to parse
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
		return v, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		// No home directory is not fatal, defaults and environment still apply.
		return v, nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", filepath.Join(home, DefaultFileName), err)
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
//
// Parameters:
//   - v: a viper instance prepared by NewViper, possibly with flags bound
//
// Returns:
//   - *Config: the decoded configuration
//   - error: error if decoding fails or a value is invalid
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Render.MSAA != int(renderer.MSAAOff) && c.Render.MSAA != int(renderer.MSAA4x) {
		return fmt.Errorf("%w: render.msaa must be %d or %d, got %d", ErrInvalid, renderer.MSAAOff, renderer.MSAA4x, c.Render.MSAA)
	}
	if len(c.Render.ClearColor) != 4 {
		return fmt.Errorf("%w: render.clear_color needs 4 components, got %d", ErrInvalid, len(c.Render.ClearColor))
	}
	for i, f := range c.Render.ClearColor {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: render.clear_color[%d] = %g outside [0, 1]", ErrInvalid, i, f)
		}
	}
	if c.Animation.FPS <= 0 || c.Animation.FPS > 1000 {
		return fmt.Errorf("%w: animation.fps %d", ErrInvalid, c.Animation.FPS)
	}
	if c.Animation.Speed < 0 {
		return fmt.Errorf("%w: animation.speed %g", ErrInvalid, c.Animation.Speed)
	}
	if _, err := loader.ParsePolygonPolicy(c.Loader.PolygonPolicy); err != nil {
		return fmt.Errorf("%w: loader.polygon_policy: %w", ErrInvalid, err)
	}
	if c.Loader.Workers <= 0 {
		return fmt.Errorf("%w: loader.workers %d", ErrInvalid, c.Loader.Workers)
	}
	return nil
}

// ClearColor returns the render clear colour as the RGBA quadruple the renderer takes.
func (c *Config) ClearColor() [4]float64 {
	var out [4]float64
	copy(out[:], c.Render.ClearColor)
	return out
}

// PolygonPolicy returns the parsed loader polygon policy. Validate guarantees it parses.
func (c *Config) PolygonPolicy() loader.PolygonPolicy {
	p, _ := loader.ParsePolygonPolicy(c.Loader.PolygonPolicy)
	return p
}
