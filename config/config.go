// Package config provides configuration loading and access for the globe
// demo driver.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/globe"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all driver configuration parameters.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Frame  FrameConfig  `yaml:"frame"`
	Render RenderConfig `yaml:"render"`
	Trail  TrailConfig  `yaml:"trail"`
	Pool   PoolConfig   `yaml:"pool"`
	Effect EffectConfig `yaml:"effect"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the LED grid dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FrameConfig holds the frame loop settings.
type FrameConfig struct {
	FPS   int `yaml:"fps"`   // 0 = as fast as possible
	Count int `yaml:"count"` // frames to render before exiting
}

// RenderConfig holds pipeline stage settings.
type RenderConfig struct {
	Blend     string       `yaml:"blend"` // over, add or max
	AntiAlias bool         `yaml:"antialias"`
	Replicate int          `yaml:"replicate"` // copies; 1 disables
	Hole      HoleConfig   `yaml:"hole"`
	Mobius    MobiusConfig `yaml:"mobius"`
}

// HoleConfig holds the Hole stage settings.
type HoleConfig struct {
	Radius float64 `yaml:"radius"` // radians; 0 disables
}

// MobiusConfig holds the Mobius stage animation.
type MobiusConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Speed    float64 `yaml:"speed"`    // radians per second
	Strength float64 `yaml:"strength"` // magnitude of the translation term
}

// TrailConfig holds the Trail stage settings.
type TrailConfig struct {
	Lifespan float64 `yaml:"lifespan"` // frames; 0 disables
	Capacity int     `yaml:"capacity"`
	Alpha    float64 `yaml:"alpha"`
}

// PoolConfig holds initial arena capacities.
type PoolConfig struct {
	Fragments int `yaml:"fragments"`
	Vectors   int `yaml:"vectors"`
	Steps     int `yaml:"steps"`
}

// EffectConfig holds the demo effect parameters.
type EffectConfig struct {
	RingRadius    float64  `yaml:"ring_radius"`
	RingSamples   int      `yaml:"ring_samples"`
	StarPoints    int      `yaml:"star_points"`
	StarInner     float64  `yaml:"star_inner"`
	StarOuter     float64  `yaml:"star_outer"`
	FlowerPetals  int      `yaml:"flower_petals"`
	RotationSpeed float64  `yaml:"rotation_speed"` // radians per second
	Tilt          float64  `yaml:"tilt"`           // radians
	Palette       []string `yaml:"palette"`        // hex colors
}

// OutputConfig holds run output settings.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	PNG          bool   `yaml:"png"`
	PreviewScale int    `yaml:"preview_scale"`
	PerfCSV      bool   `yaml:"perf_csv"`
	PerfWindow   int    `yaml:"perf_window"` // frames per perf sample
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Blend    globe.BlendMode
	LogLevel slog.Level
	FrameDT  float64 // seconds per frame; 1/60 when FPS is 0
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Width < 1:
		return fmt.Errorf("%w: grid.width %d < 1", ErrInvalid, c.Grid.Width)
	case c.Grid.Height < 2:
		return fmt.Errorf("%w: grid.height %d < 2", ErrInvalid, c.Grid.Height)
	case c.Frame.FPS < 0:
		return fmt.Errorf("%w: frame.fps %d < 0", ErrInvalid, c.Frame.FPS)
	case c.Frame.Count < 0:
		return fmt.Errorf("%w: frame.count %d < 0", ErrInvalid, c.Frame.Count)
	case c.Render.Replicate < 1:
		return fmt.Errorf("%w: render.replicate %d < 1", ErrInvalid, c.Render.Replicate)
	case c.Render.Hole.Radius < 0 || c.Render.Hole.Radius > math.Pi:
		return fmt.Errorf("%w: render.hole.radius %v outside [0, π]", ErrInvalid, c.Render.Hole.Radius)
	case c.Trail.Lifespan < 0:
		return fmt.Errorf("%w: trail.lifespan %v < 0", ErrInvalid, c.Trail.Lifespan)
	case c.Trail.Lifespan > 0 && c.Trail.Capacity < 1:
		return fmt.Errorf("%w: trail.capacity %d < 1", ErrInvalid, c.Trail.Capacity)
	case c.Trail.Alpha < 0 || c.Trail.Alpha > 1:
		return fmt.Errorf("%w: trail.alpha %v outside [0, 1]", ErrInvalid, c.Trail.Alpha)
	case len(c.Effect.Palette) == 0:
		return fmt.Errorf("%w: effect.palette is empty", ErrInvalid)
	case c.Output.PreviewScale < 1:
		return fmt.Errorf("%w: output.preview_scale %d < 1", ErrInvalid, c.Output.PreviewScale)
	}
	if _, ok := globe.ParseBlendMode(c.Render.Blend); !ok {
		return fmt.Errorf("%w: render.blend %q", ErrInvalid, c.Render.Blend)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Blend, _ = globe.ParseBlendMode(c.Render.Blend)
	_ = c.Derived.LogLevel.UnmarshalText([]byte(c.Log.Level))
	c.Derived.FrameDT = 1.0 / 60
	if c.Frame.FPS > 0 {
		c.Derived.FrameDT = 1 / float64(c.Frame.FPS)
	}
}

// ArenaConfig returns the arena capacities.
func (c *Config) ArenaConfig() globe.ArenaConfig {
	return globe.ArenaConfig{
		Fragments: c.Pool.Fragments,
		Vectors:   c.Pool.Vectors,
		Steps:     c.Pool.Steps,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config output is not secret
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
