// Package config handles flora configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/pkg/math"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all settings of the flora driver.
type Config struct {
	Quality   QualityConfig   `yaml:"quality" toml:"quality"`
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Session   SessionConfig   `yaml:"session" toml:"session"`
	Export    ExportConfig    `yaml:"export" toml:"export"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// QualityConfig selects the capability tier.
type QualityConfig struct {
	Tier string `yaml:"tier" toml:"tier"` // low, mobile or desktop
}

// AnimationConfig tunes the per-frame animation.
type AnimationConfig struct {
	WindStrength      float32 `yaml:"wind_strength" toml:"wind_strength"` // Multiplier on per-ring wind
	MaxPulseIntensity float32 `yaml:"max_pulse_intensity" toml:"max_pulse_intensity"`
	FrameSkip         bool    `yaml:"frame_skip" toml:"frame_skip"` // Honour the tier's sway stride
}

// SessionConfig describes the simulated inputs the driver feeds the flower.
type SessionConfig struct {
	FPS     int     `yaml:"fps" toml:"fps"`
	Seconds float32 `yaml:"seconds" toml:"seconds"`
	// Bearing and Heading are degrees clockwise from north; nil means the
	// sensor is unavailable.
	Bearing *float32 `yaml:"bearing,omitempty" toml:"bearing,omitempty"`
	Heading *float32 `yaml:"heading,omitempty" toml:"heading,omitempty"`
	// Distance to the target in meters; negative means unknown.
	Distance float32 `yaml:"distance" toml:"distance"`
}

// ExportConfig controls OBJ export after a session.
type ExportConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	OBJ    bool   `yaml:"obj" toml:"obj"`
	Bounds bool   `yaml:"bounds" toml:"bounds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Quality: QualityConfig{
			Tier: "mobile",
		},
		Animation: AnimationConfig{
			WindStrength:      1.0,
			MaxPulseIntensity: 0.15,
			FrameSkip:         true,
		},
		Session: SessionConfig{
			FPS:      60,
			Seconds:  10,
			Distance: -1,
		},
		Export: ExportConfig{
			Dir: "exports",
			OBJ: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Capability parses the configured tier.
func (c *Config) Capability() (quality.Capability, error) {
	return quality.ParseCapability(c.Quality.Tier)
}

// Validate rejects settings the driver cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Capability(); err != nil {
		return fmt.Errorf("%w: quality.tier: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.Session.FPS <= 0:
		return fmt.Errorf("%w: session.fps must be positive, got %d", ErrInvalidConfig, c.Session.FPS)
	case !(c.Session.Seconds > 0) || !math.IsFinite(c.Session.Seconds):
		return fmt.Errorf("%w: session.seconds must be positive, got %v", ErrInvalidConfig, c.Session.Seconds)
	case c.Animation.WindStrength < 0 || !math.IsFinite(c.Animation.WindStrength):
		return fmt.Errorf("%w: animation.wind_strength must be >= 0", ErrInvalidConfig)
	case c.Animation.MaxPulseIntensity < 0 || !math.IsFinite(c.Animation.MaxPulseIntensity):
		return fmt.Errorf("%w: animation.max_pulse_intensity must be >= 0", ErrInvalidConfig)
	}
	return nil
}
