package config

import (
	"flag"
	gomath "math"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagTier     = flag.String("tier", "", "Capability tier: low, mobile or desktop")
	flagFPS      = flag.Int("fps", 0, "Simulated frames per second")
	flagSeconds  = flag.Float64("seconds", 0, "Simulated session length in seconds")
	flagBearing  = flag.Float64("bearing", gomath.NaN(), "Target bearing in degrees")
	flagHeading  = flag.Float64("heading", gomath.NaN(), "Device heading in degrees")
	flagDistance = flag.Float64("distance", gomath.NaN(), "Distance to target in meters (negative = unknown)")
	flagExport   = flag.String("export", "", "Export the flower as OBJ into this directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTier != "" {
		cfg.Quality.Tier = *flagTier
	}
	if *flagFPS > 0 {
		cfg.Session.FPS = *flagFPS
	}
	if *flagSeconds > 0 {
		cfg.Session.Seconds = float32(*flagSeconds)
	}
	if !gomath.IsNaN(*flagBearing) {
		b := float32(*flagBearing)
		cfg.Session.Bearing = &b
	}
	if !gomath.IsNaN(*flagHeading) {
		h := float32(*flagHeading)
		cfg.Session.Heading = &h
	}
	if !gomath.IsNaN(*flagDistance) {
		cfg.Session.Distance = float32(*flagDistance)
	}
	if *flagExport != "" {
		cfg.Export.Dir = *flagExport
		cfg.Export.OBJ = true
	}
}
