// Package main is the entry point for the flora headless driver.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/config"
	"github.com/Faultbox/flora/internal/debug"
	"github.com/Faultbox/flora/internal/logger"
	"github.com/Faultbox/flora/internal/session"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Flora ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := session.New(cfg)
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		os.Exit(1)
	}
	defer s.Close()

	if err := debug.WriteStats(os.Stdout, s.Stats()); err != nil {
		logger.Error("failed to write stats", zap.Error(err))
	}

	sum, err := s.Run()
	if err != nil {
		logger.Error("session error", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("frames=%d yaw=%.4f pulse=%s scale=%.4f\n", sum.Frames, sum.Yaw, sum.Pulse, sum.PulseScale)
	if sum.Export != "" {
		fmt.Printf("exported %s\n", sum.Export)
	}
}
