// Package main is the entry point for the profile cube viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kxrai/alicia-3d-website/internal/config"
	"github.com/kxrai/alicia-3d-website/internal/engine/window"
	"github.com/kxrai/alicia-3d-website/internal/game"
	"github.com/kxrai/alicia-3d-website/internal/logger"
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

	logger.Info("=== Profile Cube ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	pageBackground, err := config.ParseColor(cfg.Presentation.PageBackground)
	if err != nil {
		return err
	}

	// Create window (this also creates the OpenGL context)
	win, err := window.New(window.Config{
		Title:          cfg.Window.Title,
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		Fullscreen:     cfg.Window.Fullscreen,
		VSync:          cfg.Window.VSync,
		PageBackground: pageBackground,
		ScreenshotDir:  cfg.Debug.ScreenshotDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	synth, err := game.NewFaceSynthesizer(cfg, goregular.TTF)
	if err != nil {
		return err
	}
	defer synth.Close()

	g, err := game.New(cfg, win, synth)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run blocks until the window closes or the context ends; the session is
	// torn down before the window.
	return g.Run(ctx)
}
