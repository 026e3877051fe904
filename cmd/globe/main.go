package main

import (
	"Globe3D/internal/config"
	"Globe3D/internal/engine"
	"Globe3D/internal/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"
)

// GLFW must run on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	path := "globe.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("Globe3D starting",
		zap.String("config", path),
		zap.String("assets", cfg.Assets.Root),
		zap.Int("stars", cfg.Stars.Count))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.New(cfg).Run(ctx); err != nil {
		logger.Log.Error("Viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
