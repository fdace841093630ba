package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"homewatch/internal/agent"
	"homewatch/internal/camera"
	"homewatch/internal/config"
	"homewatch/internal/detector"
	"homewatch/internal/logger"
)

func main() {
	cfg := config.Load()
	appLogger := logger.New(cfg.LogDirectory)
	appLogger.SetDebug(cfg.DebugMode)

	appLogger.Info("==================================================")
	appLogger.Info("Starting capture agent...")
	appLogger.Info("Face detection: %v", cfg.EnableFaceDetection)
	appLogger.Info("Capture interval: %s", cfg.CaptureInterval)
	appLogger.Info("Backend: %s", cfg.BackendURL)
	appLogger.Info("==================================================")

	source := camera.Open(cfg, appLogger)

	faces := detector.NewService(cfg.CascadePath, cfg.ScaleFactor, cfg.MinNeighbors, cfg.MinFaceSize, appLogger)
	defer faces.Close()

	client := agent.NewClient(cfg.BackendURL, cfg.SourceName, cfg.BackendTimeout)

	runner := agent.NewRunner(source, faces, client,
		cfg.CaptureDirectory, cfg.LatestFramePath,
		cfg.CaptureInterval, cfg.EnableFaceDetection, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("Capture agent failed: %v", err)
	}

	appLogger.Info("Capture agent stopped")
}
