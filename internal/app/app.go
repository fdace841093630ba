package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"homewatch/internal/activity"
	"homewatch/internal/config"
	"homewatch/internal/logger"
	"homewatch/internal/repository/sqlite"
	"homewatch/internal/routes"
	"homewatch/internal/services/websocket"
)

// App wires the ingest service together: event log, activity feed,
// viewer hub and HTTP routes.
type App struct {
	config *config.Config
	logger *logger.Logger
	db     *sqlite.DB
	events *sqlite.EventRepository
	feed   *activity.Feed
	hub    *websocket.HubService
}

// NewApp builds the application from configuration.
func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)
	log.SetDebug(cfg.DebugMode)

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}

	return &App{
		config: cfg,
		logger: log,
		db:     db,
		events: sqlite.NewEventRepository(db),
		feed:   activity.NewFeed(cfg.ActivityLogPath, cfg.ActivityMaxEntries),
		hub:    websocket.NewHubService(log),
	}, nil
}

// Run starts background services and serves HTTP until the process exits.
func (a *App) Run() error {
	go a.hub.Run()

	router := routes.SetupRoutes(a.events, a.feed, a.hub, a.config, a.logger)

	fmt.Printf("🚀 Homewatch Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📁 Images: %s\n", a.config.ImageDirectory)
	fmt.Printf("🗄  Event log: %s\n", a.config.DatabasePath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close releases the event log handle.
func (a *App) Close() error {
	return a.db.Close()
}
