package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"homewatch/internal/activity"
	"homewatch/internal/config"
	"homewatch/internal/handlers"
	"homewatch/internal/logger"
	"homewatch/internal/middleware"
	"homewatch/internal/repository"
	"homewatch/internal/services/websocket"
)

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers HTTP routes, static file serving, API endpoints,
// and wraps the mux with the authentication middleware.
func SetupRoutes(events repository.EventRepository, feed *activity.Feed, hub *websocket.HubService, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Capture ingest
	mux.HandleFunc("/pi_capture", handlers.PiCaptureHandler(events, feed, hub, cfg, logger))

	// Dashboard surface
	mux.HandleFunc("/dashboard", handlers.DashboardHandler(events, logger))
	mux.HandleFunc("/activity_log", handlers.ActivityLogHandler(feed, logger))
	mux.HandleFunc("/latest_frame", handlers.LatestFrameHandler(hub))

	// API endpoints
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(hub, logger))
	mux.HandleFunc("/api/events", handlers.GetEventsHandler(events, logger))
	mux.HandleFunc("/api/stats", handlers.GetStatsHandler(events, logger))
	mux.HandleFunc("/api/pictures/view", handlers.ViewPictureHandler(cfg))
	mux.HandleFunc("/api/faces/review", handlers.ReviewFaceHandler(events, feed, logger))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handlers.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handlers.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handlers.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handlers.ClearErrorLogsHandler(logger))

	// Auth endpoints
	mux.HandleFunc("/auth/login", handlers.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler)

	// Automatic HTML handler mapping for example: /settings -> /static/settings.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	// Apply middleware
	return middleware.AuthMiddleware(mux)
}
