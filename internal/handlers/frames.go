package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"homewatch/internal/config"
	"homewatch/internal/services/websocket"
)

// LatestFrameHandler serves the most recent ingested frame as JPEG.
func LatestFrameHandler(hub *websocket.HubService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		frame := hub.LatestFrame()
		if frame == nil {
			http.Error(w, "No frame received yet", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(frame)
	}
}

// ViewPictureHandler serves a single stored image specified via the
// "image" query parameter. The name is flattened to its base to keep
// reads inside the images root.
func ViewPictureHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image := r.URL.Query().Get("image")
		if image == "" {
			http.Error(w, "Image parameter is required", http.StatusBadRequest)
			return
		}
		filePath := filepath.Join(cfg.ImageDirectory, filepath.Base(image))
		http.ServeFile(w, r, filePath)
	}
}

// atoiDefault converts string to int or returns a default when conversion fails or value <= 0.
func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
