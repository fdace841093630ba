package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"homewatch/internal/activity"
	"homewatch/internal/config"
	"homewatch/internal/logger"
	"homewatch/internal/model"
	"homewatch/internal/repository"
	"homewatch/internal/services/websocket"
)

// MaxUploadSize caps capture uploads at 16MB.
const MaxUploadSize = 16 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ingestError writes the failure payload for the ingest endpoint.
func ingestError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

// PiCaptureHandler accepts a multipart capture upload from the agent:
// file field "file" plus timestamp, source, faces_detected and
// face_count form fields. On success the image is stored under the
// images root, one event row is inserted and one activity entry is
// appended, in that order; a failure in a later step does not undo an
// earlier one.
func PiCaptureHandler(events repository.EventRepository, feed *activity.Feed, hub *websocket.HubService, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			ingestError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			ingestError(w, http.StatusBadRequest, "no image file provided")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			ingestError(w, http.StatusBadRequest, "failed to read image data")
			return
		}
		if len(data) == 0 {
			ingestError(w, http.StatusBadRequest, "empty image payload")
			return
		}

		// Companion fields are trusted as given, coercion only.
		timestamp := r.FormValue("timestamp")
		if timestamp == "" {
			timestamp = time.Now().Format(time.RFC3339)
		}
		source := r.FormValue("source")
		facesDetected := r.FormValue("faces_detected") == "true"
		faceCount, err := strconv.Atoi(r.FormValue("face_count"))
		if err != nil || faceCount < 0 {
			faceCount = 0
		}
		if !facesDetected {
			faceCount = 0
		}

		filename := fmt.Sprintf("capture_%s.jpg", time.Now().Format("20060102_150405.000000"))

		if err := os.MkdirAll(cfg.ImageDirectory, 0755); err != nil {
			logger.Error("Failed to create image directory: %v", err)
			ingestError(w, http.StatusInternalServerError, "failed to store image")
			return
		}
		if err := os.WriteFile(filepath.Join(cfg.ImageDirectory, filename), data, 0644); err != nil {
			logger.Error("Failed to write image %s: %v", filename, err)
			ingestError(w, http.StatusInternalServerError, "failed to store image")
			return
		}

		event := &model.CaptureEvent{
			Timestamp:     timestamp,
			ImagePath:     filename,
			FacesDetected: facesDetected,
			FaceCount:     faceCount,
			Source:        source,
		}
		eventID, err := events.Insert(event)
		if err != nil {
			logger.Error("Failed to insert capture event: %v", err)
			ingestError(w, http.StatusInternalServerError, "failed to record event")
			return
		}

		entry := model.ActivityEntry{
			Type:        model.ActivityImageCaptured,
			Description: fmt.Sprintf("Image captured from %s", source),
			Timestamp:   timestamp,
			Image:       filename,
		}
		if facesDetected {
			entry.Type = model.ActivityFaceDetected
			entry.Description = fmt.Sprintf("Detected %d face(s) from %s", faceCount, source)
		}
		if err := feed.Append(entry); err != nil {
			logger.Error("Failed to append activity entry: %v", err)
			ingestError(w, http.StatusInternalServerError, "failed to record activity")
			return
		}

		// Live view: retain the frame and push it to connected viewers.
		hub.SetLatestFrame(data)
		msg, _ := json.Marshal(map[string]string{
			"source": source,
			"image":  base64.StdEncoding.EncodeToString(data),
		})
		hub.Broadcast(msg)

		if facesDetected {
			logger.Info("✅ Face capture ingested: event %d, %d face(s)", eventID, faceCount)
		} else {
			logger.Debug("Capture ingested: event %d", eventID)
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": filename,
		})
	}
}
