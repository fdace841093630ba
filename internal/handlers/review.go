package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"homewatch/internal/activity"
	"homewatch/internal/logger"
	"homewatch/internal/model"
	"homewatch/internal/repository"
)

// ReviewFaceHandler records an operator's approve/deny decision for a
// captured face event. The decision is appended to the activity feed;
// the event row itself is never modified.
func ReviewFaceHandler(events repository.EventRepository, feed *activity.Feed, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		eventID, err := strconv.ParseInt(r.FormValue("event_id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "invalid event_id",
			})
			return
		}

		decision := r.FormValue("decision")
		if decision != model.ActivityApprove && decision != model.ActivityDeny {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "decision must be approve or deny",
			})
			return
		}

		event, err := events.GetByID(eventID)
		if err != nil {
			logger.Error("Failed to look up event %d: %v", eventID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"error":   "failed to look up event",
			})
			return
		}
		if event == nil {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success": false,
				"error":   "event not found",
			})
			return
		}

		verb := "approved"
		if decision == model.ActivityDeny {
			verb = "denied"
		}

		entry := model.ActivityEntry{
			Type:        decision,
			Description: fmt.Sprintf("Face %s for capture %d", verb, event.ID),
			Timestamp:   time.Now().Format(time.RFC3339),
			Image:       event.ImagePath,
		}
		if err := feed.Append(entry); err != nil {
			logger.Error("Failed to append review entry: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"error":   "failed to record decision",
			})
			return
		}

		logger.Info("Face %s: event %d (%s)", verb, event.ID, event.ImagePath)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}
