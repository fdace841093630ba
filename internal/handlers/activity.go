package handlers

import (
	"net/http"

	"homewatch/internal/activity"
	"homewatch/internal/logger"
	"homewatch/internal/model"
)

// ActivityLogHandler returns the full activity feed, newest first, with
// derived time_ago strings.
func ActivityLogHandler(feed *activity.Feed, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := feed.Read()
		if err != nil {
			logger.Error("Failed to read activity log: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if entries == nil {
			entries = []model.ActivityEntry{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"activities": entries,
		})
	}
}
