package handlers

import (
	"html/template"
	"net/http"

	"homewatch/internal/logger"
	"homewatch/internal/model"
	"homewatch/internal/repository"
)

const defaultEventLimit = 24

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Homewatch Dashboard</title>
	<link rel="stylesheet" href="/static/css/dashboard.css">
</head>
<body>
	<h1>Homewatch</h1>
	<div class="stats">
		<span>Total events: {{.Stats.TotalEvents}}</span>
		<span>Events with faces: {{.Stats.EventsWithFaces}}</span>
		<span>Faces counted: {{.Stats.TotalFaceCount}}</span>
	</div>
	<h2>Recent face events</h2>
	<table>
		<tr><th>Time</th><th>Source</th><th>Faces</th><th>Image</th></tr>
		{{range .Events}}
		<tr>
			<td>{{.Timestamp}}</td>
			<td>{{.Source}}</td>
			<td>{{.FaceCount}}</td>
			<td><a href="/api/pictures/view?image={{.ImagePath}}">{{.ImagePath}}</a></td>
		</tr>
		{{else}}
		<tr><td colspan="4">No face events recorded yet</td></tr>
		{{end}}
	</table>
</body>
</html>
`))

type dashboardData struct {
	Events []model.CaptureEvent
	Stats  *model.EventStats
}

// DashboardHandler renders the review page: recent face events with
// counts plus summary statistics.
func DashboardHandler(events repository.EventRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faceEvents, err := events.RecentWithFaces(defaultEventLimit)
		if err != nil {
			logger.Error("Failed to query face events: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		stats, err := events.Stats()
		if err != nil {
			logger.Error("Failed to query event stats: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTemplate.Execute(w, dashboardData{Events: faceEvents, Stats: stats}); err != nil {
			logger.Error("Failed to render dashboard: %v", err)
		}
	}
}

// GetEventsHandler returns recent events as JSON. The faces=true query
// narrows the list to events where faces were detected.
func GetEventsHandler(events repository.EventRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit := atoiDefault(q.Get("limit"), defaultEventLimit)

		var (
			list []model.CaptureEvent
			err  error
		)
		if q.Get("faces") == "true" {
			list, err = events.RecentWithFaces(limit)
		} else {
			list, err = events.Recent(limit)
		}
		if err != nil {
			logger.Error("Failed to query events: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if list == nil {
			list = []model.CaptureEvent{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"events": list,
		})
	}
}

// GetStatsHandler returns aggregate event log statistics.
func GetStatsHandler(events repository.EventRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := events.Stats()
		if err != nil {
			logger.Error("Failed to get stats: %v", err)
			http.Error(w, "Failed to retrieve stats", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
