package model

// CaptureEvent represents one ingested capture.
//
// Timestamp is the producer-supplied ISO-8601 string, not server time,
// and ImagePath is relative to the configured images root. The row can
// outlive the file on disk and vice versa; nothing enforces the link.
type CaptureEvent struct {
	ID            int64  `json:"id"`
	Timestamp     string `json:"timestamp"`
	ImagePath     string `json:"image_path"`
	FacesDetected bool   `json:"faces_detected"`
	FaceCount     int    `json:"face_count"`
	Source        string `json:"source"`
}

// EventStats summarizes the event log.
type EventStats struct {
	TotalEvents     int `json:"total_events"`
	EventsWithFaces int `json:"events_with_faces"`
	TotalFaceCount  int `json:"total_face_count"`
}
