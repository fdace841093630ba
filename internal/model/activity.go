package model

// Activity entry types. The set is open; these are the tags the system
// itself writes or knows how to display.
const (
	ActivitySnapshot       = "snapshot"
	ActivityFaceDetected   = "face_detected"
	ActivityImageCaptured  = "image_captured"
	ActivityRecordingStart = "recording_start"
	ActivityApprove        = "approve"
	ActivityDeny           = "deny"
)

// ActivityEntry is one item in the bounded activity feed.
type ActivityEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	TimeAgo     string `json:"time_ago,omitempty"` // derived on read, never stored
	Image       string `json:"image,omitempty"`
}
