package repository

import (
	"homewatch/internal/model"
)

// EventRepository defines the interface for capture event operations.
// The event log is append-only; rows are never updated by the pipeline.
type EventRepository interface {
	Insert(event *model.CaptureEvent) (int64, error)

	Recent(limit int) ([]model.CaptureEvent, error)
	RecentWithFaces(limit int) ([]model.CaptureEvent, error)
	GetByID(id int64) (*model.CaptureEvent, error)
	Stats() (*model.EventStats, error)
}
