package sqlite

import (
	"database/sql"
	"fmt"

	"homewatch/internal/model"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert adds a new capture event to the log.
func (r *EventRepository) Insert(event *model.CaptureEvent) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO capture_events (timestamp, image_path, faces_detected, face_count, source)
		VALUES (?, ?, ?, ?, ?)
	`, event.Timestamp, event.ImagePath, event.FacesDetected, event.FaceCount, event.Source)
	if err != nil {
		return 0, fmt.Errorf("failed to insert capture event: %w", err)
	}

	return result.LastInsertId()
}

// Recent retrieves the most recent events, newest first.
func (r *EventRepository) Recent(limit int) ([]model.CaptureEvent, error) {
	return r.query(`
		SELECT id, timestamp, image_path, faces_detected, face_count, source
		FROM capture_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// RecentWithFaces retrieves the most recent events where faces were detected.
func (r *EventRepository) RecentWithFaces(limit int) ([]model.CaptureEvent, error) {
	return r.query(`
		SELECT id, timestamp, image_path, faces_detected, face_count, source
		FROM capture_events
		WHERE faces_detected = 1
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

// GetByID retrieves a single event by its ID.
func (r *EventRepository) GetByID(id int64) (*model.CaptureEvent, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var event model.CaptureEvent
	err := r.db.Conn().QueryRow(`
		SELECT id, timestamp, image_path, faces_detected, face_count, source
		FROM capture_events WHERE id = ?
	`, id).Scan(&event.ID, &event.Timestamp, &event.ImagePath, &event.FacesDetected, &event.FaceCount, &event.Source)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get capture event: %w", err)
	}
	return &event, nil
}

// Stats returns aggregate counts over the event log.
func (r *EventRepository) Stats() (*model.EventStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var stats model.EventStats
	err := r.db.Conn().QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(faces_detected), 0),
		       COALESCE(SUM(face_count), 0)
		FROM capture_events
	`).Scan(&stats.TotalEvents, &stats.EventsWithFaces, &stats.TotalFaceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query event stats: %w", err)
	}

	return &stats, nil
}

// query runs a SELECT over capture_events under the read lock.
func (r *EventRepository) query(q string, args ...interface{}) ([]model.CaptureEvent, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query capture events: %w", err)
	}
	defer rows.Close()

	var events []model.CaptureEvent
	for rows.Next() {
		var event model.CaptureEvent
		err := rows.Scan(&event.ID, &event.Timestamp, &event.ImagePath, &event.FacesDetected, &event.FaceCount, &event.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capture event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
