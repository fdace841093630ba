package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"homewatch/internal/model"
)

// Feed is the bounded, file-backed activity log read by the dashboard.
// Entries are kept newest first; appending past the cap silently drops
// the oldest entries. The in-process mutex serializes writers within one
// process; concurrent writers from separate processes can still lose
// updates (read-modify-write on a plain file).
type Feed struct {
	path       string
	maxEntries int
	mu         sync.Mutex
}

// feedFile is the on-disk wrapper shape written by current versions.
type feedFile struct {
	Activities []model.ActivityEntry `json:"activities"`
}

// NewFeed creates a Feed backed by the given file path.
func NewFeed(path string, maxEntries int) *Feed {
	return &Feed{
		path:       path,
		maxEntries: maxEntries,
	}
}

// Append inserts an entry at the head of the feed and truncates to the cap.
func (f *Feed) Append(entry model.ActivityEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339)
	}
	entry.TimeAgo = "" // derived on read only

	entries, err := f.load()
	if err != nil {
		return err
	}

	entries = append([]model.ActivityEntry{entry}, entries...)
	if len(entries) > f.maxEntries {
		entries = entries[:f.maxEntries]
	}

	return f.save(entries)
}

// Read returns all entries newest first, with time_ago derived from the
// stored absolute timestamp at read time.
func (f *Feed) Read() ([]model.ActivityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range entries {
		entries[i].TimeAgo = timeAgo(entries[i].Timestamp, now)
	}
	return entries, nil
}

// load reads the backing file, accepting both the current wrapped shape
// and the legacy bare-array shape. A missing file is an empty feed.
func (f *Feed) load() ([]model.ActivityEntry, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []model.ActivityEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read activity log: %w", err)
	}

	if len(data) == 0 {
		return []model.ActivityEntry{}, nil
	}

	var wrapped feedFile
	if err := json.Unmarshal(data, &wrapped); err == nil {
		// An object with a missing or null activities field is an
		// empty feed, not a parse failure.
		if wrapped.Activities == nil {
			return []model.ActivityEntry{}, nil
		}
		return wrapped.Activities, nil
	}

	// Legacy format: a bare JSON array
	var entries []model.ActivityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse activity log: %w", err)
	}
	return entries, nil
}

// save rewrites the backing file in the wrapped shape.
func (f *Feed) save(entries []model.ActivityEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create activity log directory: %w", err)
	}

	data, err := json.MarshalIndent(feedFile{Activities: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode activity log: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}

// timeAgo renders a human-readable relative time for a stored timestamp.
// An unparsable timestamp is shown as-is rather than dropped.
func timeAgo(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
