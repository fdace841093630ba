package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"homewatch/internal/model"
)

func setupFeed(t *testing.T, maxEntries int) (*Feed, string) {
	t.Helper()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "activity_log.json")
	return NewFeed(path, maxEntries), path
}

func TestFeed_AppendAndRead(t *testing.T) {
	feed, _ := setupFeed(t, 50)

	err := feed.Append(model.ActivityEntry{
		Type:        model.ActivityImageCaptured,
		Description: "Image captured from raspberry_pi",
		Timestamp:   time.Now().Format(time.RFC3339),
		Image:       "capture_1.jpg",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := feed.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Type != model.ActivityImageCaptured {
		t.Errorf("Expected type %q, got %q", model.ActivityImageCaptured, entries[0].Type)
	}
	if entries[0].Image != "capture_1.jpg" {
		t.Errorf("Expected image capture_1.jpg, got %q", entries[0].Image)
	}
	if entries[0].TimeAgo == "" {
		t.Error("Expected derived time_ago on read")
	}
}

func TestFeed_NewestFirst(t *testing.T) {
	feed, _ := setupFeed(t, 50)

	for i := 0; i < 3; i++ {
		err := feed.Append(model.ActivityEntry{
			Type:        model.ActivitySnapshot,
			Description: fmt.Sprintf("entry %d", i),
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := feed.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"entry 2", "entry 1", "entry 0"} {
		if entries[i].Description != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, entries[i].Description)
		}
	}
}

func TestFeed_TruncatesToCap(t *testing.T) {
	const maxEntries = 5
	feed, _ := setupFeed(t, maxEntries)

	for i := 0; i < maxEntries+7; i++ {
		err := feed.Append(model.ActivityEntry{
			Type:        model.ActivitySnapshot,
			Description: fmt.Sprintf("entry %d", i),
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := feed.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(entries) != maxEntries {
		t.Fatalf("Expected feed capped at %d entries, got %d", maxEntries, len(entries))
	}

	// The most recent entries survive; the oldest are silently dropped.
	if entries[0].Description != "entry 11" {
		t.Errorf("Expected newest entry first, got %q", entries[0].Description)
	}
	if entries[maxEntries-1].Description != "entry 7" {
		t.Errorf("Expected oldest retained entry 7, got %q", entries[maxEntries-1].Description)
	}
}

func TestFeed_ReadIsIdempotent(t *testing.T) {
	feed, _ := setupFeed(t, 50)

	for i := 0; i < 4; i++ {
		if err := feed.Append(model.ActivityEntry{
			Type:        model.ActivityFaceDetected,
			Description: fmt.Sprintf("entry %d", i),
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	first, err := feed.Read()
	if err != nil {
		t.Fatalf("First read failed: %v", err)
	}
	second, err := feed.Read()
	if err != nil {
		t.Fatalf("Second read failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Read lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type ||
			first[i].Description != second[i].Description ||
			first[i].Timestamp != second[i].Timestamp {
			t.Errorf("Position %d differs between reads: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFeed_LoadsLegacyBareArray(t *testing.T) {
	feed, path := setupFeed(t, 50)

	legacy := []model.ActivityEntry{
		{Type: model.ActivitySnapshot, Description: "old entry", Timestamp: "2024-01-15T10:00:00Z"},
	}
	data, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("Failed to marshal legacy feed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write legacy feed: %v", err)
	}

	entries, err := feed.Read()
	if err != nil {
		t.Fatalf("Read failed on legacy format: %v", err)
	}
	if len(entries) != 1 || entries[0].Description != "old entry" {
		t.Fatalf("Expected legacy entry to survive, got %+v", entries)
	}

	// Appending rewrites the file in the wrapped shape.
	if err := feed.Append(model.ActivityEntry{Type: model.ActivitySnapshot, Description: "new entry"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read feed file: %v", err)
	}
	var wrapped struct {
		Activities []model.ActivityEntry `json:"activities"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		t.Fatalf("Feed file is not in wrapped shape: %v", err)
	}
	if len(wrapped.Activities) != 2 {
		t.Errorf("Expected 2 entries after append, got %d", len(wrapped.Activities))
	}
}

func TestFeed_EmptyObjectIsEmptyFeed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty object", `{}`},
		{"null activities", `{"activities":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, path := setupFeed(t, 50)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write feed file: %v", err)
			}

			entries, err := feed.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("Expected empty feed, got %d entries", len(entries))
			}

			if err := feed.Append(model.ActivityEntry{Type: model.ActivitySnapshot, Description: "first entry"}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			entries, err = feed.Read()
			if err != nil {
				t.Fatalf("Read after append failed: %v", err)
			}
			if len(entries) != 1 || entries[0].Description != "first entry" {
				t.Fatalf("Expected appended entry to survive, got %+v", entries)
			}
		})
	}
}

func TestFeed_MissingFileIsEmptyFeed(t *testing.T) {
	feed, _ := setupFeed(t, 50)

	entries, err := feed.Read()
	if err != nil {
		t.Fatalf("Read failed on missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty feed, got %d entries", len(entries))
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		timestamp string
		expected  string
	}{
		{now.Add(-10 * time.Second).Format(time.RFC3339), "just now"},
		{now.Add(-1 * time.Minute).Format(time.RFC3339), "1 minute ago"},
		{now.Add(-45 * time.Minute).Format(time.RFC3339), "45 minutes ago"},
		{now.Add(-1 * time.Hour).Format(time.RFC3339), "1 hour ago"},
		{now.Add(-5 * time.Hour).Format(time.RFC3339), "5 hours ago"},
		{now.Add(-24 * time.Hour).Format(time.RFC3339), "1 day ago"},
		{now.Add(-72 * time.Hour).Format(time.RFC3339), "3 days ago"},
		{"not-a-timestamp", "not-a-timestamp"},
	}

	for _, tt := range tests {
		result := timeAgo(tt.timestamp, now)
		if result != tt.expected {
			t.Errorf("timeAgo(%q) = %q, expected %q", tt.timestamp, result, tt.expected)
		}
	}
}
