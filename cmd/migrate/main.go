package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"homewatch/internal/model"
	"homewatch/internal/repository/sqlite"
)

// parseCaptureFilename extracts the capture time from a stored frame
// name in the pattern capture_20060102_150405.000000.jpg.
func parseCaptureFilename(filename string) (time.Time, error) {
	name := strings.TrimSuffix(filename, ".jpg")
	name = strings.TrimPrefix(name, "capture_")

	t, err := time.Parse("20060102_150405.000000", name)
	if err != nil {
		// Older agents wrote second-resolution names.
		t, err = time.Parse("20060102_150405", name)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid capture filename: %s", filename)
	}
	return t, nil
}

// The migrate tool backfills event rows for frame files that exist on
// disk without a matching row. Backfilled rows carry no face data.
func main() {
	imagesDir := flag.String("images", "static/images", "Directory containing stored frames")
	dbPath := flag.String("db", "data/events.db", "Event log path")
	source := flag.String("source", "backfill", "Source tag for backfilled rows")
	flag.Parse()

	fmt.Printf("Backfilling events from %s into %s\n", *imagesDir, *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open event log: %v", err)
	}
	defer db.Close()

	events := sqlite.NewEventRepository(db)

	known := make(map[string]bool)
	existing, err := events.Recent(1 << 20)
	if err != nil {
		log.Fatalf("Failed to read existing events: %v", err)
	}
	for _, event := range existing {
		known[event.ImagePath] = true
	}

	files, err := os.ReadDir(*imagesDir)
	if err != nil {
		log.Fatalf("Failed to read images directory: %v", err)
	}

	inserted, skipped := 0, 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".jpg" {
			continue
		}
		if known[file.Name()] {
			continue
		}

		captured, err := parseCaptureFilename(file.Name())
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", file.Name(), err)
			skipped++
			continue
		}

		_, err = events.Insert(&model.CaptureEvent{
			Timestamp: captured.Format(time.RFC3339),
			ImagePath: file.Name(),
			Source:    *source,
		})
		if err != nil {
			log.Printf("⚠️  Failed to insert row for %s: %v", file.Name(), err)
			skipped++
			continue
		}
		inserted++
	}

	fmt.Printf("✅ Backfilled %d events\n", inserted)
	if skipped > 0 {
		fmt.Printf("⚠️  Skipped %d files\n", skipped)
	}

	if stats, err := events.Stats(); err == nil {
		fmt.Printf("\n📊 Event log statistics:\n")
		fmt.Printf("   Total events: %d\n", stats.TotalEvents)
		fmt.Printf("   Events with faces: %d\n", stats.EventsWithFaces)
		fmt.Printf("   Faces counted: %d\n", stats.TotalFaceCount)
	}
}
