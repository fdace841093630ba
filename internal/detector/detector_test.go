package detector

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"homewatch/internal/logger"
)

// cascadeCandidates are the usual install locations for the OpenCV
// frontal-face model. Detection tests skip when none is present.
var cascadeCandidates = []string{
	os.Getenv("CASCADE_PATH"),
	"/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
	"/usr/local/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
	"/usr/share/opencv/haarcascades/haarcascade_frontalface_default.xml",
}

func findCascade(t *testing.T) string {
	t.Helper()
	for _, path := range cascadeCandidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("frontal-face cascade model not installed")
	return ""
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(filepath.Join(t.TempDir(), "logs"))
}

// writeBlankImage writes a solid-color 640x480 JPEG, guaranteed to
// contain zero faces.
func writeBlankImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	blue := color.RGBA{R: 0, G: 0, B: 128, A: 255}
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, blue)
		}
	}

	path := filepath.Join(t.TempDir(), "blank.jpg")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, nil); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

func TestCount_BlankImageHasNoFaces(t *testing.T) {
	cascade := findCascade(t)

	service := NewService(cascade, DefaultScaleFactor, DefaultMinNeighbors, DefaultMinFaceSize, newTestLogger(t))
	defer service.Close()

	imagePath := writeBlankImage(t)
	if count := service.Count(imagePath); count != 0 {
		t.Errorf("Expected 0 faces in blank image, got %d", count)
	}
}

func TestCount_MissingCascadeReturnsZero(t *testing.T) {
	service := NewService(filepath.Join(t.TempDir(), "no_such_model.xml"),
		DefaultScaleFactor, DefaultMinNeighbors, DefaultMinFaceSize, newTestLogger(t))
	defer service.Close()

	imagePath := writeBlankImage(t)
	if count := service.Count(imagePath); count != 0 {
		t.Errorf("Expected 0 faces with missing model, got %d", count)
	}

	// Repeated calls stay degraded, never panic.
	if count := service.Count(imagePath); count != 0 {
		t.Errorf("Expected 0 faces on second call, got %d", count)
	}
}

func TestCount_UnreadableImageReturnsZero(t *testing.T) {
	cascade := findCascade(t)

	service := NewService(cascade, DefaultScaleFactor, DefaultMinNeighbors, DefaultMinFaceSize, newTestLogger(t))
	defer service.Close()

	// A long-running agent hits this branch on every bad frame; it must
	// release its image handle each time.
	missing := filepath.Join(t.TempDir(), "missing.jpg")
	for i := 0; i < 50; i++ {
		if count := service.Count(missing); count != 0 {
			t.Fatalf("Expected 0 faces for unreadable image, got %d", count)
		}
	}
}

func TestHasFaces_BlankImage(t *testing.T) {
	cascade := findCascade(t)

	service := NewService(cascade, DefaultScaleFactor, DefaultMinNeighbors, DefaultMinFaceSize, newTestLogger(t))
	defer service.Close()

	if service.HasFaces(writeBlankImage(t)) {
		t.Error("Expected no faces in blank image")
	}
}

func TestNewService_ParameterDefaults(t *testing.T) {
	tests := []struct {
		name         string
		scaleFactor  float64
		minNeighbors int
		minFaceSize  int
	}{
		{"zero values", 0, 0, 0},
		{"negative values", -1, -5, -30},
		{"scale at one", 1.0, 5, 30},
	}

	for _, tt := range tests {
		service := NewService("model.xml", tt.scaleFactor, tt.minNeighbors, tt.minFaceSize, newTestLogger(t))
		if service.scaleFactor <= 1.0 {
			t.Errorf("%s: scale factor not defaulted, got %f", tt.name, service.scaleFactor)
		}
		if service.minNeighbors <= 0 {
			t.Errorf("%s: min neighbors not defaulted, got %d", tt.name, service.minNeighbors)
		}
		if service.minFaceSize <= 0 {
			t.Errorf("%s: min face size not defaulted, got %d", tt.name, service.minFaceSize)
		}
	}
}
