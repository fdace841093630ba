package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.CaptureInterval != 30*time.Second {
		t.Errorf("Expected default capture interval 30s, got %s", cfg.CaptureInterval)
	}
	if cfg.ActivityMaxEntries != 100 {
		t.Errorf("Expected default activity cap 100, got %d", cfg.ActivityMaxEntries)
	}
	if cfg.ScaleFactor != 1.1 {
		t.Errorf("Expected default scale factor 1.1, got %f", cfg.ScaleFactor)
	}
	if cfg.MinNeighbors != 5 {
		t.Errorf("Expected default min neighbors 5, got %d", cfg.MinNeighbors)
	}
	if cfg.MinFaceSize != 30 {
		t.Errorf("Expected default min face size 30, got %d", cfg.MinFaceSize)
	}
	if !cfg.EnableFaceDetection {
		t.Error("Expected face detection enabled by default")
	}
	if cfg.DemoMode {
		t.Error("Expected demo mode disabled by default")
	}
	if cfg.DebugMode {
		t.Error("Expected debug mode disabled by default")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SOURCE_NAME", "front_door")
	t.Setenv("ENABLE_FACE_DETECTION", "false")
	t.Setenv("SCALE_FACTOR", "1.3")
	t.Setenv("DEBUG_MODE", "true")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.SourceName != "front_door" {
		t.Errorf("Expected source front_door, got %q", cfg.SourceName)
	}
	if cfg.EnableFaceDetection {
		t.Error("Expected face detection disabled")
	}
	if cfg.ScaleFactor != 1.3 {
		t.Errorf("Expected scale factor 1.3, got %f", cfg.ScaleFactor)
	}
	if !cfg.DebugMode {
		t.Error("Expected debug mode enabled")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Duration
	}{
		{"45s", 45 * time.Second},
		{"2m", 2 * time.Minute},
		{"60", 60 * time.Second}, // bare seconds, legacy deployments
		{"garbage", 30 * time.Second},
		{"", 30 * time.Second},
	}

	for _, tt := range tests {
		if tt.value != "" {
			t.Setenv("CAPTURE_INTERVAL", tt.value)
		}
		result := getEnvAsDuration("CAPTURE_INTERVAL", 30*time.Second)
		if result != tt.expected {
			t.Errorf("getEnvAsDuration(%q) = %s, expected %s", tt.value, result, tt.expected)
		}
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("MIN_NEIGHBORS", "3.5")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected fallback port 8080, got %d", cfg.Port)
	}
	if cfg.MinNeighbors != 5 {
		t.Errorf("Expected fallback min neighbors 5, got %d", cfg.MinNeighbors)
	}
}
