package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all deploy-time settings for the server and the capture
// agent. Values come from the environment with compiled-in defaults;
// nothing is renegotiated at runtime.
type Config struct {
	// Server
	Port               int
	Password           string
	ImageDirectory     string
	DatabasePath       string
	ActivityLogPath    string
	ActivityMaxEntries int
	LogDirectory       string
	DebugMode          bool

	// Agent
	CaptureDirectory string
	CaptureInterval  time.Duration
	BackendURL       string
	BackendTimeout   time.Duration
	SourceName       string
	LatestFramePath  string

	// Face detection
	EnableFaceDetection bool
	CascadePath         string
	ScaleFactor         float64
	MinNeighbors        int
	MinFaceSize         int

	// Camera
	CameraDeviceID int
	DemoMode       bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:               getEnvAsInt("PORT", 8080),
		Password:           getEnv("PASSWORD", "homewatch"),
		ImageDirectory:     getEnv("IMAGE_DIR", filepath.Join(".", "static", "images")),
		DatabasePath:       getEnv("DB_PATH", filepath.Join(".", "data", "events.db")),
		ActivityLogPath:    getEnv("ACTIVITY_LOG_PATH", filepath.Join(".", "data", "activity_log.json")),
		ActivityMaxEntries: getEnvAsInt("ACTIVITY_MAX_ENTRIES", 100),
		LogDirectory:       getEnv("LOG_DIR", filepath.Join(".", "logs")),
		DebugMode:          getEnvAsBool("DEBUG_MODE", false),

		CaptureDirectory: getEnv("CAPTURE_DIR", filepath.Join(".", "captures")),
		CaptureInterval:  getEnvAsDuration("CAPTURE_INTERVAL", 30*time.Second),
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:8080"),
		BackendTimeout:   getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		SourceName:       getEnv("SOURCE_NAME", "raspberry_pi"),
		LatestFramePath:  getEnv("LATEST_FRAME_PATH", filepath.Join(".", "captures", "latest_frame.jpg")),

		EnableFaceDetection: getEnvAsBool("ENABLE_FACE_DETECTION", true),
		CascadePath:         getEnv("CASCADE_PATH", filepath.Join(".", "models", "haarcascade_frontalface_default.xml")),
		ScaleFactor:         getEnvAsFloat("SCALE_FACTOR", 1.1),
		MinNeighbors:        getEnvAsInt("MIN_NEIGHBORS", 5),
		MinFaceSize:         getEnvAsInt("MIN_FACE_SIZE", 30),

		CameraDeviceID: getEnvAsInt("CAMERA_DEVICE_ID", 0),
		DemoMode:       getEnvAsBool("DEMO_MODE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration reads a duration ("30s", "2m") or, for compatibility
// with older deployments, a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
