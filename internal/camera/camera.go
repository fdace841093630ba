package camera

import (
	"homewatch/internal/config"
	"homewatch/internal/logger"
)

// Source abstracts a still-image capture device. Start acquires the
// device, Capture writes one frame to the destination path, Stop
// releases the device. On capture failure the file is absent; callers
// should still check existence and non-zero size before use.
type Source interface {
	Start() error
	Capture(destPath string) error
	Stop() error
}

// Open selects the frame source once at startup. Demo mode or a device
// that cannot be opened degrades to the placeholder source; device
// unavailability is never fatal.
func Open(cfg *config.Config, logger *logger.Logger) Source {
	if cfg.DemoMode {
		logger.Info("🎭 Demo mode enabled, using placeholder frame source")
		return NewPlaceholder()
	}

	device, err := NewDevice(cfg.CameraDeviceID)
	if err != nil {
		logger.Warning("Camera initialization failed: %v", err)
		logger.Info("🎭 Falling back to placeholder frame source")
		return NewPlaceholder()
	}

	logger.Info("📷 Camera device %d ready", cfg.CameraDeviceID)
	return device
}
