package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"homewatch/internal/camera"
	"homewatch/internal/logger"
)

// FaceCounter counts face regions in a stored image. A zero count is the
// only failure signal; implementations never error.
type FaceCounter interface {
	Count(imagePath string) int
}

// Sender forwards one captured frame to the ingest endpoint.
type Sender interface {
	SendCapture(imagePath string, facesDetected bool, faceCount int) error
}

// Runner is the sequential capture loop: one frame per cycle, one send
// per non-empty frame, fixed sleep between cycles. There is no internal
// concurrency and no retry on a failed send.
type Runner struct {
	source          camera.Source
	counter         FaceCounter
	sender          Sender
	captureDir      string
	latestFramePath string
	interval        time.Duration
	detectEnabled   bool
	logger          *logger.Logger

	captureCount int
}

// NewRunner creates a capture loop.
func NewRunner(source camera.Source, counter FaceCounter, sender Sender, captureDir, latestFramePath string, interval time.Duration, detectEnabled bool, logger *logger.Logger) *Runner {
	return &Runner{
		source:          source,
		counter:         counter,
		sender:          sender,
		captureDir:      captureDir,
		latestFramePath: latestFramePath,
		interval:        interval,
		detectEnabled:   detectEnabled,
		logger:          logger,
	}
}

// Run starts the capture loop and blocks until the context is canceled.
// The frame source is released on the sole exit path.
func (r *Runner) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.captureDir, 0755); err != nil {
		return fmt.Errorf("failed to create capture directory: %w", err)
	}

	if err := r.source.Start(); err != nil {
		return fmt.Errorf("failed to start frame source: %w", err)
	}
	defer func() {
		if err := r.source.Stop(); err != nil {
			r.logger.Error("Error stopping frame source: %v", err)
		}
	}()

	r.logger.Info("Capture loop started (interval %s, face detection %v)", r.interval, r.detectEnabled)

	for {
		r.cycle()

		select {
		case <-ctx.Done():
			r.logger.Info("Capture loop stopping")
			return nil
		case <-time.After(r.interval):
		}
	}
}

// cycle performs one capture/detect/send pass. Every failure is logged
// and skipped; the loop never dies from a bad cycle.
func (r *Runner) cycle() {
	imagePath := r.captureFrame()
	if imagePath == "" {
		return
	}

	faceCount := 0
	if r.detectEnabled {
		faceCount = r.counter.Count(imagePath)
	}

	if err := r.sender.SendCapture(imagePath, faceCount > 0, faceCount); err != nil {
		// The event is lost; the next cycle proceeds unaffected.
		r.logger.Error("Failed to send capture: %v", err)
		return
	}

	r.captureCount++
	if r.captureCount%5 == 0 {
		r.logger.Info("📊 Captures completed: %d", r.captureCount)
	}
}

// captureFrame grabs one frame into a timestamp-named file and returns
// its path, or "" when the cycle should be skipped.
func (r *Runner) captureFrame() string {
	filename := fmt.Sprintf("capture_%s.jpg", time.Now().Format("20060102_150405.000000"))
	imagePath := filepath.Join(r.captureDir, filename)

	if err := r.source.Capture(imagePath); err != nil {
		r.logger.Error("Failed to capture frame: %v", err)
		return ""
	}

	// The source makes no partial-file promise; check before use.
	info, err := os.Stat(imagePath)
	if err != nil || info.Size() == 0 {
		r.logger.Warning("Skipping empty capture: %s", imagePath)
		return ""
	}

	if r.latestFramePath != "" {
		if err := copyFile(imagePath, r.latestFramePath); err != nil {
			r.logger.Warning("Could not update latest frame: %v", err)
		}
	}

	r.logger.Debug("Image captured: %s", imagePath)
	return imagePath
}

// copyFile copies src over dst, creating the destination directory.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
