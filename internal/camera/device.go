package camera

import (
	"fmt"
	"os"
	"time"

	"gocv.io/x/gocv"
)

// Frame geometry matches the capture agent's configured still size.
const (
	frameWidth  = 640
	frameHeight = 480

	// captureWait bounds how long a Capture call waits for the device
	// slot; a stuck device call fails the cycle instead of stalling
	// every later one.
	captureWait = 2 * time.Second
)

// Device is a hardware-backed frame source over a V4L/UVC capture
// device. Only one capture may be in flight at a time; the slot channel
// acts as a one-permit semaphore with a bounded wait.
type Device struct {
	deviceID int
	capture  *gocv.VideoCapture
	slot     chan struct{}
}

// NewDevice opens the capture device and configures the frame size.
func NewDevice(deviceID int) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture device %d: %w", deviceID, err)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, frameWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, frameHeight)

	d := &Device{
		deviceID: deviceID,
		capture:  capture,
		slot:     make(chan struct{}, 1),
	}
	d.slot <- struct{}{}
	return d, nil
}

// Start is a no-op for an already-opened device; repeated calls are safe.
func (d *Device) Start() error {
	if d.capture == nil {
		return fmt.Errorf("capture device %d is closed", d.deviceID)
	}
	return nil
}

// Capture grabs one frame and writes it as JPEG to destPath. On any
// failure the destination file is removed so it is either fully written
// or absent.
func (d *Device) Capture(destPath string) error {
	select {
	case <-d.slot:
		defer func() { d.slot <- struct{}{} }()
	case <-time.After(captureWait):
		return fmt.Errorf("capture device %d busy", d.deviceID)
	}

	if d.capture == nil {
		return fmt.Errorf("capture device %d is closed", d.deviceID)
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := d.capture.Read(&img); !ok || img.Empty() {
		return fmt.Errorf("failed to read frame from device %d", d.deviceID)
	}

	if ok := gocv.IMWrite(destPath, img); !ok {
		os.Remove(destPath)
		return fmt.Errorf("failed to write frame to %s", destPath)
	}

	return nil
}

// Stop releases the device handle.
func (d *Device) Stop() error {
	if d.capture == nil {
		return nil
	}
	err := d.capture.Close()
	d.capture = nil
	return err
}
