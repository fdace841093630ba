package camera

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
)

// Placeholder is a no-hardware frame source. It satisfies the same
// start/capture/stop contract as Device and writes a solid-color JPEG
// so downstream non-empty checks pass.
type Placeholder struct {
	started bool
}

// NewPlaceholder creates a placeholder frame source.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Start marks the source as started; repeated calls are safe.
func (p *Placeholder) Start() error {
	p.started = true
	return nil
}

// Capture writes a solid gray 640x480 JPEG to destPath.
func (p *Placeholder) Capture(destPath string) error {
	if !p.started {
		return fmt.Errorf("placeholder source not started")
	}

	img := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))
	gray := color.RGBA{R: 64, G: 64, B: 64, A: 255}
	for y := 0; y < frameHeight; y++ {
		for x := 0; x < frameWidth; x++ {
			img.Set(x, y, gray)
		}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create placeholder frame: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 80}); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to encode placeholder frame: %w", err)
	}

	return nil
}

// Stop marks the source as stopped.
func (p *Placeholder) Stop() error {
	p.started = false
	return nil
}
