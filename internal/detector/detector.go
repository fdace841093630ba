package detector

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"homewatch/internal/logger"
)

// Default cascade tuning. The minimum size filters out regions smaller
// than 30x30 pixels.
const (
	DefaultScaleFactor  = 1.1
	DefaultMinNeighbors = 5
	DefaultMinFaceSize  = 30
)

// Service counts faces in still images using a pre-trained frontal-face
// Haar cascade. The classifier is loaded lazily, once per process, and
// reused for every call. All failure modes (missing model, unreadable
// image) degrade to a zero count; Count never fails the caller.
type Service struct {
	cascadePath  string
	scaleFactor  float64
	minNeighbors int
	minFaceSize  int
	logger       *logger.Logger

	loadOnce   sync.Once
	classifier gocv.CascadeClassifier
	loaded     bool
	mu         sync.Mutex
}

// NewService creates a face detection service. The cascade file is not
// touched until the first Count call.
func NewService(cascadePath string, scaleFactor float64, minNeighbors, minFaceSize int, logger *logger.Logger) *Service {
	if scaleFactor <= 1.0 {
		scaleFactor = DefaultScaleFactor
	}
	if minNeighbors <= 0 {
		minNeighbors = DefaultMinNeighbors
	}
	if minFaceSize <= 0 {
		minFaceSize = DefaultMinFaceSize
	}

	return &Service{
		cascadePath:  cascadePath,
		scaleFactor:  scaleFactor,
		minNeighbors: minNeighbors,
		minFaceSize:  minFaceSize,
		logger:       logger,
	}
}

// initClassifier loads the cascade model from disk.
func (s *Service) initClassifier() error {
	if _, err := os.Stat(s.cascadePath); os.IsNotExist(err) {
		return fmt.Errorf("cascade file not found: %s", s.cascadePath)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(s.cascadePath) {
		classifier.Close()
		return fmt.Errorf("failed to load cascade: %s", s.cascadePath)
	}

	s.classifier = classifier
	s.loaded = true
	s.logger.Info("Face cascade loaded: %s", s.cascadePath)
	return nil
}

// Count returns the number of face regions detected in the image at the
// given path. Returns 0 on any failure.
func (s *Service) Count(imagePath string) int {
	s.loadOnce.Do(func() {
		if err := s.initClassifier(); err != nil {
			s.logger.Warning("Face detection unavailable: %v", err)
		}
	})

	if !s.loaded {
		return 0
	}

	img := gocv.IMRead(imagePath, gocv.IMReadGrayScale)
	defer img.Close()
	if img.Empty() {
		s.logger.Warning("Could not read image for face detection: %s", imagePath)
		return 0
	}

	// The classifier handle is not safe for concurrent detection calls.
	s.mu.Lock()
	defer s.mu.Unlock()

	rects := s.classifier.DetectMultiScaleWithParams(
		img,
		s.scaleFactor,
		s.minNeighbors,
		0,
		image.Pt(s.minFaceSize, s.minFaceSize),
		image.Pt(0, 0),
	)

	if len(rects) > 0 {
		s.logger.Info("Detected %d face(s) in %s", len(rects), imagePath)
	}
	return len(rects)
}

// HasFaces reports whether at least one face is detected in the image.
func (s *Service) HasFaces(imagePath string) bool {
	return s.Count(imagePath) > 0
}

// Close releases the classifier handle.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		s.classifier.Close()
		s.loaded = false
	}
}
