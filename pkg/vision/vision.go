// Package vision watches the webcam for smiles and mirrors the result
// on the device face.
//
// Detection runs Haar cascades over grayscale frames: faces first, then
// smiles within the lower part of each face. A moving average plus
// consecutive-hit thresholds smooth the noisy per-frame signal before
// any state change reaches the display.
package vision

import (
	"errors"
	"image"
	"time"
)

// Detection parameters. Tuned for sensitivity at a desk-distance webcam.
const (
	// DefaultDetectionInterval is the pause between processed frames.
	DefaultDetectionInterval = 100 * time.Millisecond

	// DefaultHappyThreshold is the consecutive smiling frames required
	// before the state flips to happy.
	DefaultHappyThreshold = 2

	// DefaultNeutralThreshold is the consecutive non-smiling frames
	// required before the state flips back to neutral.
	DefaultNeutralThreshold = 3

	// DefaultSmileConfidence is the smoothed confidence cutoff.
	DefaultSmileConfidence = 0.35

	// DefaultHistorySize is the moving-average window length.
	DefaultHistorySize = 5

	// DefaultMinFaceSize is the smallest face edge, in pixels, worth
	// considering.
	DefaultMinFaceSize = 60
)

// Errors surfaced by the detector.
var (
	ErrCameraUnavailable = errors.New("vision: could not open webcam")
	ErrCascadeLoad       = errors.New("vision: could not load cascade model")
)

// Config controls the smile watcher.
type Config struct {
	// WebcamID selects the capture device (usually 0).
	WebcamID int

	// Frame capture resolution. Higher resolution improves detection
	// at distance.
	FrameWidth  int
	FrameHeight int

	// FaceCascadePath and SmileCascadePath locate the Haar models.
	FaceCascadePath  string
	SmileCascadePath string

	// Detection cadence and smoothing.
	DetectionInterval time.Duration
	HappyThreshold    int
	NeutralThreshold  int
	SmileConfidence   float64
	HistorySize       int
	MinFaceSize       int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		WebcamID:          0,
		FrameWidth:        1280,
		FrameHeight:       720,
		FaceCascadePath:   "/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
		SmileCascadePath:  "/usr/share/opencv4/haarcascades/haarcascade_smile.xml",
		DetectionInterval: DefaultDetectionInterval,
		HappyThreshold:    DefaultHappyThreshold,
		NeutralThreshold:  DefaultNeutralThreshold,
		SmileConfidence:   DefaultSmileConfidence,
		HistorySize:       DefaultHistorySize,
		MinFaceSize:       DefaultMinFaceSize,
	}
}

// Validate checks config sanity.
func (c Config) Validate() error {
	if c.HappyThreshold < 1 || c.NeutralThreshold < 1 {
		return errors.New("vision: thresholds must be at least 1")
	}
	if c.SmileConfidence <= 0 || c.SmileConfidence > 1 {
		return errors.New("vision: smile confidence must be in (0, 1]")
	}
	if c.HistorySize < 1 {
		return errors.New("vision: history size must be at least 1")
	}
	return nil
}

// SmileConfidence scores smile detections within a face. Larger smile
// regions and more of them both raise the score; each factor is capped
// and the two are weighted equally, so the result stays in [0, 1].
func SmileConfidence(smiles []image.Rectangle, faceW, faceH int) float64 {
	if len(smiles) == 0 || faceW <= 0 || faceH <= 0 {
		return 0
	}

	faceArea := float64(faceW * faceH)
	var smileArea float64
	for _, s := range smiles {
		smileArea += float64(s.Dx() * s.Dy())
	}

	areaRatio := smileArea / faceArea
	if areaRatio > 1 {
		areaRatio = 1
	}

	countFactor := float64(len(smiles)) / 3.0
	if countFactor > 1 {
		countFactor = 1
	}

	return areaRatio*0.5 + countFactor*0.5
}
