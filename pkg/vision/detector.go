package vision

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"
)

// Detector reads webcam frames and scores them for smiles using Haar
// cascades. Not safe for concurrent use except where noted.
type Detector struct {
	config Config
	logger *slog.Logger

	webcam  *gocv.VideoCapture
	faces   gocv.CascadeClassifier
	smiles  gocv.CascadeClassifier
	frame   gocv.Mat
	gray    gocv.Mat
	closeMu sync.Mutex
	closed  bool
}

// NewDetector opens the webcam and loads the cascade models.
func NewDetector(cfg Config, logger *slog.Logger) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	webcam, err := gocv.OpenVideoCapture(cfg.WebcamID)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrCameraUnavailable, cfg.WebcamID, err)
	}
	webcam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.FrameWidth))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.FrameHeight))

	faces := gocv.NewCascadeClassifier()
	if !faces.Load(cfg.FaceCascadePath) {
		webcam.Close()
		faces.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, cfg.FaceCascadePath)
	}

	smiles := gocv.NewCascadeClassifier()
	if !smiles.Load(cfg.SmileCascadePath) {
		webcam.Close()
		faces.Close()
		smiles.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, cfg.SmileCascadePath)
	}

	return &Detector{
		config: cfg,
		logger: logger.With("component", "vision.detector"),
		webcam: webcam,
		faces:  faces,
		smiles: smiles,
		frame:  gocv.NewMat(),
		gray:   gocv.NewMat(),
	}, nil
}

// Next grabs one frame and returns its smile confidence. When more than
// one face is visible, the highest-confidence face wins.
func (d *Detector) Next() (float64, error) {
	if ok := d.webcam.Read(&d.frame); !ok || d.frame.Empty() {
		return 0, fmt.Errorf("vision: frame capture failed")
	}

	gocv.CvtColor(d.frame, &d.gray, gocv.ColorBGRToGray)
	gocv.EqualizeHist(d.gray, &d.gray)

	minFace := image.Pt(d.config.MinFaceSize, d.config.MinFaceSize)
	faces := d.faces.DetectMultiScaleWithParams(
		d.gray, 1.08, 3, 0, minFace, image.Pt(0, 0),
	)

	var best float64
	for _, face := range faces {
		conf := d.scoreFace(face)
		if conf > best {
			best = conf
		}
	}
	return best, nil
}

// scoreFace looks for smiles in the lower 60% of the face rectangle,
// where mouths actually are.
func (d *Detector) scoreFace(face image.Rectangle) float64 {
	mouthTop := face.Min.Y + int(float64(face.Dy())*0.4)
	region := image.Rect(face.Min.X, mouthTop, face.Max.X, face.Max.Y)
	region = region.Intersect(image.Rect(0, 0, d.gray.Cols(), d.gray.Rows()))
	if region.Empty() {
		return 0
	}

	roi := d.gray.Region(region)
	defer roi.Close()

	minSmile := image.Pt(face.Dx()/12, face.Dy()/20)
	smiles := d.smiles.DetectMultiScaleWithParams(
		roi, 1.2, 12, 0, minSmile, image.Pt(0, 0),
	)

	return SmileConfidence(smiles, face.Dx(), face.Dy())
}

// Close releases the webcam and model resources. Safe to call twice.
func (d *Detector) Close() error {
	d.closeMu.Lock()
	defer d.closeMu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	d.frame.Close()
	d.gray.Close()
	d.faces.Close()
	d.smiles.Close()
	return d.webcam.Close()
}
