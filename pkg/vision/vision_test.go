package vision

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/emodesk/deskbot/pkg/display"
)

func TestSmileConfidence(t *testing.T) {
	t.Run("no smiles", func(t *testing.T) {
		if got := SmileConfidence(nil, 100, 100); got != 0 {
			t.Errorf("confidence %f, want 0", got)
		}
	})

	t.Run("single small smile", func(t *testing.T) {
		smiles := []image.Rectangle{image.Rect(0, 0, 20, 10)} // 200 / 10000 area
		got := SmileConfidence(smiles, 100, 100)
		want := 0.02*0.5 + (1.0/3.0)*0.5
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("confidence %f, want %f", got, want)
		}
	})

	t.Run("factors are capped", func(t *testing.T) {
		// Four large smiles: area ratio and count factor both saturate.
		smiles := []image.Rectangle{
			image.Rect(0, 0, 100, 100),
			image.Rect(0, 0, 100, 100),
			image.Rect(0, 0, 100, 100),
			image.Rect(0, 0, 100, 100),
		}
		if got := SmileConfidence(smiles, 100, 100); got != 1 {
			t.Errorf("confidence %f, want capped at 1", got)
		}
	})

	t.Run("degenerate face", func(t *testing.T) {
		smiles := []image.Rectangle{image.Rect(0, 0, 10, 10)}
		if got := SmileConfidence(smiles, 0, 0); got != 0 {
			t.Errorf("confidence %f, want 0 for zero-size face", got)
		}
	})
}

func TestStateTrackerFlipsToHappyAfterThreshold(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewStateTracker(cfg)

	if _, changed := tr.Observe(0.9); changed {
		t.Error("one frame should not flip state")
	}
	state, changed := tr.Observe(0.9)
	if !changed || state != StateHappy {
		t.Errorf("state %v changed %v after %d happy frames", state, changed, cfg.HappyThreshold)
	}
}

func TestStateTrackerReturnsToNeutral(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistorySize = 1 // no smoothing, isolate the counters
	tr := NewStateTracker(cfg)

	tr.Observe(0.9)
	tr.Observe(0.9)
	if tr.State() != StateHappy {
		t.Fatal("expected happy state")
	}

	var changed bool
	var state State
	for i := 0; i < cfg.NeutralThreshold; i++ {
		state, changed = tr.Observe(0.0)
	}
	if !changed || state != StateNeutral {
		t.Errorf("state %v changed %v after %d neutral frames", state, changed, cfg.NeutralThreshold)
	}
}

func TestStateTrackerSmoothsSingleSpike(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewStateTracker(cfg)

	// Fill history with zeros, then one spike: the average stays low.
	for i := 0; i < cfg.HistorySize; i++ {
		tr.Observe(0.0)
	}
	if _, changed := tr.Observe(1.0); changed {
		t.Error("single spike should not flip state through the moving average")
	}
	if tr.State() != StateNeutral {
		t.Errorf("state %v, want neutral", tr.State())
	}
}

func TestStateTrackerNoRepeatedChange(t *testing.T) {
	tr := NewStateTracker(DefaultConfig())

	tr.Observe(0.9)
	tr.Observe(0.9)
	if _, changed := tr.Observe(0.9); changed {
		t.Error("staying happy should not report a change")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.SmileConfidence = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for out-of-range confidence")
	}
}

// scriptedSource replays confidences for watcher tests.
type scriptedSource struct {
	values []float64
	pos    int
	errAt  int
	closed bool
}

func (s *scriptedSource) Next() (float64, error) {
	if s.errAt > 0 && s.pos == s.errAt {
		s.pos++
		return 0, errors.New("camera glitch")
	}
	if s.pos >= len(s.values) {
		return 0, errors.New("no more frames")
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

func TestWatcherSendsMoodOnStateChange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetectionInterval = time.Millisecond

	source := &scriptedSource{values: []float64{0.9, 0.9, 0.9}}
	sender := display.NewMock()
	w := NewWatcher(cfg, source, sender, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	w.Run(ctx)

	sends := sender.Sends()
	if len(sends) != 1 || sends[0] != string(display.MoodHappy) {
		t.Errorf("sends %v, want single happy update", sends)
	}
	if !source.closed {
		t.Error("watcher should close its source")
	}
}

func TestWatcherSurvivesCaptureErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetectionInterval = time.Millisecond

	source := &scriptedSource{values: []float64{0.9, 0.9, 0.9}, errAt: 1}
	sender := display.NewMock()
	w := NewWatcher(cfg, source, sender, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	w.Run(ctx)

	if w.State() != StateHappy {
		t.Errorf("state %v, want happy despite a mid-stream glitch", w.State())
	}
}
