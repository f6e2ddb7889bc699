package vision

import (
	"context"
	"log/slog"
	"time"

	"github.com/emodesk/deskbot/pkg/display"
)

// FrameSource abstracts the detector so the watch loop is testable
// without a camera.
type FrameSource interface {
	Next() (float64, error)
	Close() error
}

// Watcher runs the detection loop and pushes state changes to the
// device face through a rate-limited sender.
type Watcher struct {
	source   FrameSource
	tracker  *StateTracker
	sender   display.Sender
	interval time.Duration
	logger   *slog.Logger
}

// NewWatcher wires a frame source to a display sender. The sender is
// wrapped in a Notifier so device updates never exceed one per
// half-second regardless of frame rate.
func NewWatcher(cfg Config, source FrameSource, sender display.Sender, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		source:   source,
		tracker:  NewStateTracker(cfg),
		sender:   display.NewNotifier(sender, 0),
		interval: cfg.DetectionInterval,
		logger:   logger.With("component", "vision.watcher"),
	}
}

// Run processes frames until the context is cancelled. Frame capture
// errors are logged and the loop continues with the next tick.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.source.Close()

	w.logger.Info("smile watcher started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("smile watcher stopped")
			return ctx.Err()
		case <-ticker.C:
		}

		confidence, err := w.source.Next()
		if err != nil {
			w.logger.Warn("frame capture failed", "error", err)
			continue
		}

		state, changed := w.tracker.Observe(confidence)
		if !changed {
			continue
		}

		w.logger.Info("face state changed",
			"state", state,
			"confidence", w.tracker.Average())

		mood := display.MoodNeutral
		if state == StateHappy {
			mood = display.MoodHappy
		}
		w.sender.SendMood(ctx, mood)
	}
}

// State exposes the current smoothed state.
func (w *Watcher) State() State {
	return w.tracker.State()
}
