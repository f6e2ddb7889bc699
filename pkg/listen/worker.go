package listen

import (
	"context"
	"log/slog"
	"time"

	"github.com/emodesk/deskbot/pkg/audio"
)

// Capture timing defaults, matching the voice pipeline's utterance pacing.
const (
	// DefaultPhraseLimit bounds one captured utterance.
	DefaultPhraseLimit = 5 * time.Second

	// DefaultErrorBackoff is the pause after a failed capture.
	DefaultErrorBackoff = time.Second
)

// Worker continuously records utterance-length chunks and pushes them
// onto the queue until the session stops. Capture errors never terminate
// the worker; it logs, backs off, and retries.
type Worker struct {
	session *Session
	source  audio.Source
	queue   *Queue
	logger  *slog.Logger

	phraseLimit  time.Duration
	errorBackoff time.Duration

	done chan struct{}
}

// NewWorker creates a capture worker. Zero durations use the defaults.
func NewWorker(session *Session, source audio.Source, queue *Queue, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		session:      session,
		source:       source,
		queue:        queue,
		logger:       logger.With("component", "listen.worker"),
		phraseLimit:  DefaultPhraseLimit,
		errorBackoff: DefaultErrorBackoff,
		done:         make(chan struct{}),
	}
}

// Start launches the capture loop in a goroutine.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	w.logger.Info("continuous listening started", "phrase_limit", w.phraseLimit)

	for w.session.Live() {
		if ctx.Err() != nil {
			return
		}

		chunk, err := w.source.Record(ctx, w.phraseLimit)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("capture failed, retrying", "error", err)
			select {
			case <-time.After(w.errorBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}

		if chunk.Empty() {
			continue
		}

		w.queue.Push(chunk)
		w.logger.Debug("utterance queued", "backlog", w.queue.Len())
	}

	w.logger.Info("continuous listening stopped")
}

// Join waits for the worker to exit, up to timeout. A missed join is
// tolerated: the worker is best-effort daemonic and will notice the stop
// signal on its next iteration.
func (w *Worker) Join(timeout time.Duration) bool {
	select {
	case <-w.done:
		return true
	case <-time.After(timeout):
		w.logger.Warn("capture worker did not stop in time", "timeout", timeout)
		return false
	}
}
