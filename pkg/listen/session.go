// Package listen runs the continuous speech-capture side of the bot: a
// background worker feeding an unbounded FIFO queue that the run loop
// drains.
package listen

import (
	"sync/atomic"

	"github.com/emodesk/deskbot/pkg/transcript"
)

// Session carries the state shared between the capture worker and the
// run loop: an atomic stop signal and the conversation transcript. The
// transcript is single-writer — only the run loop appends to it — so it
// needs no lock.
type Session struct {
	stopped atomic.Bool

	// Transcript is owned by the run loop.
	Transcript *transcript.Transcript
}

// NewSession creates a live session seeded with the system prompt.
func NewSession(systemPrompt string) *Session {
	return &Session{
		Transcript: transcript.New(systemPrompt),
	}
}

// Live reports whether the session is still running.
func (s *Session) Live() bool {
	return !s.stopped.Load()
}

// Stop signals the capture worker to wind down. The signal is advisory:
// the worker observes it once per loop iteration, so shutdown latency is
// bounded by one capture cycle.
func (s *Session) Stop() {
	s.stopped.Store(true)
}
