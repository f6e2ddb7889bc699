package stt

import (
	"context"
	"sync"

	"github.com/emodesk/deskbot/pkg/audio"
)

// Mock is a scriptable Transcriber for tests. Results are returned in
// order; when exhausted it returns empty text.
type Mock struct {
	mu      sync.Mutex
	results []mockResult
	calls   int
}

type mockResult struct {
	text string
	err  error
}

// NewMock creates an empty mock transcriber.
func NewMock() *Mock {
	return &Mock{}
}

// QueueText schedules a transcription result.
func (m *Mock) QueueText(text string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, mockResult{text: text})
	return m
}

// QueueError schedules a transcription failure.
func (m *Mock) QueueError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, mockResult{err: err})
	return m
}

// Transcribe pops the next scripted result.
func (m *Mock) Transcribe(_ context.Context, _ audio.Chunk) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.results) == 0 {
		return "", nil
	}
	res := m.results[0]
	m.results = m.results[1:]
	return res.text, res.err
}

// Calls returns the number of Transcribe invocations.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

var _ Transcriber = (*Mock)(nil)
