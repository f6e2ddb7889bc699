package audio

import (
	"context"
	"io"
	"sync"
	"time"
)

// MockSource is a scriptable Source for tests. It returns queued chunks
// or errors in order, then io.EOF.
type MockSource struct {
	mu      sync.Mutex
	results []mockResult

	// Delay simulates capture time per Record call.
	Delay time.Duration

	records int
}

type mockResult struct {
	chunk Chunk
	err   error
}

// NewMockSource creates an empty mock source.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// QueueChunk schedules a chunk to be returned by a future Record call.
func (m *MockSource) QueueChunk(c Chunk) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, mockResult{chunk: c})
	return m
}

// QueuePCM schedules raw PCM bytes as a chunk.
func (m *MockSource) QueuePCM(pcm []byte) *MockSource {
	return m.QueueChunk(NewChunk(pcm))
}

// QueueError schedules an error.
func (m *MockSource) QueueError(err error) *MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, mockResult{err: err})
	return m
}

// Record pops the next scripted result.
func (m *MockSource) Record(ctx context.Context, _ time.Duration) (Chunk, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return Chunk{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records++
	if len(m.results) == 0 {
		return Chunk{}, io.EOF
	}
	res := m.results[0]
	m.results = m.results[1:]
	return res.chunk, res.err
}

// Records returns how many Record calls were made.
func (m *MockSource) Records() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records
}

// Name returns "mock".
func (m *MockSource) Name() string { return "mock" }

// Close is a no-op.
func (m *MockSource) Close() error { return nil }

var _ Source = (*MockSource)(nil)
