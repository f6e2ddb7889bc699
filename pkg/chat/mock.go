package chat

import (
	"context"
	"sync"
)

// Mock is a test double implementing Provider with scriptable responses
// and call tracking.
type Mock struct {
	mu sync.Mutex

	responses []mockResponse
	streams   [][]string
	healthErr error

	chatCalls   []*Request
	streamCalls []*Request
	closed      bool
}

type mockResponse struct {
	content string
	err     error
}

// NewMock creates an empty mock provider.
func NewMock() *Mock {
	return &Mock{}
}

// QueueResponse schedules a single-shot reply.
func (m *Mock) QueueResponse(content string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{content: content})
	return m
}

// QueueError schedules a single-shot failure.
func (m *Mock) QueueError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{err: err})
	return m
}

// QueueStream schedules a streamed reply delivered as the given fragments.
func (m *Mock) QueueStream(fragments ...string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = append(m.streams, fragments)
	return m
}

// SetHealthError scripts the Health result.
func (m *Mock) SetHealthError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthErr = err
	return m
}

// Chat pops the next scripted response.
func (m *Mock) Chat(_ context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatCalls = append(m.chatCalls, req)

	if len(m.responses) == 0 {
		return &Response{Content: "", FinishReason: "stop"}, nil
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.err != nil {
		return nil, next.err
	}
	return &Response{Content: next.content, FinishReason: "stop"}, nil
}

// Stream pops the next scripted fragment sequence.
func (m *Mock) Stream(_ context.Context, req *Request) (Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamCalls = append(m.streamCalls, req)

	if len(m.responses) > 0 && m.responses[0].err != nil {
		next := m.responses[0]
		m.responses = m.responses[1:]
		return nil, next.err
	}

	var fragments []string
	if len(m.streams) > 0 {
		fragments = m.streams[0]
		m.streams = m.streams[1:]
	}
	return &mockStream{fragments: fragments}, nil
}

// Health returns the scripted health error.
func (m *Mock) Health(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthErr
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// ChatCalls returns the requests passed to Chat.
func (m *Mock) ChatCalls() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Request(nil), m.chatCalls...)
}

// StreamCalls returns the requests passed to Stream.
func (m *Mock) StreamCalls() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Request(nil), m.streamCalls...)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// mockStream replays fragments then reports done.
type mockStream struct {
	fragments []string
	pos       int
	closed    bool
}

func (s *mockStream) Recv() (*Chunk, error) {
	if s.pos >= len(s.fragments) {
		return &Chunk{Done: true, FinishReason: "stop"}, nil
	}
	chunk := &Chunk{Delta: s.fragments[s.pos]}
	s.pos++
	return chunk, nil
}

func (s *mockStream) Close() error {
	s.closed = true
	return nil
}

var _ Provider = (*Mock)(nil)
