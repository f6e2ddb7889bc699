package tts

import (
	"context"
	"sync"
)

// Mock is a test double implementing Provider with call tracking.
type Mock struct {
	mu sync.Mutex

	// SynthesizeFunc overrides the default synthesize behavior.
	SynthesizeFunc func(ctx context.Context, text string) (*AudioResult, error)

	// HealthErr is returned by Health.
	HealthErr error

	synthesizeCalls []string
	closed          bool
}

// NewMock creates a mock provider that returns a canned MP3 buffer.
func NewMock() *Mock {
	return &Mock{}
}

// NewMockWithError creates a mock whose Synthesize always fails.
func NewMockWithError(err error) *Mock {
	return &Mock{
		SynthesizeFunc: func(context.Context, string) (*AudioResult, error) {
			return nil, err
		},
		HealthErr: err,
	}
}

// Synthesize records the call and returns the scripted result.
func (m *Mock) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	m.mu.Lock()
	m.synthesizeCalls = append(m.synthesizeCalls, text)
	fn := m.SynthesizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return &AudioResult{
		Audio:     []byte("mock-mp3"),
		CharCount: len(text),
	}, nil
}

// Health returns the scripted health error.
func (m *Mock) Health(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HealthErr
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SynthesizeCalls returns the texts passed to Synthesize, in order.
func (m *Mock) SynthesizeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.synthesizeCalls...)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ Provider = (*Mock)(nil)
