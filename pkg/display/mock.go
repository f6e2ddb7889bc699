package display

import (
	"context"
	"sync"
)

// Mock implements Sender for testing, recording every instruction sent.
type Mock struct {
	mu    sync.Mutex
	sends []string
}

// NewMock creates a new mock sender.
func NewMock() *Mock {
	return &Mock{}
}

// Send records the instruction.
func (m *Mock) Send(_ context.Context, instruction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, instruction)
}

// SendMood records the mood as an instruction.
func (m *Mock) SendMood(ctx context.Context, mood Mood) {
	m.Send(ctx, string(mood))
}

// Sends returns a copy of all recorded instructions.
func (m *Mock) Sends() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sends))
	copy(out, m.sends)
	return out
}

// Count returns the number of recorded sends.
func (m *Mock) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}

// Reset clears the recorded sends.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = nil
}

var _ Sender = (*Mock)(nil)
