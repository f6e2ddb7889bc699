package display

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the default floor between device updates.
const DefaultMinInterval = 500 * time.Millisecond

// Notifier wraps a Sender and drops updates that arrive faster than the
// configured minimum interval. The vision loop produces state transitions
// much faster than the device can redraw, so flooding it helps nobody.
type Notifier struct {
	sender      Sender
	minInterval time.Duration

	mu       sync.Mutex
	lastSend time.Time
}

// NewNotifier creates a rate-limited sender. A zero minInterval uses
// DefaultMinInterval.
func NewNotifier(sender Sender, minInterval time.Duration) *Notifier {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Notifier{sender: sender, minInterval: minInterval}
}

// Send forwards the instruction unless the previous send was too recent.
func (n *Notifier) Send(ctx context.Context, instruction string) {
	if !n.allow() {
		return
	}
	n.sender.Send(ctx, instruction)
}

// SendMood forwards a mood unless the previous send was too recent.
func (n *Notifier) SendMood(ctx context.Context, mood Mood) {
	if !n.allow() {
		return
	}
	n.sender.SendMood(ctx, mood)
}

func (n *Notifier) allow() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := time.Now()
	if now.Sub(n.lastSend) < n.minInterval {
		return false
	}
	n.lastSend = now
	return true
}

var _ Sender = (*Notifier)(nil)
