package listen

import (
	"context"
	"sync"
	"time"

	"github.com/emodesk/deskbot/pkg/audio"
)

// Queue is an unbounded FIFO of captured audio chunks. Capture keeps
// running while a response is being spoken, so the backlog can grow
// without bound; chunks are drained strictly in order.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []audio.Chunk
	closed bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues a chunk. Pushes to a closed queue are dropped.
func (q *Queue) Push(c audio.Chunk) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, c)
	q.cond.Signal()
}

// Pop dequeues the oldest chunk, waiting up to wait for one to arrive.
// ok is false when the wait expires, the context is cancelled, or the
// queue is closed and empty.
func (q *Queue) Pop(ctx context.Context, wait time.Duration) (audio.Chunk, bool) {
	deadline := time.Now().Add(wait)

	// Wake the cond wait when the deadline or context expires.
	timerCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	stop := context.AfterFunc(timerCtx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed || timerCtx.Err() != nil {
			return audio.Chunk{}, false
		}
		q.cond.Wait()
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len returns the current backlog size.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close wakes all waiters; queued chunks can still be drained via Pop.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
