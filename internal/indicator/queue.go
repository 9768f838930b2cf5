package indicator

import "context"

// Queue is the bounded FIFO between pattern producers and the renderer.
// Producers never block: a submission against a full queue is dropped.
type Queue struct {
	ch chan Pattern
}

// NewQueue creates a queue with the given fixed capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{
		ch: make(chan Pattern, capacity),
	}
}

// TryEnqueue submits a pattern without blocking. It returns false and
// leaves the queue unchanged when the queue is full; the caller decides
// whether the drop is worth logging.
func (q *Queue) TryEnqueue(p Pattern) bool {
	select {
	case q.ch <- p:
		return true
	default:
		return false
	}
}

// Dequeue blocks until a pattern is available or ctx is canceled.
// Only the renderer calls this.
func (q *Queue) Dequeue(ctx context.Context) (Pattern, error) {
	select {
	case p := <-q.ch:
		return p, nil
	case <-ctx.Done():
		return Pattern{}, ctx.Err()
	}
}

// Len reports the number of queued patterns.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap reports the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}
