// Package queue defines the contract for enqueuing and consuming frame
// observations awaiting scoring.
//
// The in-memory bounded implementation is sufficient for batch-sized runs;
// the interface leaves room for a broker-backed replacement.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 100000
)

// Observation is the payload type flowing through the queue.
type Observation = model.FrameObservation

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an observation to the queue. Returns false if the queue
	// is full or closed and the observation was not accepted.
	Enqueue(ctx context.Context, obs Observation) bool

	// Dequeue returns a channel that receives observations as they become
	// available. The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Observation

	// Len returns the current number of queued observations.
	Len(ctx context.Context) int

	// Close shuts the queue down. No further enqueues are accepted and the
	// dequeue channel drains then closes.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	observations chan Observation
	capacity     int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates an in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}

	q.observations = make(chan Observation, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds an observation to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, obs Observation) bool {
	start := time.Now()
	defer func() {
		metrics.RecordQueueEnqueueLatency(float64(time.Since(start).Milliseconds()))
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return false
	}

	select {
	case q.observations <- obs:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.observations))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError("context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError("queue_full")
		return false
	}
}

// Dequeue returns a channel that receives observations as they arrive.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Observation {
	out := make(chan Observation)
	go func() {
		defer close(out)
		for obs := range q.observations {
			select {
			case out <- obs:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.observations))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued observations.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.observations)
	metrics.UpdateQueueSize(size)
	return size
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.observations)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
