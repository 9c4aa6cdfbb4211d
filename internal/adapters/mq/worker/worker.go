// Package worker runs the parallel scoring stage: a fixed pool of workers
// drains the observation queue, scores each frame independently, and writes
// the result into the store. A single frame's failure is isolated and never
// blocks sibling frames.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/jatinorwot/sports-rank/internal/adapters/mq/queue"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/scoring"
	"github.com/jatinorwot/sports-rank/pkg/logger"
	"github.com/jatinorwot/sports-rank/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Sink receives completed frame results.
type Sink interface {
	Put(ctx context.Context, result model.FrameResult) error
}

// ObservationSource defines how workers receive observations.
type ObservationSource interface {
	Dequeue(ctx context.Context) <-chan queue.Observation
}

// Worker scores observations until its source drains or it is shut down.
type Worker struct {
	source ObservationSource
	scorer scoring.Scorer
	sink   Sink
	name   string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(source ObservationSource, scorer scoring.Scorer, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		source:   source,
		scorer:   scorer,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop until ctx is canceled, the source closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	observations := w.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case obs, ok := <-observations:
			if !ok {
				return
			}
			if err := w.processObservation(ctx, obs); err != nil {
				w.logger.Error(ctx, "error processing frame", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight frame to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "worker shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processObservation scores one frame and stores the result.
func (w *Worker) processObservation(ctx context.Context, obs queue.Observation) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if obs.IngestError != "" {
		// Ingest failures still produce a (floor) result; report the
		// diagnostic here so the caller sees it per frame.
		metrics.RecordFrameIngestFailure()
		w.logger.Warn(ctx, "frame failed ingest; scoring at floor",
			logger.String("frameID", obs.FrameID),
			logger.String("groupID", obs.GroupID),
			logger.String("ingestError", obs.IngestError),
		)
	}

	scoreStart := time.Now()
	result, err := w.scorer.Score(ctx, obs)
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Milliseconds()))

	if err != nil {
		metrics.RecordScoringError()
		metrics.RecordErrorByComponent("worker", "scoring_error")
		w.logger.Error(ctx, "scoring failed for frame",
			logger.String("frameID", obs.FrameID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to score frame %s: %w", obs.FrameID, err)
	}

	if err := w.sink.Put(ctx, result); err != nil {
		metrics.RecordStoreError()
		metrics.RecordErrorByComponent("worker", "store_error")
		w.logger.Error(ctx, "storing result failed for frame",
			logger.String("frameID", obs.FrameID),
			logger.Error(err),
		)
		return fmt.Errorf("storing result failed: %w", err)
	}

	metrics.RecordFrameScored()
	return nil
}

// Pool manages a fixed set of scoring workers.
type Pool struct {
	workers []*Worker
	source  ObservationSource

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers sharing one source, scorer,
// and sink.
func NewPool(workerCount int, source ObservationSource, scorer scoring.Scorer, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers:  make([]*Worker, workerCount),
		source:   source,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewWorker(source, scorer, sink, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerActiveCount(workerCount)
	return p
}

// Start launches every worker in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits for each, bounded per worker.
func (p *Pool) Stop() {
	close(p.shutdown)
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerActiveCount(0)
}

// Shutdown closes the source so workers drain remaining observations, then
// waits for them, bounded overall.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
