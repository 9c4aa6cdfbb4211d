// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/jatinorwot/sports-rank/internal/adapters/export"
	framequeue "github.com/jatinorwot/sports-rank/internal/adapters/mq/queue"
	workerpool "github.com/jatinorwot/sports-rank/internal/adapters/mq/worker"
	"github.com/jatinorwot/sports-rank/internal/adapters/repository"
	"github.com/jatinorwot/sports-rank/internal/domain/dedupe"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/profile"
	"github.com/jatinorwot/sports-rank/internal/domain/ranking"
	"github.com/jatinorwot/sports-rank/internal/domain/scoring"
	"github.com/jatinorwot/sports-rank/internal/domain/types"
	"github.com/jatinorwot/sports-rank/pkg/logger"
	"github.com/jatinorwot/sports-rank/pkg/metrics"
)

// Service wires the frame ranking system together: dedupe, queue, scoring
// workers, result store, and ranking reads.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper
	queue   framequeue.Queue
	scorer  scoring.Scorer
	pool    *workerpool.Pool
	ranker  *ranking.Engine

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	sport       string
	baseWeights map[string]float64
	modifiers   map[string]float64

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of scoring workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the observation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSport selects the scoring profile's sport.
func WithSport(sport string) Option {
	return func(s *Service) {
		if sport != "" {
			s.sport = sport
		}
	}
}

// WithBaseWeights overrides the fusion base weights. Keys are metric names.
func WithBaseWeights(weights map[string]float64) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.baseWeights = weights
		}
	}
}

// WithModifiers overrides the active sport's metric multipliers.
func WithModifiers(modifiers map[string]float64) Option {
	return func(s *Service) {
		if len(modifiers) > 0 {
			s.modifiers = modifiers
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   100_000,
		dedupeSize:  50_000,
		sport:       profile.SportPickleball,
		ranker:      ranking.NewEngine(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the scoring profile and brings up the pipeline. A profile
// error is a configuration error: the caller must abort before any frame is
// scored.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting frame ranking service...")

	prof, err := s.buildProfile()
	if err != nil {
		return fmt.Errorf("scoring profile: %w", err)
	}

	s.store = repository.NewTreapStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = framequeue.NewInMemoryQueue(
		framequeue.WithCapacity(s.queueSize),
	)
	s.scorer = scoring.NewPipeline(prof)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.scorer, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "frame ranking service started",
		logger.String("sport", prof.Sport),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// buildProfile converts the string-keyed config maps into a validated
// scoring profile.
func (s *Service) buildProfile() (*profile.Profile, error) {
	var weights map[model.Metric]float64
	if len(s.baseWeights) > 0 {
		weights = make(map[model.Metric]float64, len(s.baseWeights))
		for k, v := range s.baseWeights {
			weights[model.Metric(k)] = v
		}
	}

	modifiers := profile.DefaultModifiers()
	if len(s.modifiers) > 0 {
		mods := make(map[model.Metric]float64, len(s.modifiers))
		for k, v := range s.modifiers {
			mods[model.Metric(k)] = v
		}
		modifiers[s.sport] = mods
	}

	return profile.New(s.sport, weights, modifiers)
}

// Stop gracefully shuts down the service, draining queued frames first.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping frame ranking service...")

	if s.pool != nil {
		// Shutdown closes the queue so workers drain what is left.
		_ = s.pool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "frame ranking service stopped")
}

// SeenAndRecord atomically checks whether a frame id was seen and records it
// if not. Returns true if the frame was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordFrameDuplicate()
	}
	return seen
}

// Unrecord removes a frame ID from the seen set, allowing a retry. Used when
// an observation was recorded but could not be enqueued.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits an observation for asynchronous scoring. Returns false if
// the queue rejected it.
func (s *Service) Enqueue(ctx context.Context, obs model.FrameObservation) bool {
	s.logger.Debug(ctx, "enqueueing frame observation",
		logger.String("frameID", obs.FrameID),
		logger.String("groupID", obs.GroupID),
	)
	return s.queue.Enqueue(ctx, obs)
}

// Rankings returns the full combined ranking, best first.
func (s *Service) Rankings(ctx context.Context) ([]types.RankedFrame, error) {
	entries, err := s.store.Rankings(ctx)
	if err != nil {
		return nil, err
	}
	return toRankedFrames(entries), nil
}

// GroupRankings returns the per-group ranking for groupID.
func (s *Service) GroupRankings(ctx context.Context, groupID string) ([]types.RankedFrame, error) {
	entries, err := s.store.GroupRankings(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return toRankedFrames(entries), nil
}

// TopN returns the first n combined entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.RankedFrame, error) {
	entries, err := s.store.TopN(ctx, n)
	if err != nil {
		return nil, err
	}
	return toRankedFrames(entries), nil
}

// Rank returns the combined-scope entry for one frame, including its full
// score vector.
func (s *Service) Rank(ctx context.Context, frameID string) (types.RankedFrame, error) {
	entry, err := s.store.Rank(ctx, frameID)
	if err != nil {
		return types.RankedFrame{}, err
	}

	out := toRankedFrame(entry)
	out.Scores = make(map[string]float64, len(model.Metrics))
	for _, m := range model.Metrics {
		out.Scores[string(m)] = entry.Result.Scores.Get(m)
	}
	return out, nil
}

// Groups lists the known group ids.
func (s *Service) Groups(ctx context.Context) []string {
	return s.store.Groups(ctx)
}

// Export writes the ranking report as CSV, for the whole batch or, when
// groupID is set, one group. The batch ranking engine re-ranks the stored
// results so the export is self-consistent even while workers are still
// writing.
func (s *Service) Export(ctx context.Context, w io.Writer, groupID string) error {
	results := s.store.Results(ctx)

	var entries []ranking.Entry
	if groupID == "" {
		entries = s.ranker.Rank(results).Combined
	} else {
		entries = s.ranker.Group(results, groupID)
	}

	if err := export.WriteCSV(w, entries); err != nil {
		return fmt.Errorf("export rankings: %w", err)
	}
	metrics.RecordRankingExport()
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"sport":       s.sport,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalFrames := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalFrames"] = totalFrames
		stats["groups"] = len(s.store.Groups(ctx))

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreRecordsTotal(totalFrames)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

func toRankedFrame(e ranking.Entry) types.RankedFrame {
	return types.RankedFrame{
		Rank:       e.Rank,
		FrameID:    e.Result.FrameID,
		GroupID:    e.Result.GroupID,
		FinalScore: e.Result.FinalScore,
		Action:     string(e.Result.Action.Action),
		Confidence: e.Result.Action.Confidence,
	}
}

func toRankedFrames(entries []ranking.Entry) []types.RankedFrame {
	out := make([]types.RankedFrame, len(entries))
	for i, e := range entries {
		out[i] = toRankedFrame(e)
	}
	return out
}
