// Package repository defines the scored-frame store interface and errors.
package repository

import (
	"context"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/ranking"
)

// Store collects FrameResults as workers finish them and serves ordered
// rankings. Implementations never mutate a stored result.
type Store interface {
	// Put records a frame's result. Re-putting the same frame_id replaces
	// the previous result, keeping re-runs idempotent.
	Put(ctx context.Context, result model.FrameResult) error

	// Rank returns the combined-scope ranked entry for one frame.
	// Returns ErrNotFound if the frame is unknown.
	Rank(ctx context.Context, frameID string) (ranking.Entry, error)

	// Rankings returns the full combined ranking, best first, with dense
	// ranks assigned.
	Rankings(ctx context.Context) ([]ranking.Entry, error)

	// GroupRankings returns the per-group ranking for groupID.
	GroupRankings(ctx context.Context, groupID string) ([]ranking.Entry, error)

	// TopN returns the first n combined entries.
	TopN(ctx context.Context, n int) ([]ranking.Entry, error)

	// Results returns every stored result in no particular order, for batch
	// consumers that run the ranking engine themselves.
	Results(ctx context.Context) []*model.FrameResult

	// Groups lists the known group ids.
	Groups(ctx context.Context) []string

	// Count returns the number of frames tracked.
	Count(ctx context.Context) int
}
