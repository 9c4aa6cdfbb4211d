// Package repository defines the scored-frame store interface and errors.
package repository

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/ranking"
	"github.com/jatinorwot/sports-rank/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: final_score DESC, then frame_id ASC. The BST comparator treats
// "less" as "ranks earlier", so an in-order traversal yields the ranking
// from best to worst and the traversal position is the dense rank.
//
// One treap holds the combined ordering; each group additionally holds its
// own treap over the same records, so per-group rankings are a plain
// traversal too.

// scoreScale controls fixed-point scaling from float64. Final scores live in
// [0,10], so twelve decimal places fit comfortably in int64.
const scoreScale = 1_000_000_000_000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	// Scores are clamped upstream; the guard keeps the treap sane anyway.
	x = math.Max(0, math.Min(10, x))
	return scoreFP(math.Round(x * scoreScale))
}

// node is one treap node keyed by (score, frameID) with a size-augmented
// subtree for rank queries.
type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aScore, aID) ranks earlier than (bScore, bID).
// Mirrors ranking.Less over fixed-point scores.
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// scoreToPriority keeps higher scores nearer the treap root, which makes
// top-of-ranking reads cheap.
func scoreToPriority(score scoreFP) uint64 {
	const offset = uint64(1) << 63
	return uint64(score) + offset
}

func insert(n *node, id string, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: scoreToPriority(score), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	if score == n.score && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	} else if less(score, id, n.score, n.id) {
		n.left = deleteNode(n.left, id, score)
	} else {
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// position returns the 0-based in-order position of (id, score), or -1 if
// absent. O(log n) via the size augmentation.
func position(n *node, id string, score scoreFP) int {
	pos := 0
	for n != nil {
		switch {
		case score == n.score && id == n.id:
			return pos + nsize(n.left)
		case less(score, id, n.score, n.id):
			n = n.left
		default:
			pos += nsize(n.left) + 1
			n = n.right
		}
	}
	return -1
}

// collect appends up to limit frame ids in rank order. limit < 0 collects
// everything.
func collect(n *node, limit int, out *[]string) {
	if n == nil || (limit >= 0 && len(*out) >= limit) {
		return
	}
	collect(n.left, limit, out)
	if limit < 0 || len(*out) < limit {
		*out = append(*out, n.id)
	}
	if limit < 0 || len(*out) < limit {
		collect(n.right, limit, out)
	}
}

// TreapStore is the in-memory Store implementation.
type TreapStore struct {
	mu       sync.RWMutex
	combined *node
	byGroup  map[string]*node
	results  map[string]*model.FrameResult
}

// NewTreapStore constructs an empty treap store.
func NewTreapStore(_ context.Context) *TreapStore {
	return &TreapStore{
		byGroup: make(map[string]*node),
		results: make(map[string]*model.FrameResult),
	}
}

// Put implements Store.Put with O(log n) expected time. A repeated frame_id
// replaces the previous entry, so re-scoring an unchanged batch converges to
// the same state.
func (s *TreapStore) Put(_ context.Context, result model.FrameResult) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	ns := toFixedPoint(result.FinalScore)
	stored := result // copy; the store owns its reference

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.results[result.FrameID]; ok {
		os := toFixedPoint(old.FinalScore)
		s.combined = deleteNode(s.combined, result.FrameID, os)
		s.byGroup[old.GroupID] = deleteNode(s.byGroup[old.GroupID], result.FrameID, os)
	}

	s.results[result.FrameID] = &stored
	s.combined = insert(s.combined, result.FrameID, ns)
	s.byGroup[result.GroupID] = insert(s.byGroup[result.GroupID], result.FrameID, ns)

	metrics.UpdateStoreRecordsTotal(len(s.results))
	return nil
}

// Rank returns the combined-scope entry for one frame in O(log n).
func (s *TreapStore) Rank(_ context.Context, frameID string) (ranking.Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[frameID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return ranking.Entry{}, ErrNotFound
	}
	pos := position(s.combined, frameID, toFixedPoint(r.FinalScore))
	if pos < 0 {
		return ranking.Entry{}, ErrNotFound
	}
	return ranking.Entry{Result: r, Rank: pos + 1, Scope: ranking.ScopeCombined}, nil
}

// Rankings returns the full combined ordering with dense ranks.
func (s *TreapStore) Rankings(ctx context.Context) ([]ranking.Entry, error) {
	return s.walk(ctx, func() *node { return s.combined }, -1, ranking.ScopeCombined)
}

// GroupRankings returns the per-group ordering for groupID.
func (s *TreapStore) GroupRankings(ctx context.Context, groupID string) ([]ranking.Entry, error) {
	return s.walk(ctx, func() *node { return s.byGroup[groupID] }, -1, ranking.ScopePerGroup)
}

// TopN returns the first n combined entries.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]ranking.Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	return s.walk(ctx, func() *node { return s.combined }, n, ranking.ScopeCombined)
}

// walk traverses a tree in rank order and materializes entries.
func (s *TreapStore) walk(_ context.Context, root func() *node, limit int, scope ranking.Scope) ([]ranking.Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	collect(root(), limit, &ids)

	out := make([]ranking.Entry, 0, len(ids))
	for i, id := range ids {
		if r, ok := s.results[id]; ok {
			out = append(out, ranking.Entry{Result: r, Rank: i + 1, Scope: scope})
		}
	}
	return out, nil
}

// Results returns every stored result, unordered.
func (s *TreapStore) Results(_ context.Context) []*model.FrameResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.FrameResult, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	return out
}

// Groups lists known group ids in no particular order.
func (s *TreapStore) Groups(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.byGroup))
	for g, root := range s.byGroup {
		if root != nil {
			out = append(out, g)
		}
	}
	return out
}

// Count returns the number of frames tracked.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
