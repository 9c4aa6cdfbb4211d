// Package ranking orders scored frames into combined and per-group dense
// rankings.
//
// Ordering: final_score descending, ties broken by ascending frame_id, which
// makes the order total and every run byte-identical for the same input.
// Ranks are dense (1..N, no gaps): the tie-break key decides the order, rank
// values are never shared.
package ranking

import (
	"sort"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
)

// Scope tags whether a ranked entry was ranked within its group or across
// the whole batch.
type Scope string

// Ranking scopes.
const (
	ScopeCombined Scope = "combined"
	ScopePerGroup Scope = "per-group"
)

// Entry is one ranked frame. It references the underlying FrameResult and
// never copies or mutates it.
type Entry struct {
	Result *model.FrameResult
	Rank   int
	Scope  Scope
}

// Rankings is the output of one ranking run: the combined ordering plus one
// ordering per group. Entries are created fresh per run.
type Rankings struct {
	Combined []Entry
	ByGroup  map[string][]Entry
}

// Less reports whether a should rank before b. This comparator is the single
// source of ordering truth; the result store mirrors it.
func Less(a, b *model.FrameResult) bool {
	if a.FinalScore != b.FinalScore {
		return a.FinalScore > b.FinalScore
	}
	return a.FrameID < b.FrameID
}

// Engine ranks collections of frame results. Stateless; a run reads the full
// input set and produces a fresh Rankings.
type Engine struct{}

// NewEngine creates a ranking engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Rank orders the results and assigns dense ranks, combined and per group.
// The input slice is not modified.
func (e *Engine) Rank(results []*model.FrameResult) Rankings {
	ordered := make([]*model.FrameResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool { return Less(ordered[i], ordered[j]) })

	out := Rankings{
		Combined: make([]Entry, len(ordered)),
		ByGroup:  make(map[string][]Entry),
	}
	for i, r := range ordered {
		out.Combined[i] = Entry{Result: r, Rank: i + 1, Scope: ScopeCombined}
	}

	// Groups inherit the combined order, so a single pass assigns per-group
	// dense ranks deterministically.
	for _, r := range ordered {
		entries := out.ByGroup[r.GroupID]
		out.ByGroup[r.GroupID] = append(entries, Entry{
			Result: r,
			Rank:   len(entries) + 1,
			Scope:  ScopePerGroup,
		})
	}

	return out
}

// Group ranks only the results belonging to groupID.
func (e *Engine) Group(results []*model.FrameResult, groupID string) []Entry {
	var subset []*model.FrameResult
	for _, r := range results {
		if r.GroupID == groupID {
			subset = append(subset, r)
		}
	}
	return e.Rank(subset).ByGroup[groupID]
}
