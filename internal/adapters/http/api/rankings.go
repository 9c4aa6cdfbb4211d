// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// RankingsDependencies defines the interface for ranking read operations.
type RankingsDependencies interface {
	Rankings(ctx context.Context) ([]RankedFrame, error)
	GroupRankings(ctx context.Context, groupID string) ([]RankedFrame, error)
	TopN(ctx context.Context, n int) ([]RankedFrame, error)
}

// RankingsHandler handles ranking list requests.
type RankingsHandler struct {
	deps     RankingsDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRankings handles GET /rankings?group=G&limit=N requests. Without
// parameters it returns the full combined ranking; group narrows to one
// burst's per-group ranking; limit truncates either view.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: invalid limit", op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: limit above %d", op, ErrBadRequest, h.maxLimit))
			return
		}
		limit = n
	}

	var (
		entries []RankedFrame
		err     error
	)
	if group := r.URL.Query().Get("group"); group != "" {
		entries, err = h.deps.GroupRankings(r.Context(), group)
		if err == nil && limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
	} else if limit > 0 {
		entries, err = h.deps.TopN(r.Context(), limit)
	} else {
		entries, err = h.deps.Rankings(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	if entries == nil {
		entries = []RankedFrame{}
	}
	writeJSON(w, http.StatusOK, entries)
}
