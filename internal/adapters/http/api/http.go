// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/types"
)

// RankedFrame mirrors the read shape returned by ranking queries.
type RankedFrame = types.RankedFrame

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SeenAndRecord atomically checks and records a frame id for idempotency.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord rolls back a recorded id when the enqueue fails.
	Unrecord(ctx context.Context, id string)

	// Enqueue pushes an observation for async scoring. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, obs model.FrameObservation) bool

	// Read operations expose ranking data.
	Rankings(ctx context.Context) ([]RankedFrame, error)
	GroupRankings(ctx context.Context, groupID string) ([]RankedFrame, error)
	TopN(ctx context.Context, n int) ([]RankedFrame, error)
	Rank(ctx context.Context, frameID string) (RankedFrame, error)
	Groups(ctx context.Context) []string

	// Export writes the ranking report as CSV; empty groupID means combined.
	Export(ctx context.Context, w io.Writer, groupID string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	framesHandler   *FramesHandler
	rankingsHandler *RankingsHandler
	exportHandler   *ExportHandler
	rankHandler     *RankHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// limit query parameter on ranking reads.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		framesHandler:   NewFramesHandler(deps),
		rankingsHandler: NewRankingsHandler(deps, maxLimit),
		exportHandler:   NewExportHandler(deps),
		rankHandler:     NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/frames", MetricsMiddleware(s.framesHandler.HandlePostFrame, "frames"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rankings/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// frameRequest mirrors the wire schema for POST /frames. The observation
// payload carries what the detection collaborators measured for one image.
type frameRequest struct {
	model.FrameObservation
}

func (f frameRequest) validate() error {
	switch {
	case strings.TrimSpace(f.FrameID) == "":
		return errors.New("missing frame_id")
	case strings.TrimSpace(f.GroupID) == "":
		return errors.New("missing group_id")
	}
	if f.IngestError == "" && (f.ImageWidth < 1 || f.ImageHeight < 1) {
		return errors.New("invalid image dimensions")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
