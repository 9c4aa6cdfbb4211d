// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ExportDependencies defines the interface for ranking export operations.
type ExportDependencies interface {
	// Export writes the ranking report as CSV. An empty groupID exports the
	// combined ranking; otherwise only the named group.
	Export(ctx context.Context, w io.Writer, groupID string) error
}

// ExportHandler serves the CSV ranking report.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /rankings/export requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_rankings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	groupID := r.URL.Query().Get("group")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rankings.csv"`)
	if err := h.deps.Export(r.Context(), w, groupID); err != nil {
		// Headers may already be out; a truncated body is the best we can do.
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
}
