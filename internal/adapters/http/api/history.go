package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	service "github.com/okian/fitcheck/internal/app"
	"github.com/okian/fitcheck/internal/domain/history"
	"github.com/okian/fitcheck/internal/domain/model"
)

// HistoryDependencies defines the interface for history operations.
type HistoryDependencies interface {
	History(ctx context.Context) []model.HistoryEntry
	Rows(ctx context.Context) []history.Row
	Clear(ctx context.Context, confirmed bool) error
}

// HistoryHandler handles history requests.
type HistoryHandler struct {
	deps HistoryDependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

type historyResponse struct {
	Entries []model.HistoryEntry `json:"entries"`
	Rows    []history.Row        `json:"rows"`
}

// HandleGetHistory handles GET /api/history requests.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, historyResponse{
		Entries: h.deps.History(ctx),
		Rows:    h.deps.Rows(ctx),
	})
}

// HandleDeleteHistory handles DELETE /api/history?confirm=true requests.
func (h *HistoryHandler) HandleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_history"
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	err := h.deps.Clear(r.Context(), confirmed)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrNotConfirmed):
		writeError(w, http.StatusConflict, "not_confirmed", WrapKind(op, ErrNotConfirmed, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
