package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/ports/inbound"
)

// HistoryHandlers handles history listing and report requests
type HistoryHandlers struct {
	history inbound.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandlers creates the history handlers
func NewHistoryHandlers(history inbound.HistoryService, logger *zap.Logger) *HistoryHandlers {
	return &HistoryHandlers{
		history: history,
		logger:  logger.Named("history-handlers"),
	}
}

// List handles GET /api/history?period=week|month
func (h *HistoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	entries, err := h.history.List(r.Context(), userID, r.URL.Query().Get("period"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// WeeklyReport handles GET /api/history/reports/weekly
func (h *HistoryHandlers) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	report, err := h.history.WeeklyReport(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
