package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler serves aggregated search statistics over HTTP.
type Handler struct {
	aggregator *Aggregator
	logger     *slog.Logger
}

// NewHandler returns a Handler reading from aggregator.
func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{
		aggregator: aggregator,
		logger:     slog.Default().With("component", "analytics-handler"),
	}
}

// Stats writes the current statistics snapshot as JSON.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.aggregator.Snapshot()); err != nil {
		h.logger.Error("failed to write analytics response", "error", err)
	}
}
