package handlers

import (
	"encoding/json"
	"net/http"

	"globe-news/internal/core"
)

// APIHandler serves the JSON endpoints
type APIHandler struct {
	logger   *core.Logger
	composer ComposerInterface
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(logger *core.Logger, composer ComposerInterface) *APIHandler {
	return &APIHandler{
		logger:   logger,
		composer: composer,
	}
}

// Health reports frontend and backend health. Always HTTP 200; an
// unreachable backend shows up in the payload, not the status code.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.composer.Health(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Error("Failed to encode health report", "error", err)
	}
}
