package handler

import (
	"net/http"
	"time"

	"github.com/moonblokz/telemetry-cli/internal/infra/buildinfo"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: buildinfo.Get().Version,
		Stored:  h.store.Len(),
	})
}
