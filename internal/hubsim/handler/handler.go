package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/moonblokz/telemetry-cli/internal/hubsim/relay"
	"github.com/moonblokz/telemetry-cli/internal/hubsim/store"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/metric"
)

// Handler serves the hub simulator endpoints.
type Handler struct {
	store   *store.Store
	relay   relay.Relay
	metrics *metric.Registry
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New creates a Handler. A nil relay keeps accepted commands local.
func New(st *store.Store, rl relay.Relay, metrics *metric.Registry, logger *slog.Logger) *Handler {
	h := &Handler{
		store:   st,
		relay:   rl,
		metrics: metrics,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.Handle("GET /metrics", h.metrics.Handler())

	h.mux.HandleFunc("POST /command", h.handleCommand)
	h.mux.HandleFunc("GET /commands", h.handleListCommands)
	h.mux.HandleFunc("GET /commands/{id}", h.handleGetCommand)
}

// writeJSON writes a success response.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := logger.RequestIDFromContext(r.Context())
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := logger.RequestIDFromContext(r.Context())
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
