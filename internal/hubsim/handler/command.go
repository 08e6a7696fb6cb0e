package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

const (
	maxBodyBytes     = 64 << 10
	defaultListLimit = 50
	maxListLimit     = 1000
)

type commandRequest struct {
	Command    string          `json:"command"`
	Parameters json.RawMessage `json:"parameters"`
}

// handleCommand handles POST /command.
func (h *Handler) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, http.StatusRequestEntityTooLarge, CodeTooLarge, "request body too large", nil)
			return
		}
		h.writeError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed JSON body", err.Error())
		return
	}

	if !domain.IsTransportableName(req.Command) {
		h.metrics.RecordCommand("unknown", "rejected")
		h.writeError(w, r, http.StatusBadRequest, CodeBadRequest, "unknown command", req.Command)
		return
	}

	params, err := decodeParameters(req.Parameters)
	if err != nil {
		h.metrics.RecordCommand(req.Command, "rejected")
		h.writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}

	doc := &domain.Document{Command: req.Command, Parameters: params}
	rec, err := h.store.Add(doc)
	if err != nil {
		h.logger.Error("failed to store command", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, CodeInternal, "internal server error", nil)
		return
	}

	log := logger.L(r.Context()).With("id", rec.ID, "command", doc.Command)
	if id, ok := doc.NodeIDOf(); ok {
		log = log.With("node_id", id)
	}

	relayed := false
	if h.relay != nil {
		if err := h.relay.Publish(r.Context(), doc); err != nil {
			h.store.MarkRelayFailed(rec.ID, err)
			h.metrics.RecordRelay("error")
			h.metrics.RecordCommand(doc.Command, "relay_failed")
			log.Error("relay failed", "error", err)
			h.writeError(w, r, http.StatusBadGateway, CodeRelayFailed, "relay failed", err.Error())
			return
		}
		h.metrics.RecordRelay("ok")
		relayed = true
	}

	h.metrics.RecordCommand(doc.Command, "accepted")
	log.Info("command accepted", "relayed", relayed)

	h.writeJSON(w, r, http.StatusOK, AcceptedResponse{
		ID:      rec.ID,
		Command: doc.Command,
		Relayed: relayed,
	})
}

// decodeParameters requires a JSON object.
func decodeParameters(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, errors.New("parameters must be an object")
	}

	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.New("parameters must be an object")
	}
	return params, nil
}

// handleListCommands handles GET /commands.
func (h *Handler) handleListCommands(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxListLimit {
			h.writeError(w, r, http.StatusBadRequest, CodeBadRequest, "limit must be between 1 and 1000", s)
			return
		}
		limit = n
	}

	items := h.store.Recent(limit)
	h.writeJSON(w, r, http.StatusOK, ListResponse{Items: items, Count: len(items)})
}

// handleGetCommand handles GET /commands/{id}.
func (h *Handler) handleGetCommand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := h.store.Get(id)
	if !ok {
		h.writeError(w, r, http.StatusNotFound, CodeNotFound, "command not found", id)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rec)
}
