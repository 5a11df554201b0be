package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"leaddizioni/internal/game"
	"leaddizioni/internal/security"
	"leaddizioni/internal/service"
)

const maxWebhookBody = 1 << 20

// WebhookHandler serves Dialogflow fulfillment calls
type WebhookHandler struct {
	turns *service.TurnService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(turns *service.TurnService) *WebhookHandler {
	return &WebhookHandler{turns: turns}
}

// HandleWebhook runs one conversation turn
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondWithError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed, "", nil)
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "Failed to decode webhook request", err)
		return
	}

	result, err := h.turns.HandleTurn(r.Context(), req.toTurnRequest())
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidRequest):
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "Rejected webhook request", err)
		return
	case errors.Is(err, game.ErrConfiguration):
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Agent configuration error", err)
		return
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to handle turn", err)
		return
	}

	w.Header().Set("X-Response-Id", security.NewResponseID())
	respondWithJSON(w, http.StatusOK, newWebhookResponse(req.Session, result))
}

// HandleHealth reports whether the context store is reachable
func (h *WebhookHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.turns.Ping(ctx); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, ErrStoreUnavailable, "Health check failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
