package handlers

import (
	"github.com/go-chi/chi/v5"

	"leaddizioni/internal/security"
)

// RegisterRoutes mounts the fulfillment webhook and the health check
func (h *WebhookHandler) RegisterRoutes(r chi.Router, auth *security.WebhookAuthenticator, limiter *security.RateLimiter) {
	r.Get("/healthz", h.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(limiter))
		r.Use(RequireWebhookAuth(auth))
		r.Post("/webhook", h.HandleWebhook)
	})
}
