package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"leaddizioni/internal/security"
)

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// RateLimit rejects clients that exceed the limiter's budget
func RateLimit(rl *security.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := rl.ClientIP(r)
			if !rl.Allow(client) {
				log.Printf("Rate limit exceeded for %s", client)
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.Window().Seconds())))
				http.Error(w, ErrTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireWebhookAuth rejects calls without valid webhook credentials
func RequireWebhookAuth(auth *security.WebhookAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authenticate(r); err != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="webhook"`)
				respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "Webhook authentication failed", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
