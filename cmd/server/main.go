package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"leaddizioni/internal/config"
	"leaddizioni/internal/game"
	"leaddizioni/internal/handlers"
	"leaddizioni/internal/repository"
	"leaddizioni/internal/security"
	"leaddizioni/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the context store (sqlite, postgres, mysql, redis or memory)
	store, closeStore, err := repository.OpenContextStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open context store: %v", err)
	}
	defer closeStore()

	seed := cfg.RandomSeed
	if seed == 0 {
		if seed, err = game.NewSeed(); err != nil {
			log.Fatalf("Failed to seed random source: %v", err)
		}
	} else {
		log.Printf("Using fixed random seed %d", seed)
	}

	engine := game.NewEngine(game.NewRandomPicker(seed))
	turnService := service.NewTurnService(engine, store, cfg.ContextLifespan)
	webhookHandler := handlers.NewWebhookHandler(turnService)

	auth := security.NewWebhookAuthenticator(cfg.WebhookUser, cfg.WebhookPasswordHash, cfg.WebhookJWTSecret, cfg.WebhookJWTIssuer)
	if !auth.Enabled() {
		log.Println("Warning: webhook authentication is disabled")
	}
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	if err := limiter.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}
	go limiter.Cleanup(ctx, time.Hour)

	// Setup router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(handlers.Logging)
	webhookHandler.RegisterRoutes(r, auth, limiter)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background context cleanup
	go cleanupExpiredContexts(ctx, turnService, cfg.CleanupInterval)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

func cleanupExpiredContexts(ctx context.Context, turnService *service.TurnService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := turnService.PurgeExpired(ctx)
			if err != nil {
				log.Printf("Error cleaning up expired contexts: %v", err)
				continue
			}
			if purged > 0 {
				log.Printf("Expired contexts cleaned up: %d", purged)
			}
		}
	}
}
