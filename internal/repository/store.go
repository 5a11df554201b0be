package repository

import (
	"context"

	"leaddizioni/internal/models"
)

// ContextStore keeps the game state carried between turns of a conversation.
// A stored context survives a fixed number of turns (its lifespan) and is
// dropped once that many turns pass without it being rewritten, or when its
// time-to-live elapses.
type ContextStore interface {
	// Get returns the live state for the session, or nil when there is none
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)

	// Save replaces the session's state and resets its lifespan and expiry
	Save(ctx context.Context, sessionID string, state *models.SessionState, lifespan int) error

	// Advance consumes one turn of the stored context's lifespan
	Advance(ctx context.Context, sessionID string) error

	// Delete drops the session's context
	Delete(ctx context.Context, sessionID string) error

	// PurgeExpired removes contexts whose time-to-live has elapsed
	PurgeExpired(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}
