package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leaddizioni/internal/database"
	"leaddizioni/internal/models"
)

// ContextRepository handles database operations for session contexts
type ContextRepository struct {
	db  *database.DB
	ttl time.Duration
	now func() time.Time
}

// NewContextRepository creates a new context repository
func NewContextRepository(db *database.DB, ttl time.Duration) *ContextRepository {
	return &ContextRepository{db: db, ttl: ttl, now: time.Now}
}

// Get retrieves the live context for a session
func (r *ContextRepository) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	query := `SELECT state_json FROM session_contexts
			  WHERE session_id = ? AND lifespan > 0 AND expires_at > ?`

	var raw string
	err := r.db.QueryRowContext(ctx, query, sessionID, r.now().UTC()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get context: %w", err)
	}

	state := &models.SessionState{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, fmt.Errorf("failed to decode context: %w", err)
	}
	return state, nil
}

// Save creates or replaces the context for a session
func (r *ContextRepository) Save(ctx context.Context, sessionID string, state *models.SessionState, lifespan int) error {
	if state == nil || lifespan < 1 {
		return r.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode context: %w", err)
	}

	now := r.now().UTC()
	query := r.db.Dialect.UpsertContextQuery()
	if _, err := r.db.ExecContext(ctx, query, sessionID, string(data), lifespan, now.Add(r.ttl), now); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	return nil
}

// Advance decrements the context lifespan and drops it when it runs out
func (r *ContextRepository) Advance(ctx context.Context, sessionID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE session_contexts SET lifespan = lifespan - 1, updated_at = ? WHERE session_id = ?"
	if _, err := tx.ExecContext(ctx, query, r.now().UTC(), sessionID); err != nil {
		return fmt.Errorf("failed to advance context: %w", err)
	}

	query = "DELETE FROM session_contexts WHERE session_id = ? AND lifespan <= 0"
	if _, err := tx.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to drop spent context: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes the context for a session
func (r *ContextRepository) Delete(ctx context.Context, sessionID string) error {
	query := "DELETE FROM session_contexts WHERE session_id = ?"
	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}
	return nil
}

// PurgeExpired deletes every context past its expiry
func (r *ContextRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := "DELETE FROM session_contexts WHERE expires_at <= ?"
	result, err := r.db.ExecContext(ctx, query, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge contexts: %w", err)
	}
	return result.RowsAffected()
}

// Ping checks the database connection
func (r *ContextRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
