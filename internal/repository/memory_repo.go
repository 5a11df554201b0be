package repository

import (
	"context"
	"sync"
	"time"

	"leaddizioni/internal/models"
)

type memoryEntry struct {
	state     *models.SessionState
	lifespan  int
	expiresAt time.Time
}

// MemoryContextRepository keeps session contexts in process memory.
// Used by the console player and by tests.
type MemoryContextRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryContextRepository creates an empty in-memory repository
func NewMemoryContextRepository(ttl time.Duration) *MemoryContextRepository {
	return &MemoryContextRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the live state for the session
func (r *MemoryContextRepository) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok || entry.lifespan < 1 || !r.now().Before(entry.expiresAt) {
		return nil, nil
	}
	return entry.state.Clone(), nil
}

// Save stores a copy of state with a fresh lifespan and expiry
func (r *MemoryContextRepository) Save(ctx context.Context, sessionID string, state *models.SessionState, lifespan int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state == nil || lifespan < 1 {
		delete(r.entries, sessionID)
		return nil
	}
	r.entries[sessionID] = memoryEntry{
		state:     state.Clone(),
		lifespan:  lifespan,
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

// Advance decrements the context lifespan and drops it when it runs out
func (r *MemoryContextRepository) Advance(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil
	}
	entry.lifespan--
	if entry.lifespan < 1 {
		delete(r.entries, sessionID)
		return nil
	}
	r.entries[sessionID] = entry
	return nil
}

// Delete removes the context for a session
func (r *MemoryContextRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, sessionID)
	return nil
}

// PurgeExpired deletes every context past its expiry
func (r *MemoryContextRepository) PurgeExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var purged int64
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
			purged++
		}
	}
	return purged, nil
}

// Ping always succeeds
func (r *MemoryContextRepository) Ping(ctx context.Context) error {
	return nil
}
