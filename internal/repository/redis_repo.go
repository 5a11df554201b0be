package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"leaddizioni/internal/models"
)

const redisKeyPrefix = "addizioni:context:"

// storedContext is the value kept under each Redis key
type storedContext struct {
	State    *models.SessionState `json:"state"`
	Lifespan int                  `json:"lifespan"`
}

// RedisContextRepository keeps session contexts in Redis, letting key expiry
// enforce the time-to-live
type RedisContextRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisContextRepository creates a Redis-backed context repository
func NewRedisContextRepository(client *redis.Client, ttl time.Duration) *RedisContextRepository {
	return &RedisContextRepository{client: client, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Get retrieves the live context for a session
func (r *RedisContextRepository) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	data, err := r.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get context: %w", err)
	}

	var stored storedContext
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode context: %w", err)
	}
	if stored.Lifespan < 1 {
		return nil, nil
	}
	return stored.State, nil
}

// Save creates or replaces the context for a session
func (r *RedisContextRepository) Save(ctx context.Context, sessionID string, state *models.SessionState, lifespan int) error {
	if state == nil || lifespan < 1 {
		return r.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(storedContext{State: state, Lifespan: lifespan})
	if err != nil {
		return fmt.Errorf("failed to encode context: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	return nil
}

// Advance decrements the context lifespan, keeping the key's remaining TTL
func (r *RedisContextRepository) Advance(ctx context.Context, sessionID string) error {
	key := redisKey(sessionID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		var stored storedContext
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		stored.Lifespan--

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if stored.Lifespan < 1 {
				pipe.Del(ctx, key)
				return nil
			}
			updated, err := json.Marshal(stored)
			if err != nil {
				return err
			}
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("failed to advance context: %w", err)
	}
	return nil
}

// Delete removes the context for a session
func (r *RedisContextRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}
	return nil
}

// PurgeExpired is a no-op: Redis expires keys on its own
func (r *RedisContextRepository) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// Ping checks the Redis connection
func (r *RedisContextRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
