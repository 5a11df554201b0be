package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"leaddizioni/internal/config"
	"leaddizioni/internal/database"
)

// OpenContextStore builds the context store selected by cfg.StoreType.
// The returned close function releases the underlying connection.
func OpenContextStore(ctx context.Context, cfg *config.Config) (ContextStore, func() error, error) {
	switch {
	case cfg.StoreType == "memory":
		log.Println("Using in-memory context store")
		return NewMemoryContextRepository(cfg.ContextTTL), func() error { return nil }, nil

	case cfg.StoreType == "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Printf("Using redis context store at %s", cfg.RedisAddr)
		return NewRedisContextRepository(client, cfg.ContextTTL), client.Close, nil

	case cfg.UsesSQL():
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Printf("Using %s context store", cfg.StoreType)
		return NewContextRepository(db, cfg.ContextTTL), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
}
