package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string `env:"PORT" envDefault:"8080"`

	// StoreType selects where session contexts live: sqlite, postgres, mysql, redis or memory
	StoreType    string `env:"STORE_TYPE" envDefault:"sqlite"`
	DatabasePath string `env:"DB_PATH" envDefault:"./addizioni.db"`
	DatabaseURL  string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// A context survives this many turns unless rewritten, and never longer than ContextTTL
	ContextLifespan int           `env:"CONTEXT_LIFESPAN" envDefault:"1"`
	ContextTTL      time.Duration `env:"CONTEXT_TTL" envDefault:"20m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`

	WebhookUser         string `env:"WEBHOOK_USER"`
	WebhookPasswordHash string `env:"WEBHOOK_PASSWORD_HASH"` // bcrypt
	WebhookJWTSecret    string `env:"WEBHOOK_JWT_SECRET"`
	WebhookJWTIssuer    string `env:"WEBHOOK_JWT_ISSUER"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"120"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	// TrustedProxies are the IPs or CIDRs allowed to set X-Forwarded-For
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// RandomSeed makes question and phrase draws reproducible when non-zero
	RandomSeed int64 `env:"RANDOM_SEED" envDefault:"0"`
}

// Load reads configuration from a .env file (if any) and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

// Parse reads configuration from environment variables only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreType = strings.ToLower(strings.TrimSpace(cfg.StoreType))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	switch c.StoreType {
	case "sqlite", "sqlite3":
		if c.DatabasePath == "" {
			return fmt.Errorf("DB_PATH cannot be empty for sqlite")
		}
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.StoreType)
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for redis")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported STORE_TYPE: %q", c.StoreType)
	}

	if c.ContextLifespan < 1 {
		return fmt.Errorf("CONTEXT_LIFESPAN must be >= 1")
	}
	if c.ContextTTL <= 0 {
		return fmt.Errorf("CONTEXT_TTL must be > 0")
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL must be > 0")
	}
	if (c.WebhookUser == "") != (c.WebhookPasswordHash == "") {
		return fmt.Errorf("WEBHOOK_USER and WEBHOOK_PASSWORD_HASH must be set together")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be > 0")
	}
	return nil
}

// UsesSQL reports whether contexts are kept in a SQL database
func (c *Config) UsesSQL() bool {
	switch c.StoreType {
	case "sqlite", "sqlite3", "postgres", "postgresql", "mysql":
		return true
	}
	return false
}
