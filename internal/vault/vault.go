// Package vault stores completed analyses so users can revisit them later.
package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Record is one stored analysis.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Analysis  json.RawMessage `json:"analysis"`
}

// Vault persists analysis records.
type Vault interface {
	// Save stores a record and returns its ID.
	Save(ctx context.Context, analysis json.RawMessage) (string, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// Close releases any held resources.
	Close() error
}

// Backend identifies a vault storage backend.
type Backend string

const (
	BackendLocal    Backend = "local"
	BackendPostgres Backend = "postgres"
)

// Config holds vault configuration.
type Config struct {
	Backend     Backend
	LocalPath   string // for the local backend
	DatabaseURL string // for the postgres backend
}

// New creates a vault from configuration.
func New(ctx context.Context, cfg Config) (Vault, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return NewLocal(cfg.LocalPath)
	case BackendPostgres:
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown vault backend: %s", cfg.Backend)
	}
}

// NewFromEnv creates a vault from environment variables. CERTIFY_VAULT
// selects the backend and defaults to local storage for development.
func NewFromEnv(ctx context.Context) (Vault, error) {
	backend := os.Getenv("CERTIFY_VAULT")
	if backend == "" {
		backend = string(BackendLocal)
	}

	cfg := Config{Backend: Backend(backend)}

	switch cfg.Backend {
	case BackendLocal:
		cfg.LocalPath = os.Getenv("CERTIFY_VAULT_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./vault"
		}
	case BackendPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres vault")
		}
	}

	return New(ctx, cfg)
}
