package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const analysesSchema = `
CREATE TABLE IF NOT EXISTS analyses (
	id UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	analysis JSONB NOT NULL
)`

// PostgresVault stores records in a Postgres table.
type PostgresVault struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to Postgres and ensures the analyses table exists.
func NewPostgres(ctx context.Context, connString string) (*PostgresVault, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, analysesSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}

	return &PostgresVault{pool: pool}, nil
}

func (v *PostgresVault) Save(ctx context.Context, analysis json.RawMessage) (string, error) {
	id := uuid.New()
	createdAt := time.Now().UTC()

	_, err := v.pool.Exec(ctx,
		`INSERT INTO analyses (id, created_at, analysis) VALUES ($1, $2, $3)`,
		id, createdAt, analysis)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}

	return id.String(), nil
}

func (v *PostgresVault) Get(ctx context.Context, id string) (*Record, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record ID: %w", err)
	}

	record := &Record{ID: recordID.String()}
	err = v.pool.QueryRow(ctx,
		`SELECT created_at, analysis FROM analyses WHERE id = $1`,
		recordID).Scan(&record.CreatedAt, &record.Analysis)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("record not found: %s", id)
		}
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	return record, nil
}

func (v *PostgresVault) Close() error {
	v.pool.Close()
	return nil
}
