package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalVault stores each record as a JSON file in a directory.
type LocalVault struct {
	basePath string
}

// NewLocal creates a local vault rooted at basePath.
func NewLocal(basePath string) (*LocalVault, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	return &LocalVault{basePath: basePath}, nil
}

func (v *LocalVault) Save(ctx context.Context, analysis json.RawMessage) (string, error) {
	record := &Record{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Analysis:  analysis,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	path := v.recordPath(record.ID)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}

	return record.ID, nil
}

func (v *LocalVault) Get(ctx context.Context, id string) (*Record, error) {
	// IDs are always UUIDs we generated; reject anything else before
	// touching the filesystem
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid record ID: %w", err)
	}

	data, err := os.ReadFile(v.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("record not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return &record, nil
}

func (v *LocalVault) Close() error {
	return nil
}

func (v *LocalVault) recordPath(id string) string {
	return filepath.Join(v.basePath, id+".json")
}
