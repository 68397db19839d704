package vault

import (
	"context"
	"encoding/json"
	"testing"
)

func TestLocalVaultSaveAndGet(t *testing.T) {
	v, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal() error: %v", err)
	}
	defer func() {
		if err := v.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	}()

	ctx := context.Background()
	payload := json.RawMessage(`{"summary":"A lease.","risk_analysis":[]}`)

	id, err := v.Save(ctx, payload)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty ID")
	}

	record, err := v.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if record.ID != id {
		t.Errorf("record ID = %q, want %q", record.ID, id)
	}
	if record.CreatedAt.IsZero() {
		t.Error("record has zero timestamp")
	}
	if string(record.Analysis) != string(payload) {
		t.Errorf("analysis = %s, want %s", record.Analysis, payload)
	}
}

func TestLocalVaultGetMissing(t *testing.T) {
	v, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := v.Get(context.Background(), "0d4f3b7e-8f4e-4f1a-9c2d-000000000000"); err == nil {
		t.Error("expected error for missing record")
	}
}

func TestLocalVaultRejectsBadID(t *testing.T) {
	v, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := v.Get(context.Background(), "../../etc/passwd"); err == nil {
		t.Error("expected error for non-UUID record ID")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	v, err := New(context.Background(), Config{Backend: BackendLocal, LocalPath: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := v.(*LocalVault); !ok {
		t.Errorf("New() = %T, want *LocalVault", v)
	}

	if _, err := New(context.Background(), Config{Backend: "ftp"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
