package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/analyst"
	"github.com/certifyai/certify/internal/vault"
)

// fakeVault records saves and can be made to fail.
type fakeVault struct {
	saved   []json.RawMessage
	saveErr error
}

func (v *fakeVault) Save(ctx context.Context, analysis json.RawMessage) (string, error) {
	if v.saveErr != nil {
		return "", v.saveErr
	}
	v.saved = append(v.saved, analysis)
	return "doc-123", nil
}

func (v *fakeVault) Get(ctx context.Context, id string) (*vault.Record, error) {
	return nil, errors.New("not implemented")
}

func (v *fakeVault) Close() error { return nil }

func resultWithRisk(level analysis.RiskLevel) *analyst.Result {
	return &analyst.Result{
		Report: &analysis.Report{
			Summary: "A lease.",
			RiskItems: []analysis.RiskItem{
				{ClauseSummary: "Some clause", RiskLevel: level},
			},
		},
		Raw: json.RawMessage(`{"summary":"A lease."}`),
	}
}

func TestRunAlwaysSaves(t *testing.T) {
	v := &fakeVault{}
	a := New(v)

	actions := a.Run(context.Background(), resultWithRisk(analysis.RiskLow))

	if len(v.saved) != 1 {
		t.Fatalf("vault has %d records, want 1", len(v.saved))
	}
	if len(actions) != 1 {
		t.Fatalf("got %d actions, want 1: %v", len(actions), actions)
	}
	if !strings.Contains(actions[0], "Successfully saved analysis with document ID: doc-123") {
		t.Errorf("unexpected action: %q", actions[0])
	}
}

func TestRunSchedulesFollowUpForHighRisk(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := New(&fakeVault{}, WithClock(func() time.Time { return fixed }))

	actions := a.Run(context.Background(), resultWithRisk(analysis.RiskHigh))

	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2: %v", len(actions), actions)
	}
	if !strings.Contains(actions[1], "was scheduled for 2026-03-08") {
		t.Errorf("follow-up should be one week out: %q", actions[1])
	}
}

func TestRunNoFollowUpForMediumRisk(t *testing.T) {
	a := New(&fakeVault{})

	actions := a.Run(context.Background(), resultWithRisk(analysis.RiskMedium))

	if len(actions) != 1 {
		t.Errorf("medium risk should not schedule a follow-up: %v", actions)
	}
}

func TestRunReportsSaveFailure(t *testing.T) {
	v := &fakeVault{saveErr: errors.New("disk full")}
	a := New(v)

	actions := a.Run(context.Background(), resultWithRisk(analysis.RiskLow))

	if len(actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(actions))
	}
	if !strings.Contains(actions[0], "Could not save the analysis") {
		t.Errorf("failure should be reported in actions: %q", actions[0])
	}
}
