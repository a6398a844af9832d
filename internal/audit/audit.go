// Package audit reports managed instances that have passed their
// expiration date. It only observes - teardown stays a human (or
// external automation) decision.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/boxctl/boxctl/providers"
	"github.com/boxctl/boxctl/types"
)

// Report summarizes one audit pass.
type Report struct {
	Total   int              `json:"total"`
	Expired []types.Instance `json:"expired"`
}

// Build classifies instances against the current date.
func Build(instances []types.Instance, now time.Time) Report {
	report := Report{Total: len(instances)}
	for _, inst := range instances {
		if inst.Expired(now) {
			report.Expired = append(report.Expired, inst)
		}
	}
	return report
}

// Auditor runs audit passes against a provider.
type Auditor struct {
	provider providers.CloudProvider
	owner    string
	logger   zerolog.Logger
	metrics  *Metrics
}

// New creates an auditor. Metrics may be nil for one-shot runs.
func New(provider providers.CloudProvider, owner string, logger zerolog.Logger, metrics *Metrics) *Auditor {
	return &Auditor{
		provider: provider,
		owner:    owner,
		logger:   logger,
		metrics:  metrics,
	}
}

// RunOnce performs a single audit pass.
func (a *Auditor) RunOnce(ctx context.Context) (Report, error) {
	instances, err := a.provider.ListInstances(ctx, types.InstanceFilter{Owner: a.owner})
	if err != nil {
		if a.metrics != nil {
			a.metrics.ObserveFailure()
		}
		return Report{}, err
	}

	report := Build(instances, time.Now())
	if a.metrics != nil {
		a.metrics.Observe(report)
	}
	a.logger.Info().
		Int("managed", report.Total).
		Int("expired", len(report.Expired)).
		Msg("audit pass complete")
	return report, nil
}

// RunLoop audits on the given interval until the context is canceled.
func (a *Auditor) RunLoop(ctx context.Context, interval time.Duration) error {
	if _, err := a.RunOnce(ctx); err != nil {
		a.logger.Error().Err(err).Msg("audit pass failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := a.RunOnce(ctx); err != nil {
				a.logger.Error().Err(err).Msg("audit pass failed")
			}
		}
	}
}
