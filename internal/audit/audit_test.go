package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/boxctl/boxctl/providers"
	"github.com/boxctl/boxctl/types"
)

func TestBuild(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	instances := []types.Instance{
		{Name: "expired-box", Tags: types.Tags{ExpiresOn: "2025-05-01"}},
		{Name: "live-box", Tags: types.Tags{ExpiresOn: "2025-07-01"}},
		{Name: "forever-box", Tags: types.Tags{ExpiresOn: types.Never}},
	}

	report := Build(instances, now)
	if report.Total != 3 {
		t.Errorf("Total = %d, want 3", report.Total)
	}
	if len(report.Expired) != 1 || report.Expired[0].Name != "expired-box" {
		t.Errorf("Expired = %v, want only expired-box", report.Expired)
	}
}

func TestBuildEmpty(t *testing.T) {
	report := Build(nil, time.Now())
	if report.Total != 0 || len(report.Expired) != 0 {
		t.Errorf("Build(nil) = %+v, want empty report", report)
	}
}

type stubProvider struct {
	providers.CloudProvider
	instances []types.Instance
	err       error
}

func (s *stubProvider) ListInstances(context.Context, types.InstanceFilter) ([]types.Instance, error) {
	return s.instances, s.err
}

func TestRunOnce(t *testing.T) {
	provider := &stubProvider{
		instances: []types.Instance{
			{Name: "old", Tags: types.Tags{ExpiresOn: "2000-01-01"}},
		},
	}
	metrics := NewMetrics(prometheus.NewRegistry())
	auditor := New(provider, "jane", zerolog.Nop(), metrics)

	report, err := auditor.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if report.Total != 1 || len(report.Expired) != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunOnceQueryFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("throttled")}
	auditor := New(provider, "jane", zerolog.Nop(), nil)

	if _, err := auditor.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce() with failing provider returned nil error")
	}
}
