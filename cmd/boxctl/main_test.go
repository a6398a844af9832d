package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxctl/boxctl/internal/audit"
	"github.com/boxctl/boxctl/types"
)

func TestSetupFlagsOverrideEnv(t *testing.T) {
	t.Setenv("BOXCTL_OWNER", "jane")
	t.Setenv("BOXCTL_PROVIDER", "gcp")
	t.Setenv("BOXCTL_PROJECT", "env-project")
	t.Setenv("BOXCTL_ZONE", "us-central1-a")

	flagConfig = t.TempDir() + "/missing.yaml"
	flagProvider = "aws"
	flagRegion = "eu-west-1"
	defer func() {
		flagConfig, flagProvider, flagRegion = "", "", ""
	}()

	require.NoError(t, setup(rootCmd, nil))

	assert.Equal(t, "jane", cfg.Owner)
	assert.Equal(t, "aws", cfg.Provider, "flag beats environment")
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestSetupRejectsUnknownProvider(t *testing.T) {
	flagConfig = t.TempDir() + "/missing.yaml"
	flagProvider = "azure"
	defer func() {
		flagConfig, flagProvider = "", ""
	}()

	assert.Error(t, setup(rootCmd, nil))
}

func TestPrintReportTable(t *testing.T) {
	flagOutput = "table"
	defer func() { flagOutput = "table" }()

	report := audit.Report{
		Total: 3,
		Expired: []types.Instance{
			{
				ID:     "i-0abc",
				Name:   "jane-old",
				Status: "stopped",
				Tags:   types.Tags{ExpiresOn: "2026-01-01"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "3 managed, 1 expired")
	assert.Contains(t, out, "jane-old")
	assert.Contains(t, out, "2026-01-01")
}

func TestPrintReportEmptySkipsTable(t *testing.T) {
	flagOutput = "table"

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, audit.Build(nil, time.Now())))

	assert.Equal(t, "0 managed, 0 expired\n", buf.String())
}
