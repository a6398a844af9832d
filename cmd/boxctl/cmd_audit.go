package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/internal/audit"
	"github.com/boxctl/boxctl/output"
	"github.com/boxctl/boxctl/providers"
)

var (
	flagAuditInterval time.Duration
	flagMetricsAddr   string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report instances past their expiration date",
	Long: `Scan your managed instances and report which ones are past their
boxctl:expires-on date. With --interval the scan repeats on a timer
and exposes Prometheus metrics until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().DurationVar(&flagAuditInterval, "interval", 0, "repeat the scan on this interval (0 = run once)")
	auditCmd.Flags().StringVar(&flagMetricsAddr, "metrics", ":9090", "metrics listen address in interval mode")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	if flagAuditInterval > 0 {
		return runAuditDaemon(ctx, p)
	}

	auditor := audit.New(p, cfg.Owner, log.Logger, nil)
	report, err := auditor.RunOnce(ctx)
	if err != nil {
		return err
	}
	return printReport(os.Stdout, report)
}

func printReport(w io.Writer, report audit.Report) error {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}
	if format == output.FormatJSON {
		return output.PrintJSON(w, report)
	}

	fmt.Fprintf(w, "%d managed, %d expired\n", report.Total, len(report.Expired))
	if len(report.Expired) == 0 {
		return nil
	}
	table := output.NewTable(w, "NAME", "ID", "STATUS", "EXPIRED ON")
	for _, inst := range report.Expired {
		table.AddRow(output.OrDash(inst.Name), inst.ID, inst.Status, inst.Tags.ExpiresOn)
	}
	return table.Flush()
}

// runAuditDaemon runs the periodic scan alongside a metrics endpoint.
// Either actor failing, or a signal on the parent context, stops both.
func runAuditDaemon(ctx context.Context, p providers.CloudProvider) error {
	registry := prometheus.NewRegistry()
	metrics := audit.NewMetrics(registry)
	auditor := audit.New(p, cfg.Owner, log.Logger, metrics)

	var g run.Group

	loopCtx, cancelLoop := context.WithCancel(ctx)
	g.Add(func() error {
		err := auditor.RunLoop(loopCtx, flagAuditInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}, func(error) {
		cancelLoop()
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: flagMetricsAddr, Handler: mux}
	g.Add(func() error {
		log.Info().Str("addr", flagMetricsAddr).Msg("starting metrics server")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	})

	return g.Run()
}
