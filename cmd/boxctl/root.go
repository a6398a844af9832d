package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/config"
	"github.com/boxctl/boxctl/providers"
	_ "github.com/boxctl/boxctl/providers/aws"
	_ "github.com/boxctl/boxctl/providers/gcp"
)

var (
	version = "0.1.0"

	flagConfig   string
	flagProvider string
	flagRegion   string
	flagProject  string
	flagZone     string
	flagOutput   string
	flagDebug    bool

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "boxctl",
		Short: "Developer cloud instances with owner and expiry tags",
		Long: `boxctl provisions, lists and tears down developer cloud instances
on AWS and GCP, stamping every instance with an owner identity, an
expiration date and a managed-by marker so external cleanup automation
can find them.

The owner identity comes from BOXCTL_OWNER or ~/.boxctl/config.yaml and
is required for every resource command.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

// Execute runs the root command under a signal-aware context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.boxctl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagProvider, "provider", "p", "", "cloud provider: aws or gcp")
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "AWS region")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "GCP project")
	rootCmd.PersistentFlags().StringVar(&flagZone, "zone", "", "GCP zone")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// setup initializes logging and resolves configuration before any
// command runs. Flags override environment, environment overrides file.
func setup(cmd *cobra.Command, args []string) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagProvider != "" {
		c.Provider = flagProvider
	}
	if flagRegion != "" {
		c.Region = flagRegion
	}
	if flagProject != "" {
		c.Project = flagProject
	}
	if flagZone != "" {
		c.Zone = flagZone
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	return nil
}

// newProvider checks the identity, constructs the provider and prints
// the active context line to stderr. Every resource command goes
// through here so a missing identity aborts before any provider call.
func newProvider(ctx context.Context) (providers.CloudProvider, error) {
	if err := cfg.RequireOwner(); err != nil {
		return nil, err
	}

	p, err := providers.New(ctx, cfg.Provider, providers.Options{
		Region:  cfg.Region,
		Project: cfg.Project,
		Zone:    cfg.Zone,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(os.Stderr, p.Describe())
	return p, nil
}
