package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/output"
	"github.com/boxctl/boxctl/providers"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the active provider context",
	Long: `Show the resolved configuration: identity, provider, location and SSH
settings after merging flags, environment and the config file.`,
	Args: cobra.NoArgs,
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		return output.PrintJSON(os.Stdout, cfg)
	}

	table := output.NewTable(os.Stdout, "SETTING", "VALUE")
	table.AddRow("owner", output.OrDash(cfg.Owner))
	table.AddRow("prefix", output.OrDash(cfg.Prefix))
	table.AddRow("provider", cfg.Provider)
	table.AddRow("region", output.OrDash(cfg.Region))
	table.AddRow("project", output.OrDash(cfg.Project))
	table.AddRow("zone", output.OrDash(cfg.Zone))
	table.AddRow("ssh users", strings.Join(cfg.ProbeUsers(), ","))
	table.AddRow("identity file", output.OrDash(cfg.SSHIdentityFile))
	table.AddRow("providers", strings.Join(providers.Names(), ","))
	return table.Flush()
}
