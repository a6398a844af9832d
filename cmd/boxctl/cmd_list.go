package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/output"
	"github.com/boxctl/boxctl/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your managed instances",
	Long: `List instances carrying the boxctl marker and your owner identity.
Terminated instances are not shown.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	instances, err := p.ListInstances(ctx, types.InstanceFilter{Owner: cfg.Owner})
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		return output.PrintJSON(os.Stdout, instances)
	}

	table := output.NewTable(os.Stdout, "NAME", "ID", "STATUS", "TYPE", "PUBLIC IP", "EXPIRES")
	for _, inst := range instances {
		table.AddRow(
			output.OrDash(inst.Name),
			inst.ID,
			inst.Status,
			inst.MachineType,
			output.OrDash(inst.PublicIP),
			output.OrDash(inst.Tags.ExpiresOn),
		)
	}
	return table.Flush()
}
