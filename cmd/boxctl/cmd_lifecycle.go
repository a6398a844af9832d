package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/providers"
	"github.com/boxctl/boxctl/types"
	"github.com/boxctl/boxctl/validate"
)

var startCmd = &cobra.Command{
	Use:   "start NAME",
	Short: "Start a stopped instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(cmd.Context(), args[0], "started",
			func(ctx context.Context, p providers.CloudProvider, id string) error {
				return p.StartInstance(ctx, id)
			})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop NAME",
	Short: "Stop a running instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(cmd.Context(), args[0], "stopped",
			func(ctx context.Context, p providers.CloudProvider, id string) error {
				return p.StopInstance(ctx, id)
			})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete an instance permanently",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(cmd.Context(), args[0], "deleted",
			func(ctx context.Context, p providers.CloudProvider, id string) error {
				return p.DeleteInstance(ctx, id)
			})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(deleteCmd)
}

// runLifecycle resolves a single instance by exact qualified name before
// issuing the verb. Resolution failure means no mutating call is made.
func runLifecycle(ctx context.Context, name, verb string, fn func(context.Context, providers.CloudProvider, string) error) error {
	if err := validate.InstanceName(name); err != nil {
		return err
	}

	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	inst, err := resolveOwned(ctx, p, name)
	if err != nil {
		return err
	}

	if err := fn(ctx, p, inst.ID); err != nil {
		return err
	}

	fmt.Printf("%s %s (%s)\n", verb, inst.Name, inst.ID)
	return nil
}

// resolveOwned finds the caller's instance with the given short name,
// qualified by the configured prefix.
func resolveOwned(ctx context.Context, p providers.CloudProvider, name string) (*types.Instance, error) {
	return providers.ResolveInstance(ctx, p, cfg.Owner, cfg.QualifiedName(name))
}
