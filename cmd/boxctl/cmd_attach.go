package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/config"
	"github.com/boxctl/boxctl/validate"
)

var attachCmd = &cobra.Command{
	Use:   "attach NAME VOLUME",
	Short: "Attach an existing volume to an instance",
	Long: `Attach an existing volume or disk to an instance. On AWS VOLUME is a
vol- identifier; on GCP it is the disk name in the instance's zone.`,
	Args: cobra.ExactArgs(2),
	RunE: runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	name, volume := args[0], args[1]

	if err := validate.InstanceName(name); err != nil {
		return err
	}
	switch cfg.Provider {
	case config.ProviderAWS:
		if err := validate.VolumeID(volume); err != nil {
			return err
		}
	case config.ProviderGCP:
		if err := validate.DiskName(volume); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	inst, err := resolveOwned(ctx, p, name)
	if err != nil {
		return err
	}

	if err := p.AttachVolume(ctx, inst.ID, volume); err != nil {
		return err
	}

	fmt.Printf("attached %s to %s (%s)\n", volume, inst.Name, inst.ID)
	return nil
}
