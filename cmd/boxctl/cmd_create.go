package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/config"
	"github.com/boxctl/boxctl/providers"
	"github.com/boxctl/boxctl/types"
	"github.com/boxctl/boxctl/validate"
)

var (
	createLifetime string
	createImage    string
	createType     string
	createVolumeGB int32
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Launch a developer instance",
	Long: `Launch one instance named NAME (prefixed with your configured
namespace) and stamp it with your owner identity, an expiration date
computed from the lifetime, and the boxctl managed-by marker.`,
	Example: `  boxctl create sandbox --image ami-0123456789abcdef0
  boxctl create sandbox -d 2w --type t3.large
  boxctl create sandbox -d never -p gcp`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createLifetime, "lifetime", "d", "", "lifetime before expiry: <n>d, <n>w, <n>m or never (default 1d)")
	createCmd.Flags().StringVar(&createImage, "image", "", "machine image: AMI id (aws) or image name/path (gcp)")
	createCmd.Flags().StringVar(&createType, "type", "", "machine type (default t3.micro / e2-medium)")
	createCmd.Flags().Int32Var(&createVolumeGB, "volume-gb", 0, "boot volume size in GB (provider default when 0)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validate.InstanceName(name); err != nil {
		return err
	}

	// Resolve the expiry once, here at the boundary. Downstream only
	// sees the serialized tag value.
	expiry, err := types.ParseLifetime(createLifetime, time.Now())
	if err != nil {
		return err
	}

	if cfg.Provider == config.ProviderAWS {
		if createImage == "" {
			return fmt.Errorf("--image is required on aws (an AMI id)")
		}
		if err := validate.ImageID(createImage); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	qualified := cfg.QualifiedName(name)
	instance, err := p.CreateInstance(ctx, providers.CreateRequest{
		Name:        qualified,
		ImageID:     createImage,
		MachineType: createType,
		VolumeGB:    createVolumeGB,
		Tags: types.Tags{
			Name:      qualified,
			Owner:     cfg.Owner,
			ExpiresOn: expiry.String(),
			ManagedBy: types.ManagedByValue,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\texpires=%s\n", instance.Name, instance.ID, instance.Status, expiry.String())
	return nil
}
