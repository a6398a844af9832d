package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/validate"
)

var tagCmd = &cobra.Command{
	Use:   "tag NAME KEY=VALUE [KEY=VALUE...]",
	Short: "Add or overwrite tags on an instance",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validate.InstanceName(name); err != nil {
		return err
	}

	tags := make(map[string]string, len(args)-1)
	for _, arg := range args[1:] {
		key, value, err := validate.TagPair(arg)
		if err != nil {
			return err
		}
		tags[key] = value
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

	if err := p.TagInstance(ctx, inst.ID, tags); err != nil {
		return err
	}

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	fmt.Printf("tagged %s: %s\n", inst.Name, strings.Join(keys, ", "))
	return nil
}
