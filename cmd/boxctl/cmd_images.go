package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/output"
)

var imagesCmd = &cobra.Command{
	Use:     "images [QUERY]",
	Aliases: []string{"search-images"},
	Short:   "Search machine images by name",
	Long: `Search available machine images whose name contains QUERY,
newest first. Use the image ID with create --image.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImages,
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	images, err := p.SearchImages(ctx, query)
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		return output.PrintJSON(os.Stdout, images)
	}

	table := output.NewTable(os.Stdout, "ID", "NAME", "CREATED", "DESCRIPTION")
	for _, img := range images {
		created := ""
		if !img.CreatedAt.IsZero() {
			created = img.CreatedAt.Format("2006-01-02")
		}
		table.AddRow(img.ID, img.Name, output.OrDash(created), output.OrDash(img.Description))
	}
	return table.Flush()
}
