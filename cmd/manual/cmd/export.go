package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-manual/internal/catalog"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the manual outline to an XLSX workbook",
		Long: `Write one row per page (section, page, available levels, keywords) to a
spreadsheet for content review.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := catalog.ExportOutline(rt.Catalog, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", len(rt.Catalog.Flatten()), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "manual-outline.xlsx", "Output file")

	return cmd
}
