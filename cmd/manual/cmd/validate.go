package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the manual content for structural errors",
		Long: `Load the catalog and report the first problem found: schema violations,
duplicate ids, sections without pages or pages without básico content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sections, %d pages\n",
				len(rt.Catalog.ListSections()), len(rt.Catalog.Flatten()))
			return err
		},
	}
}
