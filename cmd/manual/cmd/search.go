package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search section titles, page titles and keywords",
		Long: `Search the manual. Matching is case-insensitive substring matching on section
titles, page titles and search keywords; results keep manual order.

Examples:
  manual search campaña
  manual search "resumen semanal" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("--format must be text or json, got %q", format)
			}

			rt, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			query := strings.Join(args, " ")
			results := manual.Search[string](rt.Catalog, query)
			slog.Debug("search complete", "query", query, "results", len(results))

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return printResults(cmd, query, results)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func printResults(cmd *cobra.Command, query string, results []manual.SearchResult) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		_, err := fmt.Fprintf(out, "No matches for %q\n", query)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range results {
		line := fmt.Sprintf("%s/%s\t%s › %s", r.SectionID, r.SubsectionID, r.SectionTitle, r.SubsectionTitle)
		if r.MatchedKeyword != "" {
			line += "\t#" + r.MatchedKeyword
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
