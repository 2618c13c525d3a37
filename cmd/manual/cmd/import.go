package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-manual/internal/app"
	"github.com/p-n-ai/pai-manual/internal/catalog"
	"github.com/p-n-ai/pai-manual/internal/platform/cache"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Publish the YAML content directory to PostgreSQL",
		Long: `Validate the content directory and replace the catalog stored in PostgreSQL
with it. Tables are created when missing. When the snapshot cache is enabled the
cached catalog is refreshed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := root.cfg

			cat, err := catalog.LoadDir(cfg.Catalog.Path)
			if err != nil {
				return err
			}

			db, err := app.OpenDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			src, err := catalog.NewPostgresSource(db.Pool)
			if err != nil {
				return err
			}
			if err := src.Migrate(ctx); err != nil {
				return err
			}
			if err := src.Import(ctx, cat); err != nil {
				return err
			}

			if cfg.Cache.Enabled {
				c, err := cache.New(ctx, cfg.Cache.URL)
				if err != nil {
					slog.Warn("snapshot not refreshed", "error", err)
				} else {
					defer c.Close()
					snaps := catalog.NewSnapshotCache(c, cfg.Catalog.Name, cfg.Cache.TTL)
					if err := snaps.Put(ctx, cat); err != nil {
						slog.Warn("snapshot not refreshed", "error", err)
					}
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sections, %d pages\n",
				len(cat.ListSections()), len(cat.Flatten()))
			return err
		},
	}
}
