// Package cmd provides the commands of the manual CLI.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-manual/internal/app"
	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/platform/config"
	"github.com/p-n-ai/pai-manual/internal/platform/logging"
)

// rootOptions holds the persistent flags and the configuration they resolve to.
type rootOptions struct {
	content string
	source  string
	debug   bool

	cfg *config.Config
}

// Execute runs the CLI, cancelling the command context on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates the root command for the manual CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Browse, search and maintain the help manual",
		Long: `manual reads the help manual from a content directory (or from PostgreSQL)
and lets you browse it, search titles and keywords, and check or publish content.

Environment variables use the MANUAL_ prefix, the same as the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.content, "content", "", "Content directory (default $MANUAL_CATALOG_PATH or ./content)")
	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "Catalog source: yaml or postgres (default $MANUAL_CATALOG_SOURCE or yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write debug logs to stderr")

	cmd.AddCommand(
		newBrowseCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
		newValidateCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)

	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	level := "warn"
	if o.debug {
		level = "debug"
	}
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.content != "" {
		cfg.Catalog.Path = o.content
	}
	if o.source != "" {
		cfg.Catalog.Source = strings.ToLower(o.source)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) open(ctx context.Context) (*app.Runtime, error) {
	return app.Open(ctx, o.cfg)
}

// level resolves a --level flag, falling back to MANUAL_DEFAULT_LEVEL.
func (o *rootOptions) level(flag string) (manual.Level, error) {
	if flag == "" {
		return o.cfg.DefaultLevel, nil
	}
	l, err := manual.ParseLevel(flag)
	if err != nil {
		return "", fmt.Errorf("--level: %w", err)
	}
	return l, nil
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
