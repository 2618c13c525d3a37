package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-manual/internal/render"
	"github.com/p-n-ai/pai-manual/internal/tui"
)

func newBrowseCmd(root *rootOptions) *cobra.Command {
	var level, style string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive manual browser",
		Long: `Open the manual in a full-screen terminal browser.

Keys:
  n / p        next / previous page
  1 / 2 / 3    básico / intermedio / avanzado
  ↑ ↓ enter    move in the topic tree and open a page
  space        expand or collapse a section
  /            search titles and keywords
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := root.level(level)
			if err != nil {
				return err
			}

			rt, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			m, err := tui.New(rt.Catalog, tui.Options{Level: l, Style: style})
			if err != nil {
				return err
			}

			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Initial reading level (default $MANUAL_DEFAULT_LEVEL)")
	cmd.Flags().StringVar(&style, "style", render.StyleDark, "Content style: dark, light or notty")

	return cmd
}
