package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/render"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var level, style string
	var width int
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <section> <subsection>",
		Short: "Print one page of the manual",
		Long: `Print a page at the chosen level. Pages without content for that level show
their básico content.

Examples:
  manual show campaigns create
  manual show campaigns create --level avanzado --raw`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := root.level(level)
			if err != nil {
				return err
			}

			rt, err := root.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			_, sub, ok := rt.Catalog.Lookup(args[0], args[1])
			if !ok {
				return fmt.Errorf("%w: %s/%s", manual.ErrInvalidTarget, args[0], args[1])
			}
			content := manual.ResolveContent(sub, l)

			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
				return err
			}

			if style == "" {
				style = render.StylePlain
				if stdoutIsTerminal() {
					style = render.StyleDark
				}
			}
			r, err := render.NewTerminalRenderer(style, width)
			if err != nil {
				return err
			}
			out, err := r.Render(content)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Reading level (default $MANUAL_DEFAULT_LEVEL)")
	cmd.Flags().StringVar(&style, "style", "", "Style: dark, light or notty (default dark on a terminal)")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap width")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")

	return cmd
}
