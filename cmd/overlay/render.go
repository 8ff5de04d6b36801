package main

import (
	"fmt"
	"os"

	"github.com/aretw0/overlay/internal/presentation/tui"
	"github.com/aretw0/overlay/pkg/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// formatTerminal renders Markdown through glamour.
const formatTerminal = "terminal"

var renderCmd = &cobra.Command{
	Use:   "render <page-id>",
	Short: "Render a page to stdout",
	Long: `Renders a page with its component overrides applied.
Formats: html, markdown, terminal (Markdown styled for the terminal).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = a.cfg.Format
		}

		if format != formatTerminal {
			out, err := a.site.Render(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}

		md, err := a.site.Render(cmd.Context(), args[0], render.FormatMarkdown)
		if err != nil {
			return err
		}

		width := 0
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil {
				width = w
			}
		}
		renderer, err := tui.NewRenderer(width)
		if err != nil {
			return fmt.Errorf("failed to create terminal renderer: %w", err)
		}
		styled, err := renderer(string(md))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), styled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "", "Output format: html, markdown or terminal (default from config)")
}
