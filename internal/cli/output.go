package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
)

func printLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// spin runs fn behind a spinner on stderr when attached to a terminal.
func (app *App) spin(cmd *cobra.Command, message string, fn func() error) error {
	return formatter.WithSpinner(cmd.ErrOrStderr(), app.interactive(), message, fn)
}

// printMarkdown renders agent output for the terminal, or passes it through
// unchanged when --raw is set.
func printMarkdown(cmd *cobra.Command, raw bool, text string) {
	if raw {
		printLine(cmd, text)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.RenderMarkdown(text, 100))
}
