// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"toil-cli/internal/issue"
	"toil-cli/pkg/toilfile"

	"github.com/spf13/cobra"
)

// newInitCommand creates `toil init`, which writes a starter toilfile.
func newInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a starter toilfile",
		Long: `Create a starter toilfile in the current directory.

The file lists two tasks and shows a few commonly overridden settings.
An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := toilfile.DefaultFileName + toilfile.ExtCUE
			if len(args) > 0 {
				filename = args[0]
			}
			return runInit(app, filename)
		},
	}
}

func runInit(app *App, filename string) error {
	if err := toilfile.WriteStarter(filename); err != nil {
		if errors.Is(err, toilfile.ErrExists) {
			return issue.NewErrorContext().
				WithOperation("create toilfile").
				WithResource(filename).
				WithSuggestions(
					"Edit the existing file instead",
					"Pass another path: toil init ./other/toilfile.cue",
				).
				Wrap(err).
				BuildError()
		}
		return err
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}
	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(app.stdout, "  1. Edit TASKS and override any settings you need")
	fmt.Fprintln(app.stdout, "  2. Run 'toil settings show' to check the resolved values")
	fmt.Fprintln(app.stdout, "  3. Run 'toil' to provision")
	return nil
}
