// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"toil-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app. Running the root
// command without a subcommand provisions, like `toil run`.
func NewRootCommand(app *App) *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "toil",
		Short: "Provision a project environment from layered settings",
		Long: TitleStyle.Render("toil") + SubtitleStyle.Render(" - provision a project environment from layered settings") + `

toil merges a project's toilfile over built-in defaults, resolves every
$NAME reference between them, and runs the tasks listed in TASKS:
virtualenv, pip, ruby, gem, compass, nodejs, coffeescript, gitignore
and untar. The result is an env/ directory and an activate.sh script.

` + SubtitleStyle.Render("Examples:") + `
  toil                      Provision using ./toilfile(.cue|.toml)
  toil --dry-run            Show the commands without running them
  toil settings show        Print every resolved setting
  toil settings get ENV_ROOT
  toil tasks                List the available tasks
  toil init                 Create a starter toilfile`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd.Context(), app, opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/toil/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&opts.settingsFile, "settings-file", "s", "", "toilfile to merge over the defaults (default is ./toilfile)")
	addRunFlags(rootCmd, opts)

	rootCmd.AddCommand(newRunCommand(app, opts))
	rootCmd.AddCommand(newSettingsCommand(app, opts))
	rootCmd.AddCommand(newTasksCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))
	rootCmd.AddCommand(newInitCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the App and runs the root command. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			fang.DefaultErrorHandler(w, styles, errors.New(formatErrorForDisplay(err, false)))
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose adds the error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
