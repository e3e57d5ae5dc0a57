// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"toil-cli/internal/config"
	"toil-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `toil config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, opts *runOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage toil configuration",
		Long: `Manage toil configuration.

Configuration is stored in:
  - Linux: ~/.config/toil/config.cue
  - macOS: ~/Library/Application Support/toil/config.cue
  - Windows: %APPDATA%\toil\config.cue

TOIL_* environment variables override file values, e.g. TOIL_MAX_DEPTH=5
or TOIL_UI_VERBOSE=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: opts.configPath})
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *runOptions) error {
	cfg, source, err := app.Config.LoadWithSource(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		err = withIssue(err, issue.ConfigLoadFailedId)
		app.renderIssue(err, config.ColorSchemeAuto)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := ValueStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if source != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), source)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("toilfile"), valueStyle.Render(cfg.Toilfile))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("runtime"), valueStyle.Render(string(cfg.Runtime)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("max_depth"), valueStyle.Render(fmt.Sprint(cfg.MaxDepth)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("keep_temp"), valueStyle.Render(fmt.Sprint(cfg.KeepTemp)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))

	return nil
}
