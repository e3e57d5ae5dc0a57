// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"toil-cli/internal/config"
	"toil-cli/pkg/settings"

	"github.com/spf13/cobra"
)

// newSettingsCommand creates the `toil settings` command tree. Both
// subcommands print the namespace a run would see, without running tasks.
func newSettingsCommand(app *App, opts *runOptions) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the resolved settings",
		Long: `Inspect the resolved settings.

Settings are the built-in defaults with the toilfile merged over them and
every $NAME reference resolved. References to names that are not declared
are left in place; they are highlighted by 'toil settings show'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every resolved setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd.Context(), app, opts)
		},
	})

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "get <NAME>",
		Short: "Print one resolved setting",
		Long: `Print one resolved setting the way it is spliced into templates:
strings verbatim, lists space separated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getSetting(cmd.Context(), app, opts, args[0])
		},
	})

	return settingsCmd
}

func loadNamespace(ctx context.Context, app *App, opts *runOptions) (*settings.Namespace, error) {
	s, err := app.newSession(ctx, opts)
	if err != nil {
		app.renderIssue(err, config.ColorSchemeAuto)
		return nil, err
	}
	ns, err := app.resolveSettings(ctx, s, opts)
	if err != nil {
		app.renderIssue(err, s.cfg.UI.ColorScheme)
		return nil, err
	}
	return ns, nil
}

func showSettings(ctx context.Context, app *App, opts *runOptions) error {
	ns, err := loadNamespace(ctx, app, opts)
	if err != nil {
		return err
	}

	var unresolved []string
	for _, name := range ns.Names() {
		v, _ := ns.Lookup(name)
		style := ValueStyle
		if refs := ns.Unresolved(name); len(refs) > 0 {
			style = unresolvedStyle
			unresolved = append(unresolved, fmt.Sprintf("%s ($%s)", name, strings.Join(refs, ", $")))
		}
		fmt.Fprintf(app.stdout, "%s = %s\n", CmdStyle.Render(name), style.Render(v.GoString()))
	}

	for _, u := range unresolved {
		fmt.Fprintf(app.stderr, "%s %s\n", WarningStyle.Render("Unresolved reference:"), u)
	}
	return nil
}

func getSetting(ctx context.Context, app *App, opts *runOptions, name string) error {
	ns, err := loadNamespace(ctx, app, opts)
	if err != nil {
		return err
	}

	v, ok := ns.Lookup(name)
	if !ok {
		return &ExitError{Code: 1, Err: fmt.Errorf("setting %s is not declared", name)}
	}
	fmt.Fprintln(app.stdout, v.Text())
	return nil
}
