// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"toil-cli/internal/config"
	"toil-cli/internal/provision"

	"github.com/spf13/cobra"
)

// newTasksCommand creates `toil tasks`, which lists the registered tasks in
// canonical order. With --plan it prints the order a run would use instead.
func newTasksCommand(app *App, opts *runOptions) *cobra.Command {
	var plan bool

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plan {
				return showPlan(cmd.Context(), app, opts)
			}
			listTasks(app)
			return nil
		},
	}
	tasksCmd.Flags().BoolVar(&plan, "plan", false, "print the execution order of the resolved TASKS")

	return tasksCmd
}

func listTasks(app *App) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Available tasks"))
	fmt.Fprintln(app.stdout)
	for _, t := range app.Registry.Tasks() {
		line := fmt.Sprintf("  %-14s %s", CmdStyle.Render(t.Name), t.Description)
		if len(t.After) > 0 {
			line += SubtitleStyle.Render(" (after " + strings.Join(t.After, ", ") + ")")
		}
		fmt.Fprintln(app.stdout, line)
	}
}

func showPlan(ctx context.Context, app *App, opts *runOptions) error {
	ns, err := loadNamespace(ctx, app, opts)
	if err != nil {
		return err
	}

	p := provision.New(provision.Options{Registry: app.Registry, Fetcher: app.Fetcher})
	names, err := p.Plan(ns)
	if err != nil {
		classified := classifyProvisionError(err)
		app.renderIssue(classified, config.ColorSchemeAuto)
		return classified
	}
	for i, name := range names {
		fmt.Fprintf(app.stdout, "%d. %s\n", i+1, CmdStyle.Render(name))
	}
	return nil
}
