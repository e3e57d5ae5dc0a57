// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"toil-cli/internal/config"
	"toil-cli/internal/dag"
	"toil-cli/internal/fetch"
	"toil-cli/internal/issue"
	"toil-cli/internal/provision"
	"toil-cli/internal/runtime"
	"toil-cli/internal/task"

	"github.com/spf13/cobra"
)

// commandNotFoundExitCode is the status shells report for a missing program.
const commandNotFoundExitCode = 127

// newRunCommand creates `toil run`, an explicit alias for the root action.
func newRunCommand(app *App, opts *runOptions) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve settings and provision the requested tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd.Context(), app, opts)
		},
	}
	addRunFlags(runCmd, opts)
	return runCmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "log every command without running it or touching the filesystem")
	cmd.Flags().BoolVar(&opts.keepTemp, "keep-temp", false, "keep TMP_BASE after the run")
}

// runProvision resolves the namespace and hands it to the provisioner.
func runProvision(ctx context.Context, app *App, opts *runOptions) error {
	s, err := app.newSession(ctx, opts)
	if err != nil {
		app.renderIssue(err, config.ColorSchemeAuto)
		return err
	}

	ns, err := app.resolveSettings(ctx, s, opts)
	if err != nil {
		app.renderIssue(err, s.cfg.UI.ColorScheme)
		return err
	}

	p, err := app.newProvisioner(s, opts)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Dry run: commands are logged, nothing is executed or written."))
	}

	result, err := p.Run(ctx, ns)
	if err != nil {
		classified := classifyProvisionError(err)
		app.renderIssue(classified, s.cfg.UI.ColorScheme)
		s.logger.Debug(formatErrorForDisplay(classified, true))
		return classified
	}

	fmt.Fprintf(app.stdout, "%s Provisioned %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(strings.Join(result.Tasks, ", ")))
	switch {
	case result.ActivateWritten:
		fmt.Fprintf(app.stdout, "%s source %s\n", SubtitleStyle.Render("Activate with:"), result.ActivateScript)
	case !opts.dryRun:
		fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Activation script not written:"), result.ActivateScript)
	}
	return nil
}

// classifyProvisionError maps provisioning failures to issue catalogue IDs and
// wraps them as actionable errors. It preserves the original error chain.
func classifyProvisionError(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	ec := issue.NewErrorContext().WithOperation("provision environment")

	var (
		taskErr   *provision.TaskError
		unknown   *task.UnknownTaskError
		invalid   *task.InvalidSettingError
		execErr   *runtime.ExecError
		statusErr *fetch.StatusError
		exitCode  = 1
	)
	if errors.As(err, &taskErr) {
		ec = ec.WithOperation("run task " + taskErr.Task)
	}

	switch {
	case errors.Is(err, provision.ErrNoTasks):
		ec = ec.WithIssue(issue.NoTasksId).
			WithSuggestion("Set TASKS in your toilfile, e.g. TASKS: [\"virtualenv\", \"pip\"]")
	case errors.As(err, &unknown):
		ec = ec.WithIssue(issue.UnknownTaskId).
			WithSuggestions(
				"Known tasks: "+strings.Join(unknown.Known, ", "),
				"Run 'toil tasks' to list each task with its prerequisites",
			)
	case errors.Is(err, dag.ErrCycle):
		ec = ec.WithIssue(issue.DependencyCycleId)
	case errors.As(err, &invalid):
		ec = ec.WithIssue(issue.InvalidSettingId).
			WithResource(invalid.Name).
			WithSuggestion("Run 'toil settings get " + invalid.Name + "' to inspect the resolved value")
	case errors.Is(err, exec.ErrNotFound):
		ec = ec.WithIssue(issue.ProgramNotFoundId)
		exitCode = commandNotFoundExitCode
	case errors.As(err, &execErr):
		if execErr.ExitCode == commandNotFoundExitCode {
			ec = ec.WithIssue(issue.ProgramNotFoundId)
		} else {
			ec = ec.WithIssue(issue.CommandFailedId)
		}
		if execErr.ExitCode > 0 {
			exitCode = int(execErr.ExitCode)
		}
	case errors.As(err, &statusErr):
		ec = ec.WithIssue(issue.DownloadFailedId).WithResource(statusErr.URL)
	case errors.Is(err, os.ErrPermission):
		ec = ec.WithIssue(issue.PermissionDeniedId)
	}

	return &ExitError{Code: exitCode, Err: ec.Wrap(err).BuildError()}
}
