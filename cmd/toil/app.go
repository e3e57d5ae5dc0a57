// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"toil-cli/internal/config"
	"toil-cli/internal/defaults"
	"toil-cli/internal/fetch"
	"toil-cli/internal/issue"
	"toil-cli/internal/provision"
	"toil-cli/internal/runtime"
	"toil-cli/internal/task"
	"toil-cli/pkg/settings"
	"toil-cli/pkg/toilfile"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and delegates through it.
	App struct {
		Config   ConfigProvider
		Registry *task.Registry
		Fetcher  fetch.Fetcher
		executor runtime.Executor
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Registry *task.Registry
		Fetcher  fetch.Fetcher
		// Executor replaces the configured runtime for every run, dry runs included.
		Executor runtime.Executor
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		LoadWithSource(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// runOptions are the flag values shared by the commands that resolve settings.
	runOptions struct {
		configPath   string
		settingsFile string
		verbose      bool
		dryRun       bool
		keepTemp     bool
	}

	// session is the per-invocation state derived from flags and configuration.
	session struct {
		cfg    *config.Config
		logger *log.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = task.Builtin()
	}

	return &App{
		Config:   deps.Config,
		Registry: deps.Registry,
		Fetcher:  deps.Fetcher,
		executor: deps.Executor,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// newSession loads configuration and builds the logger. Flags win over
// configured values.
func (a *App) newSession(ctx context.Context, opts *runOptions) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return nil, withIssue(err, issue.ConfigLoadFailedId)
	}

	level := log.InfoLevel
	if opts.verbose || cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})

	return &session{cfg: cfg, logger: logger}, nil
}

// resolveSettings merges the toilfile over the built-in defaults. A missing
// toilfile is only an error when the path was given explicitly.
func (a *App) resolveSettings(ctx context.Context, s *session, opts *runOptions) (*settings.Namespace, error) {
	base, err := defaults.New()
	if err != nil {
		return nil, err
	}

	path := opts.settingsFile
	explicit := path != ""
	if !explicit {
		path = s.cfg.Toilfile
	}
	if !explicit && path == toilfile.DefaultFileName {
		if path, err = toilfile.DefaultPath(); err != nil {
			return nil, err
		}
	}

	override, err := toilfile.Load(ctx, path)
	switch {
	case err == nil:
		s.logger.Debug("loaded toilfile", "path", override.Name())
	case errors.Is(err, toilfile.ErrNotFound) && !explicit:
		s.logger.Debug("no toilfile, using built-in defaults", "path", path)
		override = nil
	case errors.Is(err, toilfile.ErrNotFound):
		return nil, issue.NewErrorContext().
			WithOperation("load toilfile").
			WithResource(path).
			WithSuggestions(
				"Check the --settings-file path",
				"Run 'toil init' to create a starter toilfile",
			).
			WithIssue(issue.ToilfileNotFoundId).
			Wrap(err).
			BuildError()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, issue.NewErrorContext().
			WithOperation("load toilfile").
			WithResource(path).
			WithSuggestion("Fix the reported line and run again").
			WithIssue(issue.ToilfileParseErrorId).
			Wrap(err).
			BuildError()
	}

	return settings.Merge(override, base, settings.WithMaxDepth(s.cfg.MaxDepth)), nil
}

// newExecutor returns the injected executor, a recorder for dry runs, or the
// configured runtime.
func (a *App) newExecutor(s *session, dryRun bool) (runtime.Executor, error) {
	if a.executor != nil {
		return a.executor, nil
	}
	if dryRun {
		return runtime.NewDryRunExecutor(s.logger), nil
	}
	typ, err := runtime.ParseRuntimeType(string(s.cfg.Runtime))
	if err != nil {
		return nil, err
	}
	return runtime.New(typ, runtime.Options{
		Logger: s.logger,
		Stdout: a.stdout,
		Stderr: a.stderr,
	})
}

func (a *App) newProvisioner(s *session, opts *runOptions) (*provision.Provisioner, error) {
	exec, err := a.newExecutor(s, opts.dryRun)
	if err != nil {
		return nil, err
	}
	return provision.New(provision.Options{
		Exec:     exec,
		Fetcher:  a.Fetcher,
		Registry: a.Registry,
		Logger:   s.logger,
		KeepTemp: opts.keepTemp || s.cfg.KeepTemp,
		DryRun:   opts.dryRun,
	}), nil
}

// renderIssue prints the catalogued explanation attached to err, if any.
func (a *App) renderIssue(err error, scheme config.ColorScheme) {
	is, ok := issue.Catalogued(err)
	if !ok {
		return
	}
	rendered, renderErr := is.Render(string(scheme))
	if renderErr != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// withIssue attaches a catalogue entry to an ActionableError that has none,
// or wraps any other error in one.
func withIssue(err error, id issue.Id) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if ae.Issue == 0 {
			ae.Issue = id
		}
		return err
	}
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithIssue(id).
		Wrap(err).
		BuildError()
}
