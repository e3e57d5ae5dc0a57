// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"toil-cli/internal/activate"
	"toil-cli/internal/defaults"
	"toil-cli/internal/fetch"
	"toil-cli/internal/runtime"
	"toil-cli/internal/task"
	"toil-cli/pkg/settings"

	"github.com/charmbracelet/log"
)

type (
	// Options configures a Provisioner. Exec is required; the rest default
	// to the builtin tasks, an HTTP fetcher and a discarding logger.
	Options struct {
		Exec     runtime.Executor
		Fetcher  fetch.Fetcher
		Registry *task.Registry
		Logger   *log.Logger
		// KeepTemp leaves TMP_BASE in place after the run.
		KeepTemp bool
		// DryRun skips downloads and file writes.
		DryRun bool
	}

	// Provisioner runs the tasks a namespace requests.
	Provisioner struct {
		exec     runtime.Executor
		fetcher  fetch.Fetcher
		registry *task.Registry
		logger   *log.Logger
		keepTemp bool
		dryRun   bool
	}

	// Result describes a completed run.
	Result struct {
		// Tasks are the tasks that ran, in order.
		Tasks []string
		// ActivateScript is the activation script path.
		ActivateScript string
		// ActivateWritten is false when writing the script failed or was
		// skipped by a dry run.
		ActivateWritten bool
	}
)

// New creates a Provisioner.
func New(opts Options) *Provisioner {
	p := &Provisioner{
		exec:     opts.Exec,
		fetcher:  opts.Fetcher,
		registry: opts.Registry,
		logger:   opts.Logger,
		keepTemp: opts.KeepTemp,
		dryRun:   opts.DryRun,
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	if p.fetcher == nil {
		p.fetcher = fetch.NewHTTPFetcher(nil, p.logger)
	}
	if p.registry == nil {
		p.registry = task.Builtin()
	}
	return p
}

// Plan validates TASKS and returns the task names in execution order
// without running anything.
func (p *Provisioner) Plan(ns *settings.Namespace) ([]string, error) {
	requested, err := requestedTasks(ns)
	if err != nil {
		return nil, err
	}
	plan, err := p.registry.Plan(requested)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(plan))
	for i, t := range plan {
		names[i] = t.Name
	}
	return names, nil
}

// Run provisions the environment described by ns.
func (p *Provisioner) Run(ctx context.Context, ns *settings.Namespace) (result *Result, err error) {
	defer func() {
		if err != nil {
			p.logger.Debug("settings at failure\n" + ns.Dump())
		}
	}()

	requested, err := requestedTasks(ns)
	if err != nil {
		return nil, err
	}
	plan, err := p.registry.Plan(requested)
	if err != nil {
		return nil, err
	}

	env := &task.Env{
		Settings: ns,
		Exec:     p.exec,
		Fetcher:  p.fetcher,
		Script:   &activate.Script{},
		Logger:   p.logger,
		DryRun:   p.dryRun,
	}

	tmp, err := env.String(defaults.TmpBase)
	if err != nil {
		return nil, err
	}
	envRoot, err := env.String(defaults.EnvRoot)
	if err != nil {
		return nil, err
	}
	scriptPath, err := env.String(defaults.ActivateScript)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer p.removeTemp(tmp)

	env.Script.AddPath(filepath.Join(envRoot, "bin"))

	result = &Result{ActivateScript: scriptPath}
	for _, t := range plan {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		p.logger.Info("running task", "task", t.Name)
		if err := t.Run(ctx, env); err != nil {
			return result, &TaskError{Task: t.Name, Err: err}
		}
		result.Tasks = append(result.Tasks, t.Name)
	}

	result.ActivateWritten = p.writeActivateScript(env.Script, scriptPath)
	return result, nil
}

func (p *Provisioner) writeActivateScript(script *activate.Script, path string) bool {
	if p.dryRun {
		p.logger.Info("would write activation script", "path", path)
		return false
	}
	if err := script.WriteFile(path); err != nil {
		p.logger.Warn("can't write activation script", "path", path, "err", err)
		return false
	}
	p.logger.Info("wrote activation script", "path", path)
	return true
}

func (p *Provisioner) removeTemp(tmp string) {
	if p.keepTemp {
		p.logger.Info("keeping temp dir", "path", tmp)
		return
	}
	if err := os.RemoveAll(tmp); err != nil {
		p.logger.Warn("failed to remove temp dir", "path", tmp, "err", err)
	}
}

func requestedTasks(ns *settings.Namespace) ([]string, error) {
	v, ok := ns.Lookup(defaults.Tasks)
	if !ok {
		return nil, ErrNoTasks
	}
	names, ok := v.StringSlice()
	if !ok {
		return nil, &task.InvalidSettingError{Name: defaults.Tasks, Want: "a list of task names"}
	}
	return names, nil
}
