// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"toil-cli/internal/activate"
	"toil-cli/internal/dag"
	"toil-cli/internal/defaults"
	"toil-cli/internal/fetch"
	"toil-cli/internal/fsutil"
	"toil-cli/internal/runtime"
	"toil-cli/pkg/settings"

	"github.com/charmbracelet/log"
)

type (
	// Task is one named provisioning step.
	Task struct {
		Name        string
		Description string
		// After lists tasks that must run first when they are requested too.
		After []string
		Run   func(ctx context.Context, env *Env) error
	}

	// Env is everything a task may touch.
	Env struct {
		Settings *settings.Namespace
		Exec     runtime.Executor
		Fetcher  fetch.Fetcher
		Script   *activate.Script
		Logger   *log.Logger
		// DryRun skips downloads and file writes; commands still go to Exec.
		DryRun bool
	}

	// Registry holds tasks in their canonical order.
	Registry struct {
		tasks  []Task
		byName map[string]int
	}
)

// NewRegistry creates a registry from tasks in canonical order. It panics
// on a duplicate name.
func NewRegistry(tasks ...Task) *Registry {
	r := &Registry{byName: make(map[string]int, len(tasks))}
	for _, t := range tasks {
		if _, dup := r.byName[t.Name]; dup {
			panic(fmt.Sprintf("task %q registered twice", t.Name))
		}
		r.byName[t.Name] = len(r.tasks)
		r.tasks = append(r.tasks, t)
	}
	return r
}

// Names returns the registered task names in canonical order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tasks))
	for i, t := range r.tasks {
		names[i] = t.Name
	}
	return names
}

// Tasks returns the registered tasks in canonical order.
func (r *Registry) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Get returns the task called name.
func (r *Registry) Get(name string) (Task, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Task{}, false
	}
	return r.tasks[i], true
}

// Validate checks that every requested name is registered.
func (r *Registry) Validate(names []string) error {
	for _, name := range names {
		if _, ok := r.byName[name]; !ok {
			return &UnknownTaskError{Name: name, Known: r.Names()}
		}
	}
	return nil
}

// Plan returns the requested tasks in execution order. Requested tasks keep
// canonical order except where a prerequisite forces otherwise; duplicates
// run once.
func (r *Registry) Plan(names []string) ([]Task, error) {
	if err := r.Validate(names); err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}

	g := dag.New()
	for _, t := range r.tasks {
		if requested[t.Name] {
			g.AddNode(t.Name)
		}
	}
	for _, t := range r.tasks {
		if !requested[t.Name] {
			continue
		}
		for _, before := range t.After {
			if requested[before] {
				g.AddEdge(before, t.Name)
			}
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("cannot order tasks: %w", err)
	}

	plan := make([]Task, len(order))
	for i, name := range order {
		plan[i] = r.tasks[r.byName[name]]
	}
	return plan, nil
}

// String returns a String setting or an *InvalidSettingError.
func (e *Env) String(name string) (string, error) {
	v, ok := e.Settings.Lookup(name)
	if !ok {
		return "", &InvalidSettingError{Name: name, Want: "a string", Missing: true}
	}
	s, ok := v.Str()
	if !ok {
		return "", &InvalidSettingError{Name: name, Want: "a string"}
	}
	return s, nil
}

// Strings returns a sequence-of-strings setting. A missing setting is
// empty.
func (e *Env) Strings(name string) ([]string, error) {
	v, ok := e.Settings.Lookup(name)
	if !ok {
		return nil, nil
	}
	items, ok := v.StringSlice()
	if !ok {
		return nil, &InvalidSettingError{Name: name, Want: "a list of strings"}
	}
	return items, nil
}

// Bool returns a boolean setting. A missing setting is false.
func (e *Env) Bool(name string) (bool, error) {
	v, ok := e.Settings.Lookup(name)
	if !ok {
		return false, nil
	}
	b, ok := v.Bool()
	if !ok {
		return false, &InvalidSettingError{Name: name, Want: "a boolean"}
	}
	return b, nil
}

func (e *Env) run(ctx context.Context, cmd runtime.Command) error {
	return e.Exec.Run(ctx, cmd)
}

func (e *Env) fetch(ctx context.Context, url, dest string) error {
	if e.DryRun {
		e.Logger.Info("would download", "url", url, "dest", dest)
		return nil
	}
	return e.Fetcher.Fetch(ctx, url, dest)
}

func (e *Env) writeFile(path, content string) error {
	if e.DryRun {
		e.Logger.Info("would write", "path", path, "bytes", len(content))
		return nil
	}
	return fsutil.WriteFile(path, []byte(content), 0o644)
}

func (e *Env) mkdirAll(dir string) error {
	if e.DryRun {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

func (e *Env) symlink(target, link string) error {
	if e.DryRun {
		e.Logger.Info("would link", "link", link, "target", target)
		return nil
	}
	return fsutil.ReplaceSymlink(target, link)
}

// untar extracts a gzip tarball into dir.
func (e *Env) untar(ctx context.Context, archive, dir string) error {
	return e.run(ctx, runtime.Command{Args: []string{"tar", "-C", dir, "-xzvpf", archive}})
}

func (e *Env) tmpPath(elem ...string) (string, error) {
	tmp, err := e.String(defaults.TmpBase)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{tmp}, elem...)...), nil
}
