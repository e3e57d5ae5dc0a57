// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// DryRunExecutor logs and records commands without running them.
type DryRunExecutor struct {
	logger *log.Logger

	mu       sync.Mutex
	commands []Command
}

// NewDryRunExecutor creates a dry-run executor. A nil logger discards.
func NewDryRunExecutor(logger *log.Logger) *DryRunExecutor {
	if logger == nil {
		logger = Options{}.withDefaults().Logger
	}
	return &DryRunExecutor{logger: logger}
}

// Name returns the runtime name.
func (e *DryRunExecutor) Name() string { return string(RuntimeTypeDryRun) }

// Run records cmd. It fails only for an empty command.
func (e *DryRunExecutor) Run(ctx context.Context, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// The dry run shows the sudo prefix for any explicit user.
	argv, err := cmd.Argv("")
	if err != nil {
		return err
	}
	logCommand(e.logger, argv, cmd.Dir)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, Command{Args: slices.Clone(cmd.Args), Dir: cmd.Dir, User: cmd.User})
	return nil
}

// Commands returns the recorded commands in call order.
func (e *DryRunExecutor) Commands() []Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.commands)
}
