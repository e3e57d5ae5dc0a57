// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualExecutor runs each command line through the mvdan/sh interpreter.
// Shell builtins work without a system shell; other programs are still
// looked up on PATH.
type VirtualExecutor struct {
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
	user   string
}

// NewVirtualExecutor creates a virtual executor.
func NewVirtualExecutor(opts Options) *VirtualExecutor {
	opts = opts.withDefaults()
	return &VirtualExecutor{
		logger: opts.Logger,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		user:   currentUsername(),
	}
}

// Name returns the runtime name.
func (e *VirtualExecutor) Name() string { return string(RuntimeTypeVirtual) }

// Run quotes cmd into a command line and interprets it.
func (e *VirtualExecutor) Run(ctx context.Context, cmd Command) error {
	argv, err := cmd.Argv(e.user)
	if err != nil {
		return err
	}
	logCommand(e.logger, argv, cmd.Dir)

	line, err := ShellLine(argv)
	if err != nil {
		return &ExecError{Args: argv, Err: err}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "command")
	if err != nil {
		return &ExecError{Args: argv, Err: fmt.Errorf("failed to parse command: %w", err)}
	}

	dir := cmd.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return &ExecError{Args: argv, Err: fmt.Errorf("failed to get working directory: %w", err)}
		}
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, e.stdout, e.stderr),
	)
	if err != nil {
		return &ExecError{Args: argv, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		if code, ok := exitCodeOf(err); ok {
			return &ExecError{Args: argv, ExitCode: code, Err: err}
		}
		return &ExecError{Args: argv, Err: fmt.Errorf("command execution failed: %w", err)}
	}
	return nil
}
