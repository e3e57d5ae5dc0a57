// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
	"os/exec"

	"github.com/charmbracelet/log"
)

// NativeExecutor runs commands as host processes, passing stdout and
// stderr through.
type NativeExecutor struct {
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
	user   string
}

// NewNativeExecutor creates a native executor.
func NewNativeExecutor(opts Options) *NativeExecutor {
	opts = opts.withDefaults()
	return &NativeExecutor{
		logger: opts.Logger,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		user:   currentUsername(),
	}
}

// Name returns the runtime name.
func (e *NativeExecutor) Name() string { return string(RuntimeTypeNative) }

// Run executes cmd and waits for it.
func (e *NativeExecutor) Run(ctx context.Context, cmd Command) error {
	argv, err := cmd.Argv(e.user)
	if err != nil {
		return err
	}
	logCommand(e.logger, argv, cmd.Dir)

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Dir = cmd.Dir
	c.Stdout = e.stdout
	c.Stderr = e.stderr

	if err := c.Run(); err != nil {
		code, _ := exitCodeOf(err)
		return &ExecError{Args: argv, ExitCode: code, Err: err}
	}
	return nil
}
