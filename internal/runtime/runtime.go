// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// RuntimeTypeNative runs commands with os/exec.
	RuntimeTypeNative RuntimeType = "native"
	// RuntimeTypeVirtual runs commands in the embedded shell interpreter.
	RuntimeTypeVirtual RuntimeType = "virtual"
	// RuntimeTypeDryRun logs commands without running them.
	RuntimeTypeDryRun RuntimeType = "dry-run"
)

var (
	// ErrEmptyCommand is returned when a Command has no arguments.
	ErrEmptyCommand = errors.New("empty command")

	// ErrUnknownRuntime is returned by New for an unsupported RuntimeType.
	ErrUnknownRuntime = errors.New("unknown runtime")
)

type (
	// RuntimeType names an Executor implementation.
	RuntimeType string

	// Command is a single external program invocation.
	Command struct {
		// Args is the program followed by its arguments.
		Args []string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// User runs the command through sudo when it names someone other
		// than the current user.
		User string
	}

	// Executor runs commands, failing fast on a non-zero exit status.
	Executor interface {
		Name() string
		Run(ctx context.Context, cmd Command) error
	}

	// Options configures the executors built by New.
	Options struct {
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExecError reports a command that could not start or exited non-zero.
	ExecError struct {
		Args     []string
		ExitCode ExitCode
		Err      error
	}
)

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Err != nil && e.ExitCode == 0 {
		return fmt.Sprintf("command failed: %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("command failed with exit code %s: %s", e.ExitCode, strings.Join(e.Args, " "))
}

// Unwrap returns the underlying cause.
func (e *ExecError) Unwrap() error { return e.Err }

// String renders the command as it is logged: arguments joined by spaces.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Argv returns the arguments to execute, including the sudo prefix when
// User is set to someone other than currentUser.
func (c Command) Argv(currentUser string) ([]string, error) {
	if len(c.Args) == 0 || c.Args[0] == "" {
		return nil, ErrEmptyCommand
	}
	if c.User == "" || c.User == currentUser {
		return c.Args, nil
	}
	return append([]string{"sudo", "-u", c.User}, c.Args...), nil
}

// ShellLine quotes argv into a single bash command line.
func ShellLine(argv []string) (string, error) {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %d: %w", i, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

// New builds the executor for typ.
func New(typ RuntimeType, opts Options) (Executor, error) {
	opts = opts.withDefaults()
	switch typ {
	case RuntimeTypeNative, "":
		return NewNativeExecutor(opts), nil
	case RuntimeTypeVirtual:
		return NewVirtualExecutor(opts), nil
	case RuntimeTypeDryRun:
		return NewDryRunExecutor(opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected native or virtual)", ErrUnknownRuntime, typ)
	}
}

// ParseRuntimeType validates a runtime name from configuration.
func ParseRuntimeType(s string) (RuntimeType, error) {
	switch typ := RuntimeType(s); typ {
	case RuntimeTypeNative, RuntimeTypeVirtual, RuntimeTypeDryRun:
		return typ, nil
	default:
		return "", fmt.Errorf("%w: %q (expected native or virtual)", ErrUnknownRuntime, s)
	}
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// currentUsername returns the login name of the process owner, or "" when
// it cannot be determined (which forces sudo for any explicit User).
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

func logCommand(logger *log.Logger, argv []string, dir string) {
	if dir != "" {
		logger.Info("$ "+strings.Join(argv, " "), "dir", dir)
		return
	}
	logger.Info("$ " + strings.Join(argv, " "))
}
