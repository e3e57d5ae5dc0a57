// SPDX-License-Identifier: MPL-2.0

package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTask is the sentinel wrapped by UnknownTaskError.
	ErrUnknownTask = errors.New("unknown task")

	// ErrInvalidSetting is the sentinel wrapped by InvalidSettingError.
	ErrInvalidSetting = errors.New("invalid setting")
)

type (
	// UnknownTaskError is returned when a requested task is not registered.
	UnknownTaskError struct {
		Name  string
		Known []string
	}

	// InvalidSettingError is returned when a setting a task needs is missing
	// or holds the wrong kind of value.
	InvalidSettingError struct {
		Name string
		// Want describes the expected shape, e.g. "a string".
		Want string
		// Missing is true when the setting is not declared at all.
		Missing bool
	}
)

// Error implements the error interface.
func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task specified: %s (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Unwrap returns ErrUnknownTask.
func (e *UnknownTaskError) Unwrap() error { return ErrUnknownTask }

// Error implements the error interface.
func (e *InvalidSettingError) Error() string {
	if e.Missing {
		return fmt.Sprintf("setting %s is not defined (want %s)", e.Name, e.Want)
	}
	return fmt.Sprintf("setting %s must be %s", e.Name, e.Want)
}

// Unwrap returns ErrInvalidSetting.
func (e *InvalidSettingError) Unwrap() error { return ErrInvalidSetting }
