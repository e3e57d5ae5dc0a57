// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
)

// ErrNoTasks is returned when the namespace does not declare TASKS.
var ErrNoTasks = errors.New("no tasks specified")

// TaskError reports the task that failed a run.
type TaskError struct {
	Task string
	Err  error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.Task, e.Err)
}

// Unwrap returns the task's error.
func (e *TaskError) Unwrap() error { return e.Err }
