// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"toil-cli/internal/issue"
	"toil-cli/internal/task"
)

func TestTasks_List(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, Dependencies{})
	if err := app.execute(t, "tasks"); err != nil {
		t.Fatalf("tasks error: %v", err)
	}

	out := app.stdout.String()
	last := -1
	for _, name := range task.Builtin().Names() {
		i := strings.Index(out, name)
		if i < 0 {
			t.Errorf("tasks output should list %q:\n%s", name, out)
			continue
		}
		if i < last {
			t.Errorf("task %q is out of canonical order:\n%s", name, out)
		}
		last = i
	}
	if !strings.Contains(out, "(after virtualenv)") {
		t.Errorf("tasks output should show prerequisites:\n%s", out)
	}
}

func TestTasks_Plan(t *testing.T) {
	projectDir(t, `TASKS: ["coffeescript", "gitignore", "nodejs", "pip", "virtualenv"]`)
	app := newTestApp(t, Dependencies{})

	if err := app.execute(t, "tasks", "--plan"); err != nil {
		t.Fatalf("tasks --plan error: %v", err)
	}

	want := "1. gitignore\n2. virtualenv\n3. pip\n4. nodejs\n5. coffeescript\n"
	if got := app.stdout.String(); got != want {
		t.Errorf("tasks --plan =\n%s\nwant\n%s", got, want)
	}
}

func TestTasks_PlanUnknownTask(t *testing.T) {
	projectDir(t, `TASKS: ["rust"]`)
	app := newTestApp(t, Dependencies{})

	err := app.execute(t, "tasks", "--plan")

	var unknown *task.UnknownTaskError
	if !errors.As(err, &unknown) || unknown.Name != "rust" {
		t.Fatalf("tasks --plan error = %v, want UnknownTaskError", err)
	}
	if is, ok := issue.Catalogued(err); !ok || is.Id() != issue.UnknownTaskId {
		t.Errorf("error should carry UnknownTaskId")
	}
}
