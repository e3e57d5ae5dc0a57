// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"toil-cli/internal/config"
	"toil-cli/internal/issue"
	"toil-cli/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.MaxDepth = 5
	app := newTestApp(t, Dependencies{Config: &stubConfigProvider{cfg: cfg, source: "/etc/toil/config.cue"}})

	if err := app.execute(t, "config", "show"); err != nil {
		t.Fatalf("config show error: %v", err)
	}

	out := app.stdout.String()
	for _, want := range []string{"/etc/toil/config.cue", "max_depth: 5", "runtime: native", "color_scheme: auto"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show should contain %q:\n%s", want, out)
		}
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, Dependencies{})
	if err := app.execute(t, "config", "show"); err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(app.stdout.String(), "(using defaults)") {
		t.Errorf("config show should report defaults:\n%s", app.stdout)
	}
}

func TestConfigShow_LoadError(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, Dependencies{Config: &stubConfigProvider{err: errors.New("broken")}})
	err := app.execute(t, "config", "show")

	if is, ok := issue.Catalogued(err); !ok || is.Id() != issue.ConfigLoadFailedId {
		t.Fatalf("config show error = %v, want ConfigLoadFailedId", err)
	}
	if !strings.Contains(app.stderr.String(), "Failed to load configuration") {
		t.Errorf("stderr should render the issue:\n%s", app.stderr)
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.KeepTemp = true
	app := newTestApp(t, Dependencies{Config: &stubConfigProvider{cfg: cfg}})

	if err := app.execute(t, "config", "dump"); err != nil {
		t.Fatalf("config dump error: %v", err)
	}
	if got, want := app.stdout.String(), config.GenerateCUE(cfg); got != want {
		t.Errorf("config dump =\n%s\nwant\n%s", got, want)
	}
}

func TestConfigInitAndPath(t *testing.T) {
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	app := newTestApp(t, Dependencies{})
	if err := app.execute(t, "config", "path"); err != nil {
		t.Fatalf("config path error: %v", err)
	}
	want := filepath.Join(dir, "config.cue")
	if got := strings.TrimSpace(app.stdout.String()); got != want {
		t.Errorf("config path = %q, want %q", got, want)
	}

	app = newTestApp(t, Dependencies{})
	if err := app.execute(t, "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if got := testutil.MustReadFile(t, want); got != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config init wrote:\n%s", got)
	}
}
