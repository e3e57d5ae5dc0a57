// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toil-cli/internal/issue"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Toilfile != "toilfile" {
		t.Errorf("Toilfile = %q, want %q", cfg.Toilfile, "toilfile")
	}
	if cfg.Runtime != RuntimeNative {
		t.Errorf("Runtime = %q, want %q", cfg.Runtime, RuntimeNative)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.MaxDepth)
	}
	if cfg.KeepTemp {
		t.Error("KeepTemp should default to false")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = false: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		SetConfigDirOverride("/custom/toil")
		defer Reset()

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if dir != "/custom/toil" {
			t.Errorf("ConfigDir() = %q, want %q", dir, "/custom/toil")
		}
	})

	t.Run("ends with app name", func(t *testing.T) {
		Reset()
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if filepath.Base(dir) != AppName {
			t.Errorf("ConfigDir() = %q, want a path ending in %q", dir, AppName)
		}
	})
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, source, err := NewProvider().LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty", source)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
runtime: "virtual"
max_depth: 5
ui: verbose: true
`)

	cfg, source, err := NewProvider().LoadWithSource(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}

	want := DefaultConfig()
	want.Runtime = RuntimeVirtual
	want.MaxDepth = 5
	want.UI.Verbose = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `toilfile: "settings/toilfile.cue"
keep_temp: true
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Toilfile != "settings/toilfile.cue" {
		t.Errorf("Toilfile = %q, want %q", cfg.Toilfile, "settings/toilfile.cue")
	}
	if !cfg.KeepTemp {
		t.Error("KeepTemp = false, want true")
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected suggestions on the error")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `max_depth: {`},
		{name: "depth below range", content: `max_depth: 0`},
		{name: "wrong type", content: `keep_temp: "yes"`},
		{name: "unknown runtime", content: `runtime: "container"`},
		{name: "unknown field", content: `cache_dir: "/tmp"`},
		{name: "empty toilfile", content: `toilfile: ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatalf("Load() succeeded for %q", tt.content)
			}
			errStr := err.Error()
			if !strings.Contains(errStr, "load configuration") {
				t.Errorf("error should contain operation, got: %s", errStr)
			}
			if !strings.Contains(errStr, path) {
				t.Errorf("error should contain resource path, got: %s", errStr)
			}
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `max_depth: 5`)

	t.Setenv("TOIL_MAX_DEPTH", "7")
	t.Setenv("TOIL_UI_VERBOSE", "true")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7", cfg.MaxDepth)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("TOIL_RUNTIME", "container")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
	}
	if !strings.Contains(err.Error(), `"container"`) {
		t.Errorf("error should name the bad value, got: %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_LoadsBack(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Toilfile: "toilfile.toml",
		Runtime:  RuntimeVirtual,
		MaxDepth: 9,
		KeepTemp: true,
		UI:       UIConfig{Verbose: true, ColorScheme: ColorSchemeDark},
	}

	path := filepath.Join(t.TempDir(), "generated.cue")
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("generated config mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDefaultConfigAndSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), AppName)
	SetConfigDirOverride(dir)
	defer Reset()

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, "config.cue"))
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	cfg.MaxDepth = 4
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// An existing file is left alone.
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}

	reloaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", reloaded.MaxDepth)
	}
}
