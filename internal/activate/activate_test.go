// SPDX-License-Identifier: MPL-2.0

package activate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"mvdan.cc/sh/v3/syntax"
)

func TestScript_Text(t *testing.T) {
	t.Parallel()

	var s Script
	s.AddPath("/srv/app/env/bin")
	s.SetVar("NODEJS_HOME", "/srv/app/env/nodejs")
	s.SetVar("APP_NAME", "it's mine")
	s.AddPath("/srv/app/env/nodejs/bin")
	s.AddPath("/srv/app/env/bin")

	got, err := s.Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}

	want := `#!/bin/bash

APP_NAME="it's mine"
NODEJS_HOME=/srv/app/env/nodejs

export APP_NAME
export NODEJS_HOME

# Set up the path to point to the new environment.
export PATH=/srv/app/env/bin:/srv/app/env/nodejs/bin:$PATH
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
}

func TestScript_TextEmpty(t *testing.T) {
	t.Parallel()

	var s Script
	got, err := s.Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	want := "#!/bin/bash\n\n# Set up the path to point to the new environment.\nexport PATH=$PATH\n"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestScript_TextParsesAsBash(t *testing.T) {
	t.Parallel()

	var s Script
	s.SetVar("WEIRD", "a b; rm -rf / $(whoami) `id` \"q\"")
	s.SetVar("EMPTY", "")
	s.AddPath("/path with spaces/bin")
	s.AddPath("/tmp/$HOME/bin")

	text, err := s.Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}

	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(text), "activate.sh")
	if err != nil {
		t.Fatalf("generated script does not parse: %v\n%s", err, text)
	}
	// Two assignments, two exports, one PATH export.
	if len(file.Stmts) != 5 {
		t.Errorf("parsed %d statements, want 5:\n%s", len(file.Stmts), text)
	}
	if !strings.Contains(text, "'/tmp/$HOME/bin'") {
		t.Errorf("path with a dollar must be single-quoted:\n%s", text)
	}
}

func TestScript_InvalidName(t *testing.T) {
	t.Parallel()

	var s Script
	s.SetVar("NOT-VALID", "x")
	if _, err := s.Text(); err == nil {
		t.Error("Text() with an invalid variable name: expected error")
	}
}

func TestScript_AddPathIgnoresEmpty(t *testing.T) {
	t.Parallel()

	var s Script
	s.AddPath("")
	s.AddPath("/a")
	if diff := cmp.Diff([]string{"/a"}, s.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
}

func TestScript_WriteFile(t *testing.T) {
	t.Parallel()

	var s Script
	s.AddPath("/srv/app/env/bin")
	path := filepath.Join(t.TempDir(), "activate.sh")

	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := s.Text()
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}
