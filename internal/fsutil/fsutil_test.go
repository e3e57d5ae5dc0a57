// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile_Replaces(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "VERSION")
	for _, content := range []string{"1.11.3", "1.11.4"} {
		if err := WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1.11.4" {
		t.Errorf("content = %q, want %q", got, "1.11.4")
	}
}

func TestWriteFile_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "file")
	if err := WriteFile(path, []byte("x"), 0o644); err == nil {
		t.Error("WriteFile() into a missing directory: expected error")
	}
}

type failingReader struct{ after int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.after <= 0 {
		return 0, errors.New("connection reset")
	}
	n := min(len(p), r.after)
	for i := range n {
		p[i] = 'x'
	}
	r.after -= n
	return n, nil
}

func TestWriteFrom(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "node.tar.gz")
	n, err := WriteFrom(path, strings.NewReader("archive bytes"), 0o644)
	if err != nil {
		t.Fatalf("WriteFrom() error: %v", err)
	}
	if n != int64(len("archive bytes")) {
		t.Errorf("WriteFrom() n = %d, want %d", n, len("archive bytes"))
	}
	got, _ := os.ReadFile(path)
	if string(got) != "archive bytes" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteFrom_FailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ruby.tar.gz")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFrom(path, io.MultiReader(&failingReader{after: 10}), 0o644); err == nil {
		t.Fatal("WriteFrom() expected error")
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Errorf("content = %q, want previous content kept", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want the temp file cleaned up", len(entries))
	}
}

func TestReplaceSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	link := filepath.Join(dir, "nodejs")
	for _, target := range []string{"node-v0.10.25", "node-v0.10.26"} {
		if err := ReplaceSymlink(filepath.Join(dir, target), link); err != nil {
			t.Fatalf("ReplaceSymlink() error: %v", err)
		}
	}

	got, err := os.Readlink(link)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "node-v0.10.26"); got != want {
		t.Errorf("link target = %q, want %q", got, want)
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if !Exists(dir) {
		t.Errorf("Exists(%q) = false, want true", dir)
	}
	if Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists(missing) = true, want false")
	}

	dangling := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nope"), dangling); err != nil {
		t.Fatal(err)
	}
	if !Exists(dangling) {
		t.Error("Exists(dangling symlink) = false, want true")
	}
}
