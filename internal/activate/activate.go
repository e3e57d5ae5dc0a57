// SPDX-License-Identifier: MPL-2.0

// Package activate builds the shell script that puts a provisioned
// environment on PATH.
package activate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"toil-cli/internal/fsutil"

	"mvdan.cc/sh/v3/syntax"
)

const pathComment = "# Set up the path to point to the new environment."

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Script collects exported variables and PATH entries. The zero value is
// ready to use; Script is not safe for concurrent use.
type Script struct {
	vars  map[string]string
	paths []string
}

// SetVar exports name=value, replacing any earlier value.
func (s *Script) SetVar(name, value string) {
	if s.vars == nil {
		s.vars = make(map[string]string)
	}
	s.vars[name] = value
}

// AddPath prepends dir to PATH. Entries keep insertion order and are
// recorded once.
func (s *Script) AddPath(dir string) {
	if dir == "" || slices.Contains(s.paths, dir) {
		return
	}
	s.paths = append(s.paths, dir)
}

// Vars returns the variable names in sorted order.
func (s *Script) Vars() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Paths returns the PATH entries in insertion order.
func (s *Script) Paths() []string {
	return slices.Clone(s.paths)
}

// Text renders the script as bash.
func (s *Script) Text() (string, error) {
	var sb strings.Builder
	sb.WriteString("#!/bin/bash\n\n")

	names := s.Vars()
	if len(names) > 0 {
		for _, name := range names {
			if !namePattern.MatchString(name) {
				return "", fmt.Errorf("invalid variable name %q", name)
			}
			quoted, err := syntax.Quote(s.vars[name], syntax.LangBash)
			if err != nil {
				return "", fmt.Errorf("cannot quote %s: %w", name, err)
			}
			fmt.Fprintf(&sb, "%s=%s\n", name, quoted)
		}
		sb.WriteByte('\n')
		for _, name := range names {
			fmt.Fprintf(&sb, "export %s\n", name)
		}
		sb.WriteByte('\n')
	}

	entries := make([]string, 0, len(s.paths)+1)
	for _, p := range s.paths {
		quoted, err := syntax.Quote(p, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote path %q: %w", p, err)
		}
		entries = append(entries, quoted)
	}
	entries = append(entries, "$PATH")

	sb.WriteString(pathComment + "\n")
	sb.WriteString("export PATH=" + strings.Join(entries, ":") + "\n")
	return sb.String(), nil
}

// WriteFile renders the script and atomically replaces path with it.
func (s *Script) WriteFile(path string) error {
	text, err := s.Text()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, []byte(text), 0o755); err != nil {
		return fmt.Errorf("failed to write activation script: %w", err)
	}
	return nil
}
