// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"regexp"
	"strings"
)

// Delimiter introduces a template reference.
const Delimiter = '$'

// templatePattern matches, in order of preference: an escaped delimiter
// ($$), a bare reference ($NAME), a braced reference (${NAME}), or a lone
// delimiter that starts nothing valid. Identifiers are ASCII only.
var templatePattern = regexp.MustCompile(`\$(?:(\$)|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\}|())`)

type (
	// Lookup resolves a template reference by name.
	Lookup interface {
		Lookup(name string) (Value, bool)
	}

	// Values is a plain map used as a Lookup.
	Values map[string]Value
)

// Lookup implements Lookup.
func (m Values) Lookup(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Substitute performs one safe substitution pass over tmpl. $$ becomes $,
// known references are replaced by the Text of their value, and everything
// else (unknown names, stray delimiters) is copied through unchanged.
func Substitute(tmpl string, ctx Lookup) string {
	if strings.IndexByte(tmpl, Delimiter) < 0 {
		return tmpl
	}

	matches := templatePattern.FindAllStringSubmatchIndex(tmpl, -1)
	if len(matches) == 0 {
		return tmpl
	}

	var sb strings.Builder
	sb.Grow(len(tmpl))
	last := 0
	for _, m := range matches {
		sb.WriteString(tmpl[last:m[0]])
		last = m[1]

		switch {
		case m[2] >= 0:
			sb.WriteByte(Delimiter)
		case m[4] >= 0:
			sb.WriteString(resolveRef(tmpl[m[4]:m[5]], tmpl[m[0]:m[1]], ctx))
		case m[6] >= 0:
			sb.WriteString(resolveRef(tmpl[m[6]:m[7]], tmpl[m[0]:m[1]], ctx))
		default:
			sb.WriteString(tmpl[m[0]:m[1]])
		}
	}
	sb.WriteString(tmpl[last:])

	return sb.String()
}

// References returns the names referenced by tmpl, in order of appearance,
// without duplicates. Escaped delimiters are skipped.
func References(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range templatePattern.FindAllStringSubmatch(tmpl, -1) {
		name := m[2]
		if name == "" {
			name = m[3]
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func resolveRef(name, token string, ctx Lookup) string {
	if ctx == nil {
		return token
	}
	v, ok := ctx.Lookup(name)
	if !ok {
		return token
	}
	return v.Text()
}
