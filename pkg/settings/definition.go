// SPDX-License-Identifier: MPL-2.0

package settings

import "strings"

// PrivatePrefix marks fields that belong to a definition but never take part
// in merging.
const PrivatePrefix = "_"

// Definition is an unresolved, named bundle of settings fields. Field values
// may contain templates referencing any field of the eventual namespace,
// including fields that only the other definition declares.
type Definition struct {
	name   string
	fields map[string]Value
}

// NewDefinition creates a definition from decoded Go values (see Of).
func NewDefinition(name string, fields map[string]any) *Definition {
	d := &Definition{name: name, fields: make(map[string]Value, len(fields))}
	for k, v := range fields {
		d.fields[k] = Of(v)
	}
	return d
}

// Name identifies the definition in diagnostics (a file path or "defaults").
func (d *Definition) Name() string { return d.name }

// Set adds or replaces a field and returns d for chaining.
func (d *Definition) Set(name string, v Value) *Definition {
	if d.fields == nil {
		d.fields = make(map[string]Value)
	}
	d.fields[name] = v
	return d
}

// Get returns the unresolved value of a field, public or private.
func (d *Definition) Get(name string) (Value, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// PublicFields returns a copy of the fields that take part in merging.
func (d *Definition) PublicFields() map[string]Value {
	out := make(map[string]Value, len(d.fields))
	for k, v := range d.fields {
		if IsPublic(k) {
			out[k] = v
		}
	}
	return out
}

// Names returns the sorted names of the public fields.
func (d *Definition) Names() []string {
	return sortedKeys(d.PublicFields())
}

// IsPublic reports whether a field name takes part in merging.
func IsPublic(name string) bool {
	return name != "" && !strings.HasPrefix(name, PrivatePrefix)
}
