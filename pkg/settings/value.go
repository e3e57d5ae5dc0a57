// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// KindOpaque is any scalar that is neither a string nor a container.
	KindOpaque Kind = iota
	// KindString is a text value; the only kind that carries templates.
	KindString
	// KindMapping is a string-keyed map of values.
	KindMapping
	// KindSequence is an ordered list of values.
	KindSequence
)

type (
	// Kind tags the variant held by a Value.
	Kind int

	// Value is a settings value: a String, Mapping, Sequence or Opaque scalar.
	// The zero Value is an Opaque nil.
	Value struct {
		kind    Kind
		str     string
		mapping map[string]Value
		seq     []Value
		opaque  any
	}
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "opaque"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String creates a String value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Mapping creates a Mapping value. The map is copied.
func Mapping(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMapping, mapping: cp}
}

// Sequence creates a Sequence value. The elements are copied.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, seq: slices.Clone(items)}
}

// Strings creates a Sequence of String values.
func Strings(items ...string) Value {
	seq := make([]Value, len(items))
	for i, s := range items {
		seq[i] = String(s)
	}
	return Value{kind: KindSequence, seq: seq}
}

// Opaque wraps a scalar that interpolation must pass through untouched.
func Opaque(v any) Value {
	return Value{kind: KindOpaque, opaque: v}
}

// Of converts a decoded Go value (as produced by CUE, TOML or JSON decoders)
// into a Value. Strings, string-keyed maps and slices become String, Mapping
// and Sequence; everything else is Opaque. A Value is returned as is.
func Of(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case []string:
		return Strings(t...)
	case []any:
		seq := make([]Value, len(t))
		for i, item := range t {
			seq[i] = Of(item)
		}
		return Value{kind: KindSequence, seq: seq}
	case []map[string]any:
		seq := make([]Value, len(t))
		for i, item := range t {
			seq[i] = Of(item)
		}
		return Value{kind: KindSequence, seq: seq}
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			m[k] = Of(item)
		}
		return Value{kind: KindMapping, mapping: m}
	case map[string]string:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			m[k] = String(item)
		}
		return Value{kind: KindMapping, mapping: m}
	default:
		return Opaque(v)
	}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Str returns the text of a String value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Map returns a copy of the entries of a Mapping value.
func (v Value) Map() (map[string]Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return maps.Clone(v.mapping), true
}

// Items returns a copy of the elements of a Sequence value.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return slices.Clone(v.seq), true
}

// Raw returns the scalar held by an Opaque value.
func (v Value) Raw() (any, bool) {
	if v.kind != KindOpaque {
		return nil, false
	}
	return v.opaque, true
}

// Len is the number of entries of a Mapping or elements of a Sequence, and 0
// for other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.mapping)
	case KindSequence:
		return len(v.seq)
	default:
		return 0
	}
}

// StringSlice returns the elements of a Sequence whose elements are all
// Strings.
func (v Value) StringSlice() ([]string, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	out := make([]string, len(v.seq))
	for i, item := range v.seq {
		s, ok := item.Str()
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// Bool reports the truth of an Opaque bool, or of a String spelled
// "true"/"True"/"1"/"yes".
func (v Value) Bool() (bool, bool) {
	switch v.kind {
	case KindOpaque:
		b, ok := v.opaque.(bool)
		return b, ok
	case KindString:
		switch strings.ToLower(v.str) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no", "":
			return false, true
		}
	}
	return false, false
}

// Any converts v back into plain Go values.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindMapping:
		m := make(map[string]any, len(v.mapping))
		for k, item := range v.mapping {
			m[k] = item.Any()
		}
		return m
	case KindSequence:
		seq := make([]any, len(v.seq))
		for i, item := range v.seq {
			seq[i] = item.Any()
		}
		return seq
	default:
		return v.opaque
	}
}

// Text renders v the way it is spliced into a template: strings verbatim,
// scalars with their natural formatting, sequences space separated and
// mappings as sorted key=value pairs.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.Text()
		}
		return strings.Join(parts, " ")
	case KindMapping:
		keys := sortedKeys(v.mapping)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + v.mapping[k].Text()
		}
		return strings.Join(parts, " ")
	default:
		if v.opaque == nil {
			return ""
		}
		return fmt.Sprint(v.opaque)
	}
}

// GoString renders v for debugging and namespace dumps.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.GoString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		keys := sortedKeys(v.mapping)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q: %s", k, v.mapping[k].GoString())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%#v", v.opaque)
	}
}

// Equal reports whether v and other hold the same kind and content. Opaque
// scalars are compared with ==; incomparable scalars are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindSequence:
		return slices.EqualFunc(v.seq, other.seq, Value.Equal)
	case KindMapping:
		return maps.EqualFunc(v.mapping, other.mapping, Value.Equal)
	default:
		return opaqueEqual(v.opaque, other.opaque)
	}
}

func opaqueEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
