// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"fmt"
	"maps"
	"strings"
)

// Namespace is the resolved, immutable set of settings for one run. It is
// built once by Merge and passed explicitly to every consumer.
type Namespace struct {
	values map[string]Value
	// source holds the merged values before interpolation.
	source Values
}

// Lookup implements Lookup so a resolved namespace can serve as the context
// of further interpolation.
func (n *Namespace) Lookup(name string) (Value, bool) {
	if n == nil {
		return Value{}, false
	}
	v, ok := n.values[name]
	return v, ok
}

// Has reports whether name is declared.
func (n *Namespace) Has(name string) bool {
	_, ok := n.Lookup(name)
	return ok
}

// String returns a String setting. It fails if the setting is missing or
// holds another kind.
func (n *Namespace) String(name string) (string, bool) {
	v, ok := n.Lookup(name)
	if !ok {
		return "", false
	}
	return v.Str()
}

// Strings returns a Sequence setting whose elements are all Strings.
func (n *Namespace) Strings(name string) ([]string, bool) {
	v, ok := n.Lookup(name)
	if !ok {
		return nil, false
	}
	return v.StringSlice()
}

// Bool returns a boolean setting (see Value.Bool).
func (n *Namespace) Bool(name string) (bool, bool) {
	v, ok := n.Lookup(name)
	if !ok {
		return false, false
	}
	return v.Bool()
}

// Names returns the declared setting names in sorted order.
func (n *Namespace) Names() []string {
	if n == nil {
		return nil
	}
	return sortedKeys(n.values)
}

// Len is the number of declared settings.
func (n *Namespace) Len() int {
	if n == nil {
		return 0
	}
	return len(n.values)
}

// Values returns a copy of the resolved bindings.
func (n *Namespace) Values() Values {
	if n == nil {
		return Values{}
	}
	return Values(maps.Clone(n.values))
}

// Unresolved returns the references left in the resolved value of name
// that the template actually asked for: undeclared names, and declared ones
// the depth budget ran out on. Text that only looks like a reference because
// a $$ escape produced it is not reported. Mapping keys are checked too.
func (n *Namespace) Unresolved(name string) []string {
	v, ok := n.Lookup(name)
	if !ok {
		return nil
	}

	reachable := make(map[string]bool)
	pending := valueRefs(n.source[name])
	for len(pending) > 0 {
		ref := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if reachable[ref] {
			continue
		}
		reachable[ref] = true
		if src, ok := n.source[ref]; ok {
			pending = append(pending, valueRefs(src)...)
		}
	}

	var out []string
	for _, ref := range valueRefs(v) {
		if reachable[ref] {
			out = append(out, ref)
		}
	}
	return out
}

// Dump renders every binding as NAME = value, one per line, sorted.
func (n *Namespace) Dump() string {
	var sb strings.Builder
	for _, name := range n.Names() {
		fmt.Fprintf(&sb, "%s = %s\n", name, n.values[name].GoString())
	}
	return sb.String()
}

// valueRefs lists the unescaped references in every string of v, mapping
// keys included, without duplicates.
func valueRefs(v Value) []string {
	var refs []string
	seen := make(map[string]bool)
	add := func(s string) {
		for _, ref := range References(s) {
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}

	var walk func(Value)
	walk = func(v Value) {
		switch v.kind {
		case KindString:
			add(v.str)
		case KindSequence:
			for _, item := range v.seq {
				walk(item)
			}
		case KindMapping:
			for _, k := range sortedKeys(v.mapping) {
				add(k)
				walk(v.mapping[k])
			}
		}
	}
	walk(v)

	return refs
}
