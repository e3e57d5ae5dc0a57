// SPDX-License-Identifier: MPL-2.0

package settings

// DefaultMaxDepth is the depth budget of a top-level interpolation.
const DefaultMaxDepth = 3

// Interpolate resolves template references in v against ctx.
//
// A String is substituted repeatedly until a pass leaves it unchanged or
// maxDepth passes have run; cyclic references are therefore truncated, not
// rejected. Mapping keys and values and Sequence elements are interpolated
// with maxDepth-1, so nesting also reduces the substitution passes available
// to the leaves. Opaque values are returned unchanged.
//
// Mapping keys are visited in sorted order. When two keys interpolate to the
// same text, the entry whose original key sorts last wins.
func Interpolate(v Value, ctx Lookup, maxDepth int) Value {
	switch v.kind {
	case KindString:
		return String(interpolateString(v.str, ctx, maxDepth))
	case KindMapping:
		out := make(map[string]Value, len(v.mapping))
		for _, k := range sortedKeys(v.mapping) {
			key := interpolateString(k, ctx, maxDepth-1)
			out[key] = Interpolate(v.mapping[k], ctx, maxDepth-1)
		}
		return Value{kind: KindMapping, mapping: out}
	case KindSequence:
		if v.seq == nil {
			return v
		}
		out := make([]Value, len(v.seq))
		for i, item := range v.seq {
			out[i] = Interpolate(item, ctx, maxDepth-1)
		}
		return Value{kind: KindSequence, seq: out}
	default:
		return v
	}
}

func interpolateString(s string, ctx Lookup, maxDepth int) string {
	cur := s
	for pass := 0; pass < maxDepth; pass++ {
		next := Substitute(cur, ctx)
		if next == cur {
			break
		}
		cur = next
	}
	return cur
}
