// SPDX-License-Identifier: MPL-2.0

package settings

type (
	mergeOptions struct {
		maxDepth int
	}

	// Option configures Merge.
	Option func(*mergeOptions)
)

// WithMaxDepth sets the depth budget used for every top-level field.
// Default is DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *mergeOptions) {
		o.maxDepth = depth
	}
}

// Merge builds the namespace for one run. Public fields of base are
// collected first, then public fields of override replace them by name
// (no deep merge, even when both sides hold a Mapping). Each merged value is
// then interpolated against the complete merged, still unresolved, set of
// fields, so base fields may reference override-only fields and vice versa.
//
// A nil override means base is used alone. Merge never fails: references it
// cannot resolve stay in the output as literal text.
func Merge(override, base *Definition, opts ...Option) *Namespace {
	options := mergeOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&options)
	}

	unresolved := Values{}
	if base != nil {
		for k, v := range base.PublicFields() {
			unresolved[k] = v
		}
	}
	if override != nil {
		for k, v := range override.PublicFields() {
			unresolved[k] = v
		}
	}

	resolved := make(map[string]Value, len(unresolved))
	for k, v := range unresolved {
		resolved[k] = Interpolate(v, unresolved, options.maxDepth)
	}

	return &Namespace{values: resolved, source: unresolved}
}
