// SPDX-License-Identifier: MPL-2.0

// Package defaults provides the built-in settings definition that every
// toilfile overrides, and the names of the settings toil itself reads.
package defaults
