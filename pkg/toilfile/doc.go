// SPDX-License-Identifier: MPL-2.0

// Package toilfile loads user settings definitions.
//
// A toilfile is a CUE or TOML document whose top-level fields override the
// built-in defaults. The default location is ./toilfile; when that path does
// not exist, ./toilfile.cue and then ./toilfile.toml are tried. Having no
// toilfile at all is not an error for callers: Load reports ErrNotFound and
// the defaults are used alone.
package toilfile
