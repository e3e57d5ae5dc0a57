// SPDX-License-Identifier: MPL-2.0

// Package settings resolves toil settings definitions into a namespace.
//
// Resolution has two phases. Merge overlays an optional override Definition
// on top of a base Definition, field by field, with the override winning.
// Every merged value is then passed through Interpolate, which rewrites
// $NAME and ${NAME} references using the whole merged namespace as context.
//
// Interpolation is bounded: strings are substituted repeatedly until they
// stop changing or the depth budget runs out, and every descent into a
// Mapping or Sequence spends one unit of the same budget. Unknown names are
// left verbatim. Nothing in this package returns an error; a bad template
// degrades to literal text instead of aborting environment setup.
package settings
