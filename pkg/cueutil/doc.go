// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE parsing flow shared by toilfiles and the
// application config: compile an embedded schema, unify the user's file with
// one of its definitions, validate, then decode.
//
//	//go:embed toilfile_schema.cue
//	var schema []byte
//
//	fields, err := cueutil.DecodeFields(schema, data, "#Toilfile",
//	    cueutil.WithFilename("toilfile.cue"))
//
// Errors carry the file name and a JSON-style path to the offending field.
package cueutil
