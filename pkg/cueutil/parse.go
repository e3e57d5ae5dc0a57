// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DecodeFields validates data against the schemaPath definition of schema
// and decodes the top-level struct into a generic map. Hidden fields and
// definitions are not exported by CUE and never appear in the result.
func DecodeFields(schema, data []byte, schemaPath string, opts ...Option) (map[string]any, error) {
	options := applyOptions(opts)

	unified, err := unify(schema, data, schemaPath, options)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if err := unified.Decode(&fields); err != nil {
		return nil, FormatError(err, options.filename)
	}
	return fields, nil
}

func unify(schema, data []byte, schemaPath string, options parseOptions) (cue.Value, error) {
	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), options.filename)
	}

	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, options.filename)
	}

	return unified, nil
}
