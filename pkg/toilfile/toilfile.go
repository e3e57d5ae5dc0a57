// SPDX-License-Identifier: MPL-2.0

package toilfile

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"toil-cli/pkg/cueutil"
	"toil-cli/pkg/settings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultFileName is the toilfile name looked up in the working directory.
	DefaultFileName = "toilfile"
	// ExtCUE is the CUE toilfile extension.
	ExtCUE = ".cue"
	// ExtTOML is the TOML toilfile extension.
	ExtTOML = ".toml"

	schemaPath = "#Toilfile"
)

// Extensions are tried in order when the requested path does not exist.
var Extensions = []string{ExtCUE, ExtTOML}

// ErrNotFound is returned when neither the path nor any conventional
// variant of it exists.
var ErrNotFound = errors.New("toilfile not found")

//go:embed toilfile_schema.cue
var schema []byte

// DefaultPath returns ./toilfile as an absolute path.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}

// Resolve returns path if it names a regular file, else the first existing
// path+ext for ext in Extensions.
func Resolve(path string) (string, error) {
	candidates := []string{path}
	for _, ext := range Extensions {
		if !strings.HasSuffix(path, ext) {
			candidates = append(candidates, path+ext)
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load resolves path and parses the file it names. The returned definition
// is named after the resolved path.
func Load(ctx context.Context, path string) (*settings.Definition, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load toilfile canceled: %w", ctx.Err())
	default:
	}

	resolved, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read toilfile: %w", err)
	}

	return Parse(data, resolved)
}

// Parse decodes a toilfile. Files ending in .toml are TOML; anything else is
// CUE validated against the embedded #Toilfile schema.
func Parse(data []byte, filename string) (*settings.Definition, error) {
	var (
		fields map[string]any
		err    error
	)
	if strings.HasSuffix(filename, ExtTOML) {
		fields, err = parseTOML(data, filename)
	} else {
		fields, err = cueutil.DecodeFields(schema, data, schemaPath, cueutil.WithFilename(filename))
	}
	if err != nil {
		return nil, err
	}
	return settings.NewDefinition(filename, fields), nil
}

func parseTOML(data []byte, filename string) (map[string]any, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if err := toml.Unmarshal(data, &fields); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", filename, row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if tasks, ok := fields["TASKS"]; ok {
		if _, isList := tasks.([]any); !isList {
			return nil, fmt.Errorf("%s: TASKS: expected a list of task names, got %T", filename, tasks)
		}
	}
	return fields, nil
}
