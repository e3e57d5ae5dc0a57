// SPDX-License-Identifier: MPL-2.0

// Package config handles toil's application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/toil/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/toil/config.cue on macOS, %APPDATA%\toil\config.cue
// on Windows), falling back to ./config.cue. TOIL_* environment variables override
// file values. This is the tool's own configuration; project settings live in the
// toilfile and are handled by pkg/settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
