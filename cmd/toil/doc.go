// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for toil.
//
// The root command resolves the project settings (built-in defaults merged
// with the toilfile) and provisions the tasks they request. Subcommands
// inspect the resolved settings, list tasks and manage the application
// configuration.
package cmd
