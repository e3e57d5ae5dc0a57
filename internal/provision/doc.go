// SPDX-License-Identifier: MPL-2.0

// Package provision runs the tasks requested by a resolved settings
// namespace and writes the environment's activation script.
//
// A run reads TASKS, orders the requested tasks, creates TMP_BASE, runs
// each task in turn and finally writes ACTIVATE_SCRIPT. TMP_BASE is removed
// afterwards unless the provisioner is configured to keep it.
//
//	p := provision.New(provision.Options{Exec: exec, Fetcher: fetcher, Logger: logger})
//	result, err := p.Run(ctx, ns)
package provision
