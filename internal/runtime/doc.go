// SPDX-License-Identifier: MPL-2.0

// Package runtime runs the external commands issued by provisioning tasks.
//
// Three executors implement Executor:
//   - native: runs argv directly with os/exec
//   - virtual: runs the quoted command line in an embedded shell (mvdan/sh)
//   - dry-run: only logs and records what would run
//
// A Command whose User differs from the current user is prefixed with
// `sudo -u USER`. A non-zero exit status is reported as *ExecError.
package runtime
