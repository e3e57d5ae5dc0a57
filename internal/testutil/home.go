// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the user home at dir and clears XDG_CONFIG_HOME, so
// anything that derives a per-user path (toil's config directory) lands
// under dir. The returned function restores the previous environment.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	homeVar := "HOME"
	if runtime.GOOS == "windows" {
		homeVar = "USERPROFILE"
	}

	restoreHome := MustSetenv(t, homeVar, dir)
	restoreXDG := MustUnsetenv(t, "XDG_CONFIG_HOME")
	return func() {
		restoreXDG()
		restoreHome()
	}
}
