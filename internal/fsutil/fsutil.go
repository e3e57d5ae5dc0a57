// SPDX-License-Identifier: MPL-2.0

// Package fsutil holds the filesystem primitives toil uses to leave files
// either fully written or untouched.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("atomically write %s: %w", path, err)
	}
	return nil
}

// WriteFrom streams r into path, replacing it only once r is drained. A
// failed copy leaves any previous file in place.
func WriteFrom(path string, r io.Reader, perm os.FileMode) (n int64, err error) {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return 0, fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		// Cleanup is a no-op once the file has been committed.
		if cleanupErr := pendingFile.Cleanup(); cleanupErr != nil && err == nil {
			err = fmt.Errorf("cleanup pending file %s: %w", path, cleanupErr)
		}
	}()

	n, err = io.Copy(pendingFile, r)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", path, err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return n, fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return n, nil
}

// ReplaceSymlink points newname at oldname, replacing an existing link
// atomically.
func ReplaceSymlink(oldname, newname string) error {
	if err := renameio.Symlink(oldname, newname); err != nil {
		return fmt.Errorf("symlink %s -> %s: %w", newname, oldname, err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than not-exist count as
// existing so callers never overwrite what they could not inspect.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
