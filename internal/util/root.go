// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseRoot parses a corpus root spec and returns its canonical form. Roots
// beginning with s3:// are passed through untouched (the bucket is validated
// lazily by the store). Anything else is treated as a local directory: made
// absolute if relative, and required to exist and be a directory.
func ParseRoot(root string) (string, error) {
	if root == "" {
		return "", os.ErrInvalid
	}

	if strings.HasPrefix(root, "s3://") {
		return root, nil
	}

	dir := root
	if !strings.HasPrefix(dir, "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	// If the root is not a directory, return an error.
	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}
