// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds the HTML files a patch run visits.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Find walks root depth-first in lexical order and returns the paths of
// regular files whose name ends with ext. The suffix match is
// case-sensitive, so ".HTML" does not match ".html". Symlinks are skipped.
func Find(root, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}
