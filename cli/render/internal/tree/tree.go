// Package tree turns a project template tree into an output tree in three phases:
// entries are collected, destination paths are planned, and the plan is applied.
package tree

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Entry is a file or a directory found in a project tree.
type Entry struct {
	// SrcPath is the entry path.
	SrcPath string
	// RelPath is the slash separated entry path relative to the project root.
	RelPath string
	// IsDir is true for directories.
	IsDir bool
	// Depth is the number of RelPath segments.
	Depth int
}

// Collect enumerates every entry under root. Files named contextFile are skipped
// at any depth. The tree is not modified.
func Collect(root string, contextFile string) ([]Entry, error) {
	entries := make([]Entry, 0)
	err := filepath.WalkDir(root, func(path string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if !dirEntry.IsDir() && dirEntry.Name() == contextFile {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		entries = append(entries, Entry{
			SrcPath: path,
			RelPath: relPath,
			IsDir:   dirEntry.IsDir(),
			Depth:   strings.Count(relPath, "/") + 1,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	return entries, nil
}
