// Package fs is a thin wrapper around potential file-systems. By default, it is an abstraction over the `os` package
// from the standard library.
package fs

import (
	"os"
	"sort"

	"github.com/yargevad/filepathx"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

// Local is a local file-system. It wraps the default `os` package
type Local struct{}

// Create creates or truncates the named file.
func (l Local) Create(filePath string) (File, error) {
	f, err := os.Create(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// GlobMany expands all patterns (including `**`) and returns the sorted, de-duplicated matches.
func (l Local) GlobMany(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	matches := make([]string, 0)

	for _, pattern := range patterns {
		expanded, err := filepathx.Glob(pattern)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		for _, match := range expanded {
			if _, ok := seen[match]; ok {
				continue
			}

			seen[match] = struct{}{}
			matches = append(matches, match)
		}
	}

	sort.Strings(matches)

	return matches, nil
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (l Local) MkdirAll(path string, perm os.FileMode) error {
	return errors.WithStack(os.MkdirAll(path, perm))
}

// Open opens a file for further processing
func (l Local) Open(name string) (File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// Remove removes the named file
func (l Local) Remove(name string) error {
	return errors.WithStack(os.Remove(name))
}

// Rename renames (moves) oldname to newname.
func (l Local) Rename(oldname string, newname string) error {
	return errors.WithStack(os.Rename(oldname, newname))
}

// Stat returns a FileInfo describing the named file.
func (l Local) Stat(name string) (os.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return info, nil
}
