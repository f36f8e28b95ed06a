package mocks

import (
	"os"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
)

// FileSystem is a mocked implementation of 'fs.FileSystem'.
type FileSystem struct {
	MockCreate   func(filePath string) (fs.File, error)
	MockGlobMany func(patterns []string) ([]string, error)
	MockMkdirAll func(path string, perm os.FileMode) error
	MockOpen     func(name string) (fs.File, error)
	MockRemove   func(name string) error
	MockRename   func(oldname string, newname string) error
	MockStat     func(name string) (os.FileInfo, error)
}

// Create either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) Create(filePath string) (fs.File, error) {
	if f.MockCreate != nil {
		return f.MockCreate(filePath)
	}

	return nil, errors.NewInternalError("MockCreate was not configured")
}

// GlobMany either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) GlobMany(patterns []string) ([]string, error) {
	if f.MockGlobMany != nil {
		return f.MockGlobMany(patterns)
	}

	return nil, errors.NewInternalError("MockGlobMany was not configured")
}

// MkdirAll either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	if f.MockMkdirAll != nil {
		return f.MockMkdirAll(path, perm)
	}

	return errors.NewInternalError("MockMkdirAll was not configured")
}

// Open either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) Open(name string) (fs.File, error) {
	if f.MockOpen != nil {
		return f.MockOpen(name)
	}

	return nil, errors.NewInternalError("MockOpen was not configured")
}

// Remove either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) Remove(name string) error {
	if f.MockRemove != nil {
		return f.MockRemove(name)
	}

	return errors.NewInternalError("MockRemove was not configured")
}

// Rename either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) Rename(oldname string, newname string) error {
	if f.MockRename != nil {
		return f.MockRename(oldname, newname)
	}

	return errors.NewInternalError("MockRename was not configured")
}

// Stat either calls the configured mock of itself or returns an error if that doesn't exist.
func (f *FileSystem) Stat(name string) (os.FileInfo, error) {
	if f.MockStat != nil {
		return f.MockStat(name)
	}

	return nil, errors.NewInternalError("MockStat was not configured")
}
