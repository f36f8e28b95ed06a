package fs

import (
	"os"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

// FileSystem is an abstraction over file-systems. This is implemented by the default `os` package and can also be used
// for mocking.
type FileSystem interface {
	Create(filePath string) (File, error)
	GlobMany(patterns []string) ([]string, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (File, error)
	Remove(name string) error
	Rename(oldname string, newname string) error
	Stat(name string) (os.FileInfo, error)
}

// Exists reports whether name can be stat'ed on the file-system. It never modifies the file-system.
func Exists(fileSystem FileSystem, name string) (bool, error) {
	_, err := fileSystem.Stat(name)
	if err == nil {
		return true, nil
	}

	if errors.IsNotExist(err) {
		return false, nil
	}

	return false, err
}
