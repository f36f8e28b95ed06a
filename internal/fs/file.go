package fs

import (
	"io"
	"os"
)

// File is an open file handle. `*os.File` satisfies it, tests use the in-memory version from the mocks package.
type File interface {
	io.ReadSeekCloser
	io.Writer
	Name() string
	Stat() (os.FileInfo, error)
	Sync() error
}
