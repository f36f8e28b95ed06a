package mocks

import (
	"os"
	"time"
)

// FileInfo is a static 'os.FileInfo'. Directories report `os.ModeDir`, everything else a regular file.
type FileInfo struct {
	Dir      bool
	FileName string
	FileSize int64
	Modified time.Time
}

func (f FileInfo) Name() string       { return f.FileName }
func (f FileInfo) Size() int64        { return f.FileSize }
func (f FileInfo) IsDir() bool        { return f.Dir }
func (f FileInfo) ModTime() time.Time { return f.Modified }
func (f FileInfo) Sys() any           { return nil }

func (f FileInfo) Mode() os.FileMode {
	if f.Dir {
		return os.ModeDir | 0o755
	}

	return 0o644
}
