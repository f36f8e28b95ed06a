package mocks

import (
	"os"
	"strings"
)

// File is an in-memory implementation of 'fs.File'. Reads are served from the contents it was created with, writes
// are collected separately.
type File struct {
	FileName string
	Closed   bool
	Written  strings.Builder

	reader *strings.Reader
}

// NewFile returns a file called name that reads contents.
func NewFile(name, contents string) *File {
	return &File{FileName: name, reader: strings.NewReader(contents)}
}

func (f *File) Read(p []byte) (int, error) {
	return f.reader.Read(p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.reader.Seek(offset, whence)
}

func (f *File) Write(p []byte) (int, error) {
	return f.Written.Write(p)
}

// Close marks the file as closed.
func (f *File) Close() error {
	f.Closed = true
	return nil
}

func (f *File) Name() string {
	return f.FileName
}

// Stat describes the readable contents of the file.
func (f *File) Stat() (os.FileInfo, error) {
	return FileInfo{FileName: f.FileName, FileSize: f.reader.Size()}, nil
}

// Sync always returns nil.
func (f *File) Sync() error {
	return nil
}
