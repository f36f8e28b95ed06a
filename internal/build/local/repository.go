// Package local stores build records as YAML files inside a data directory.
package local

import (
	"context"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
)

const fileExtension = ".yaml"

// Repository is a file-backed build repository. Every build is stored in `<dir>/<id>.yaml`.
type Repository struct {
	fs  fs.FileSystem
	dir string
}

// NewRepository returns a repository that stores builds in dir. The directory is created if necessary.
func NewRepository(fileSystem fs.FileSystem, dir string) (Repository, error) {
	if dir == "" {
		return Repository{}, errors.NewConfigurationError("no data directory was provided")
	}

	if err := fileSystem.MkdirAll(dir, 0o755); err != nil {
		return Repository{}, errors.NewSystemError("unable to create data directory %q: %s", dir, err)
	}

	return Repository{fs: fileSystem, dir: dir}, nil
}

// Save writes b to disk. The previous version of the build is replaced atomically.
func (r Repository) Save(ctx context.Context, b *build.Build) error {
	if b == nil || b.ID == "" {
		return errors.NewInternalError("unable to save a build without an ID")
	}

	target := r.path(b.ID)
	tmp := target + ".tmp"

	fd, err := r.fs.Create(tmp)
	if err != nil {
		return errors.NewSystemError("unable to create %q: %s", tmp, err)
	}

	encoder := yaml.NewEncoder(fd)
	encoder.SetIndent(2)

	if err := encoder.Encode(b); err != nil {
		_ = fd.Close()
		return errors.NewSystemError("unable to write build %q: %s", b.ID, err)
	}

	if err := encoder.Close(); err != nil {
		_ = fd.Close()
		return errors.NewSystemError("unable to write build %q: %s", b.ID, err)
	}

	if err := fd.Close(); err != nil {
		return errors.NewSystemError("unable to close %q: %s", tmp, err)
	}

	if err := r.fs.Rename(tmp, target); err != nil {
		return errors.NewSystemError("unable to move %q to %q: %s", tmp, target, err)
	}

	return nil
}

// Load reads the build with the given ID.
func (r Repository) Load(ctx context.Context, id string) (*build.Build, error) {
	fd, err := r.fs.Open(r.path(id))
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.NewInputError("build %q does not exist in %q", id, r.dir)
		}

		return nil, errors.NewSystemError("unable to open build %q: %s", id, err)
	}
	defer fd.Close()

	var b build.Build
	if err := yaml.NewDecoder(fd).Decode(&b); err != nil {
		return nil, errors.NewSystemError("unable to read build %q: %s", id, err)
	}

	return &b, nil
}

func (r Repository) path(id string) string {
	return filepath.Join(r.dir, filepath.Base(id)+fileExtension)
}
