package locating

import (
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
)

// ToolConfig is the subset of a Codeception config file that testrig cares about.
type ToolConfig struct {
	Paths struct {
		Tests  string `yaml:"tests"`
		Log    string `yaml:"log"`
		Output string `yaml:"output"`
	} `yaml:"paths"`
}

// LogDirectory is the directory the tool writes its reports to, relative to the config file. Newer Codeception
// versions call it `output`, older ones `log`; `log` wins if both are present.
func (c ToolConfig) LogDirectory() string {
	if c.Paths.Log != "" {
		return c.Paths.Log
	}

	return c.Paths.Output
}

// ReportPath returns where the tool writes its report. A declared log directory is resolved against buildRoot,
// otherwise defaultDirectory is used.
func (c ToolConfig) ReportPath(buildRoot, defaultDirectory, fileName string) string {
	directory := c.LogDirectory()
	if directory == "" {
		directory = defaultDirectory
	}

	if filepath.IsAbs(directory) {
		return filepath.Join(directory, fileName)
	}

	return filepath.Join(buildRoot, directory, fileName)
}

// ReadToolConfig decodes the YAML config at path. An empty file is a valid, empty config.
func ReadToolConfig(fileSystem fs.FileSystem, path string) (ToolConfig, error) {
	var config ToolConfig

	fd, err := fileSystem.Open(path)
	if err != nil {
		if errors.IsNotExist(err) {
			return config, errors.NewConfigurationError("config file %q does not exist", path)
		}

		return config, errors.NewSystemError("unable to open config file %q: %s", path, err)
	}
	defer fd.Close()

	if err := yaml.NewDecoder(fd).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, errors.NewConfigurationError("unable to parse config file %q: %s", path, err)
	}

	return config, nil
}
