// Package locating finds the configuration of an external test tool below a build root.
package locating

import (
	"path/filepath"

	"github.com/rwx-research/testrig-cli/internal/fs"
)

// DefaultCandidates are the Codeception config files, in order of precedence.
var DefaultCandidates = []string{"codeception.yml", "codeception.dist.yml"}

// Locator looks up the first existing candidate file in a directory. It only ever stats files.
type Locator struct {
	FileSystem fs.FileSystem
	Candidates []string
}

// Locate returns the path of the first candidate that exists in basePath.
func (l Locator) Locate(basePath string) (string, bool) {
	candidates := l.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	for _, candidate := range candidates {
		path := filepath.Join(basePath, candidate)

		info, err := l.FileSystem.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		return path, true
	}

	return "", false
}
