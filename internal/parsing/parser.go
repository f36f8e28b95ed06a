// Package parsing turns the report file of an external test runner into a Report: the ordered test results and the
// failures they produced.
package parsing

import (
	"io"

	"go.uber.org/zap"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
)

// Parser is the interface a report parser needs to implement. buildRoot is used to make file locations relative.
// A parser either returns a complete report or an error, never a partial report.
type Parser interface {
	Parse(data io.Reader, buildRoot string) (*Report, error)
}

// FileParser parses report files from a file-system.
type FileParser struct {
	FileSystem fs.FileSystem
	Log        *zap.SugaredLogger
	Parser     Parser
}

// ParseFile parses the report at path. It fails with a ReportMissingError if there is no file at path.
func (p FileParser) ParseFile(path, buildRoot string) (*Report, error) {
	fd, err := p.FileSystem.Open(path)
	if err != nil {
		if errors.IsNotExist(err) {
			return nil, errors.NewReportMissingError(path)
		}

		return nil, errors.NewSystemError("unable to open %q: %s", path, err)
	}
	defer fd.Close()

	report, err := p.Parser.Parse(fd, buildRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %q", path)
	}

	p.Log.Debugf(
		"%T parsed %d results and %d failures from %q",
		p.Parser, len(report.Results), len(report.Failures), path,
	)

	return report, nil
}
