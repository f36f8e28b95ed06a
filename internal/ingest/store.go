// Package ingest records parsed reports against a build: failures become build errors with a unified severity, and
// results & failures are stored as build metadata.
package ingest

import (
	"go.uber.org/zap"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
	"github.com/rwx-research/testrig-cli/internal/parsing"
)

// Build is the part of a build record that ingestion writes to.
type Build interface {
	StoreMeta(key string, value any)
	ReportError(plugin, message string, severity build.Severity, file *string, line *int) build.Error
}

// Classifier maps native severities onto the unified scale.
type Classifier interface {
	Classify(native parsing.NativeSeverity) build.Severity
}

// DataKey is the metadata key holding all test results of a plugin.
func DataKey(plugin string) string {
	return plugin + "-data"
}

// ErrorsKey is the metadata key holding all failures of a plugin.
func ErrorsKey(plugin string) string {
	return plugin + "-errors"
}

// Store ingests reports into a single build. A store is meant to be used for one plugin execution: reports ingested
// through the same store accumulate, so a plugin that runs its tool more than once ends up with the combined results
// under its metadata keys.
type Store struct {
	Build      Build
	Classifier Classifier
	FileSystem fs.FileSystem
	Log        *zap.SugaredLogger

	ingested map[string]*parsing.Report
}

// Ingest reports every failure of report as a build error and stores the results and the failures under the plugin's
// metadata keys.
func (s *Store) Ingest(report *parsing.Report, plugin string) error {
	if report == nil {
		return errors.NewInternalError("no report was provided for %q", plugin)
	}

	for _, failure := range report.Failures {
		severity := s.Classifier.Classify(failure.NativeSeverity)
		s.Build.ReportError(plugin, failure.Message, severity, failure.File, failure.Line)
	}

	if s.ingested == nil {
		s.ingested = make(map[string]*parsing.Report)
	}

	combined, ok := s.ingested[plugin]
	if !ok {
		combined = parsing.NewReport()
		s.ingested[plugin] = combined
	}
	combined.Merge(report)

	s.Build.StoreMeta(DataKey(plugin), combined.Results)
	s.Build.StoreMeta(ErrorsKey(plugin), combined.Failures)

	s.Log.Debugf(
		"Recorded %d results and %d errors for %q",
		len(report.Results), len(report.Failures), plugin,
	)

	return nil
}

// IngestFile parses the report at path with parser, ingests it and deletes the report afterwards. The report is
// consumed: ingesting the same path a second time fails with a ReportMissingError. Failing to delete the report is
// only logged.
func (s *Store) IngestFile(path, buildRoot, plugin string, parser parsing.Parser) (*parsing.Report, error) {
	fileParser := parsing.FileParser{FileSystem: s.FileSystem, Log: s.Log, Parser: parser}

	report, err := fileParser.ParseFile(path, buildRoot)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := s.Ingest(report, plugin); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := s.FileSystem.Remove(path); err != nil {
		s.Log.Warnf("Unable to delete report %q: %s", path, err)
	}

	return report, nil
}
