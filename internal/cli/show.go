package cli

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

var severityOrder = map[build.Severity]int{
	build.SeverityCritical: 0,
	build.SeverityHigh:     1,
	build.SeverityNormal:   2,
	build.SeverityLow:      3,
}

// Show logs a summary of a stored build: its source, the stage outcomes, the metadata keys and all reported errors,
// most severe first.
func (s Service) Show(ctx context.Context, id string) (*build.Build, error) {
	b, err := s.Repository.Load(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.Log.Infof("Build %s of %q", b.ID, b.Root)
	if source := describeSource(b.Source); source != "" {
		s.Log.Infof("Source: %s", source)
	}

	for _, stage := range build.Stages {
		result, ok := b.Stages[stage]
		if !ok {
			continue
		}

		s.Log.Infof("%-9s %s", stage+":", result.Status)
		for plugin, message := range result.Errors {
			s.Log.Infof("  %s: %s", plugin, message)
		}
	}

	keys := make([]string, 0, len(b.Meta))
	for key := range b.Meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s.Log.Infof("%s: %s", key, describeMeta(b.Meta[key]))
	}

	errs := append([]build.Error(nil), b.Errors...)
	sort.SliceStable(errs, func(i, j int) bool {
		return severityRank(errs[i].Severity) < severityRank(errs[j].Severity)
	})

	if len(errs) == 0 {
		s.Log.Infoln("No errors were reported")
		return b, nil
	}

	s.Log.Infof("%d errors were reported:", len(errs))
	for _, err := range errs {
		s.Log.Infof("  %-8s %s %s%s", err.Severity, err.Plugin, location(err), err.Message)
	}

	return b, nil
}

func severityRank(severity build.Severity) int {
	if rank, ok := severityOrder[severity]; ok {
		return rank
	}

	return len(severityOrder)
}

func describeSource(source build.Provenance) string {
	if source.Commit == "" {
		return source.Provider
	}

	commit := source.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}

	if source.Branch == "" {
		return fmt.Sprintf("%s %s", source.Provider, commit)
	}

	return fmt.Sprintf("%s %s@%s", source.Provider, source.Branch, commit)
}

func describeMeta(value any) string {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
		return fmt.Sprintf("%d entries", rv.Len())
	}

	return fmt.Sprintf("%v", value)
}

func location(err build.Error) string {
	if err.File == nil {
		return ""
	}

	if err.Line == nil {
		return *err.File + " "
	}

	return fmt.Sprintf("%s:%d ", *err.File, *err.Line)
}
