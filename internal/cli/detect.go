package cli

import (
	"context"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

// Detect logs and returns the names of the plugins that would run in stage.
func (s Service) Detect(ctx context.Context, buildRoot string, stage build.Stage) ([]string, error) {
	if !stage.IsValid() {
		return nil, errors.NewConfigurationError("unknown stage %q, expected one of %v", stage, build.Stages)
	}

	eligible, err := s.Stages.Eligible(ctx, stage, buildRoot)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(eligible) == 0 {
		s.Log.Warnf("No plugins apply to the %s stage of %q", stage, buildRoot)
		return []string{}, nil
	}

	names := make([]string, 0, len(eligible))
	for _, plugin := range eligible {
		s.Log.Infoln(plugin.Name())
		names = append(names, plugin.Name())
	}

	return names, nil
}
