package cli

import (
	"context"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/plugins"
)

// BuildRepository stores build records between invocations.
type BuildRepository interface {
	Load(ctx context.Context, id string) (*build.Build, error)
	Save(ctx context.Context, b *build.Build) error
}

// ProvenanceDetector determines where the code of a build comes from.
type ProvenanceDetector interface {
	Detect(buildRoot string) build.Provenance
}

// StageRunner runs the plugins of a single stage.
type StageRunner interface {
	Eligible(ctx context.Context, stage build.Stage, buildRoot string) ([]plugins.Plugin, error)
	Run(ctx context.Context, stage build.Stage, b *build.Build) (build.StageResult, error)
}
