// Package cli holds the main business logic of the CLI: running stages against a build, detecting plugins and
// showing stored builds. The terminal UI itself lives in `cmd/testrig`.
package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

// Service is the main CLI service.
type Service struct {
	Log        *zap.SugaredLogger
	Provenance ProvenanceDetector
	Repository BuildRepository
	Stages     StageRunner
}

// RunConfig configures a single `testrig run`.
type RunConfig struct {
	BuildRoot string
	// BuildID continues an existing build instead of starting a new one.
	BuildID string
	// Stages are run in the given order. Without stages the full pipeline runs.
	Stages []build.Stage
}

// Validate checks the configured stages.
func (cfg RunConfig) Validate() error {
	if cfg.BuildRoot == "" {
		return errors.NewConfigurationError("no build root was provided")
	}

	for _, stage := range cfg.Stages {
		if !stage.IsValid() {
			return errors.NewConfigurationError("unknown stage %q, expected one of %v", stage, build.Stages)
		}
	}

	return nil
}

// Run runs stages against a build and stores it afterwards. The returned error is an ExecutionError if any stage
// failed.
func (s Service) Run(ctx context.Context, cfg RunConfig) (*build.Build, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	b, err := s.openBuild(ctx, cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	s.Log.Infof("Build %s of %q", b.ID, b.Root)

	var passed bool
	if len(cfg.Stages) == 0 {
		passed, err = s.runPipeline(ctx, b)
	} else {
		passed, err = s.runStages(ctx, b, cfg.Stages)
	}

	if saveErr := s.Repository.Save(ctx, b); saveErr != nil {
		if err != nil {
			return b, errors.Wrap(err, saveErr.Error())
		}

		return b, errors.WithStack(saveErr)
	}

	if err != nil {
		return b, errors.WithStack(err)
	}

	if !passed {
		return b, errors.NewExecutionError(1, "build %s failed", b.ID)
	}

	s.Log.Infof("Build %s passed", b.ID)

	return b, nil
}

func (s Service) openBuild(ctx context.Context, cfg RunConfig) (*build.Build, error) {
	if cfg.BuildID != "" {
		b, err := s.Repository.Load(ctx, cfg.BuildID)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if b.Root != cfg.BuildRoot {
			return nil, errors.NewInputError("build %s belongs to %q, not %q", b.ID, b.Root, cfg.BuildRoot)
		}

		return b, nil
	}

	b := build.New(cfg.BuildRoot)
	b.Source = s.Provenance.Detect(cfg.BuildRoot)

	return b, nil
}

// runPipeline runs setup & test, then success or failure depending on the outcome and finally complete. The test
// stage is skipped if setup failed.
func (s Service) runPipeline(ctx context.Context, b *build.Build) (bool, error) {
	passed := true

	for _, stage := range []build.Stage{build.StageSetup, build.StageTest} {
		if !passed {
			s.Log.Warnf("Skipping the %s stage", stage)
			now := b.Now()
			b.RecordStage(stage, build.StageResult{Status: build.StageStatusSkipped, StartedAt: now, FinishedAt: now})
			continue
		}

		result, err := s.Stages.Run(ctx, stage, b)
		if err != nil {
			return false, errors.WithStack(err)
		}

		passed = result.Status != build.StageStatusFailed
	}

	outcome := build.StageSuccess
	if !passed {
		outcome = build.StageFailure
	}

	// The outcome & complete stages report on the build, they do not change its verdict.
	for _, stage := range []build.Stage{outcome, build.StageComplete} {
		result, err := s.Stages.Run(ctx, stage, b)
		if err != nil {
			return false, errors.WithStack(err)
		}

		if result.Status == build.StageStatusFailed {
			s.Log.Warnf("The %s stage failed", stage)
		}
	}

	return passed, nil
}

func (s Service) runStages(ctx context.Context, b *build.Build, stages []build.Stage) (bool, error) {
	passed := true

	for _, stage := range stages {
		result, err := s.Stages.Run(ctx, stage, b)
		if err != nil {
			return false, errors.WithStack(err)
		}

		if result.Status == build.StageStatusFailed {
			passed = false
		}
	}

	return passed, nil
}
