// Package stage runs all eligible plugins of a single build stage and records the outcome on the build.
package stage

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/plugins"
)

// Runner runs the plugins of a registry stage by stage. Options are looked up by plugin name.
type Runner struct {
	Log      *zap.SugaredLogger
	Options  map[string]plugins.Options
	Registry plugins.Registry
}

// Validate checks that every plugin with options is registered.
func (r Runner) Validate() error {
	names := make([]string, 0, len(r.Options))
	for name := range r.Options {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := r.Registry.Lookup(name); !ok {
			return errors.NewConfigurationError(
				"plugins.%s configures an unknown plugin, known plugins are: %s",
				name, strings.Join(r.Registry.Names(), ", "),
			)
		}
	}

	return nil
}

// Eligible returns the plugins that apply to stage, in registration order. Eligibility checks only inspect the
// file-system, so they run concurrently.
func (r Runner) Eligible(ctx context.Context, stage build.Stage, buildRoot string) ([]plugins.Plugin, error) {
	all := r.Registry.All()
	eligible := make([]bool, len(all))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, plugin := range all {
		i, plugin := i, plugin
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return errors.WithStack(err)
			}

			eligible[i] = plugin.CanExecute(stage, buildRoot)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.NewSystemError("unable to determine eligible plugins: %s", err)
	}

	result := make([]plugins.Plugin, 0, len(all))
	for i, plugin := range all {
		if eligible[i] {
			result = append(result, plugin)
		}
	}

	return result, nil
}

// Run executes the eligible plugins of stage one after another and records the stage result on b. A plugin that
// cannot be configured or executed fails the stage, the remaining plugins still run. The returned error is reserved
// for problems with the stage itself; plugin failures are part of the result.
func (r Runner) Run(ctx context.Context, stage build.Stage, b *build.Build) (build.StageResult, error) {
	if !stage.IsValid() {
		return build.StageResult{}, errors.NewInputError("unknown stage %q", stage)
	}

	startedAt := b.Now()

	eligible, err := r.Eligible(ctx, stage, b.Root)
	if err != nil {
		return build.StageResult{}, errors.WithStack(err)
	}

	result := build.StageResult{
		Status:    build.StageStatusPassed,
		Plugins:   make(map[string]build.StageStatus, len(eligible)),
		Errors:    make(map[string]string),
		StartedAt: startedAt,
	}

	if len(eligible) == 0 {
		r.Log.Infof("No plugins apply to the %s stage", stage)
		result.Status = build.StageStatusSkipped
		result.FinishedAt = b.Now()
		b.RecordStage(stage, result)
		return result, nil
	}

	for _, plugin := range eligible {
		options := r.Options[plugin.Name()]

		r.Log.Infof("RUNNING PLUGIN: %s", plugin.Name())
		success, err := r.execute(ctx, plugin, options, b)

		switch {
		case err != nil:
			r.Log.Errorf("PLUGIN: %s FAILED: %s", plugin.Name(), err)
			result.Errors[plugin.Name()] = err.Error()
			result.Plugins[plugin.Name()] = build.StageStatusFailed
		case !success:
			r.Log.Warnf("PLUGIN: %s FAILED", plugin.Name())
			result.Plugins[plugin.Name()] = build.StageStatusFailed
		default:
			r.Log.Infof("PLUGIN: %s SUCCESS", plugin.Name())
			result.Plugins[plugin.Name()] = build.StageStatusPassed
		}

		if result.Plugins[plugin.Name()] == build.StageStatusFailed {
			if options.AllowFailures {
				r.Log.Infof("Failures of %s are allowed", plugin.Name())
				continue
			}

			result.Status = build.StageStatusFailed
		}
	}

	result.FinishedAt = b.Now()
	b.RecordStage(stage, result)

	return result, nil
}

func (r Runner) execute(
	ctx context.Context,
	plugin plugins.Plugin,
	options plugins.Options,
	b *build.Build,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.NewExecutionError(-1, "%s was not started: %s", plugin.Name(), err)
	}

	config, err := plugin.Resolve(b.Root, options)
	if err != nil {
		return false, errors.WithStack(err)
	}

	success, err := plugin.Execute(ctx, config, b)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return success, nil
}
