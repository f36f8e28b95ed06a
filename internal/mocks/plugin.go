package mocks

import (
	"context"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/ingest"
	"github.com/rwx-research/testrig-cli/internal/plugins"
)

// Plugin is a mocked implementation of 'plugins.Plugin'.
type Plugin struct {
	PluginName     string
	MockCanExecute func(stage build.Stage, buildRoot string) bool
	MockResolve    func(buildRoot string, options plugins.Options) (plugins.Config, error)
	MockExecute    func(ctx context.Context, config plugins.Config, b ingest.Build) (bool, error)
}

// Name returns the configured plugin name.
func (p *Plugin) Name() string {
	return p.PluginName
}

// CanExecute either calls the configured mock of itself or returns false if that doesn't exist.
func (p *Plugin) CanExecute(stage build.Stage, buildRoot string) bool {
	if p.MockCanExecute != nil {
		return p.MockCanExecute(stage, buildRoot)
	}

	return false
}

// Resolve either calls the configured mock of itself or returns an error if that doesn't exist.
func (p *Plugin) Resolve(buildRoot string, options plugins.Options) (plugins.Config, error) {
	if p.MockResolve != nil {
		return p.MockResolve(buildRoot, options)
	}

	return plugins.Config{}, errors.NewInternalError("MockResolve was not configured")
}

// Execute either calls the configured mock of itself or returns an error if that doesn't exist.
func (p *Plugin) Execute(ctx context.Context, config plugins.Config, b ingest.Build) (bool, error) {
	if p.MockExecute != nil {
		return p.MockExecute(ctx, config, b)
	}

	return false, errors.NewInternalError("MockExecute was not configured")
}
