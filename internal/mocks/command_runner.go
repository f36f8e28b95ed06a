package mocks

import (
	"context"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/exec"
)

// CommandRunner is a mocked implementation of 'plugins.CommandRunner'.
type CommandRunner struct {
	MockRun func(ctx context.Context, inv exec.Invocation) (exec.ExecutionResult, error)
}

// Run either calls the configured mock of itself or returns an error if that doesn't exist.
func (c *CommandRunner) Run(ctx context.Context, inv exec.Invocation) (exec.ExecutionResult, error) {
	if c.MockRun != nil {
		return c.MockRun(ctx, inv)
	}

	return exec.ExecutionResult{}, errors.NewInternalError("MockRun was not configured")
}
