package mocks

import (
	"context"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/exec"
)

// TaskRunner is a mocked implementation of 'exec.TaskRunner'.
type TaskRunner struct {
	MockGetExitStatusFromError func(error) (int, error)
	MockLookPath               func(file string) (string, error)
	MockNewCommand             func(ctx context.Context, cfg exec.CommandConfig) (exec.Command, error)
}

// GetExitStatusFromError either calls the configured mock of itself or returns an error if that doesn't exist.
func (t *TaskRunner) GetExitStatusFromError(err error) (int, error) {
	if t.MockGetExitStatusFromError != nil {
		return t.MockGetExitStatusFromError(err)
	}

	return 0, errors.NewInternalError("MockGetExitStatusFromError was not configured")
}

// LookPath either calls the configured mock of itself or returns an error if that doesn't exist.
func (t *TaskRunner) LookPath(file string) (string, error) {
	if t.MockLookPath != nil {
		return t.MockLookPath(file)
	}

	return "", errors.NewInternalError("MockLookPath was not configured")
}

// NewCommand either calls the configured mock of itself or returns an error if that doesn't exist.
func (t *TaskRunner) NewCommand(ctx context.Context, cfg exec.CommandConfig) (exec.Command, error) {
	if t.MockNewCommand != nil {
		return t.MockNewCommand(ctx, cfg)
	}

	return nil, errors.NewInternalError("MockNewCommand was not configured")
}
