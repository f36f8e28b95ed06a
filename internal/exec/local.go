// Package exec runs the external tools of test-stage plugins. `Local` is a thin wrapper around `os/exec`, `Runner`
// resolves the tool, renders its command line and captures its outcome.
package exec

import (
	"context"
	"os/exec"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

// Local is a local executioner. It wraps `os/exec`
type Local struct{}

// NewCommand returns a new command that can then be executed. The command runs in its own process group which is
// killed once ctx is done.
func (l Local) NewCommand(ctx context.Context, cfg CommandConfig) (Command, error) {
	//nolint:gosec // Spawning a user-configurable sub-process is expected here.
	cmd := exec.CommandContext(ctx, cfg.Name, cfg.Args...)

	cmd.Dir = cfg.Dir
	cmd.Stderr = cfg.Stderr
	cmd.Stdout = cfg.Stdout

	if len(cfg.Env) > 0 {
		cmd.Env = append(cmd.Environ(), cfg.Env...)
	}

	configureProcessGroup(cmd)

	return cmd, nil
}

// GetExitStatusFromError extracts the exit code from an error
func (l Local) GetExitStatusFromError(err error) (int, error) {
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode(), nil
	}

	return 0, errors.NewInternalError("Expected error to be of type exec.ExitError, received %T", err)
}

// LookPath searches the PATH for an executable named file.
func (l Local) LookPath(file string) (string, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return path, nil
}
