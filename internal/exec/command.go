package exec

import (
	"context"
	"io"
)

// Command is a process that was configured but may not have been started yet. `*exec.Cmd` satisfies it.
type Command interface {
	Start() error
	Wait() error
}

// CommandConfig describes the process a TaskRunner should create. Env is appended to the environment of the current
// process.
type CommandConfig struct {
	Args   []string
	Dir    string
	Env    []string
	Name   string
	Stderr io.Writer
	Stdout io.Writer
}

// TaskRunner is an abstraction over execution environments. `Local` is the only production implementation.
type TaskRunner interface {
	GetExitStatusFromError(error) (int, error)
	LookPath(file string) (string, error)
	NewCommand(ctx context.Context, cfg CommandConfig) (Command, error)
}
