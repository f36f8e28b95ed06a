package exec

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
	"github.com/rwx-research/testrig-cli/internal/templating"
)

// BinaryKeyword is the template keyword that is replaced with the resolved executable.
const BinaryKeyword = "binary"

// Invocation describes a single run of an external tool.
type Invocation struct {
	// Executable is the bare name of the tool, e.g. `codecept`.
	Executable string
	// SearchDirs are checked, in order, before the PATH.
	SearchDirs []string
	// Template is the command line, e.g. `{{ binary }} run -c {{ config }} --json {{ args }}`.
	Template string
	// Substitutions holds a value for every keyword of Template besides `binary`. Values are inserted verbatim, so
	// callers need to quote them where necessary.
	Substitutions    map[string]string
	WorkingDirectory string
	// Env holds additional `KEY=value` pairs for the tool's environment.
	Env []string
}

// ExecutionResult is the outcome of a command. A failing command is not an error.
type ExecutionResult struct {
	Command  []string
	ExitCode int
	Output   string
	Success  bool
}

// Runner resolves and executes external tools.
type Runner struct {
	FileSystem fs.FileSystem
	Log        *zap.SugaredLogger
	TaskRunner TaskRunner

	// Output optionally receives the combined output of the tool while it runs.
	Output io.Writer
}

// Resolve returns the path of the named executable. The search directories take precedence over the PATH.
func (r Runner) Resolve(name string, searchDirs []string) (string, error) {
	candidates := executableNames(name)
	searched := make([]string, 0, len(searchDirs)+1)

	for _, dir := range searchDirs {
		searched = append(searched, dir)

		for _, candidate := range candidates {
			path := filepath.Join(dir, candidate)

			info, err := r.FileSystem.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}

			r.Log.Debugf("Resolved %q to %q", name, path)
			return path, nil
		}
	}

	searched = append(searched, "$PATH")
	for _, candidate := range candidates {
		if path, err := r.TaskRunner.LookPath(candidate); err == nil {
			r.Log.Debugf("Resolved %q to %q", name, path)
			return path, nil
		}
	}

	return "", errors.NewBinaryNotFoundError(name, searched)
}

// Run resolves the executable, renders the command line and executes it. A non-zero exit code is reported through
// `ExecutionResult.Success`. Errors are only returned if the command could not be run at all, or if ctx ended before
// the command finished.
func (r Runner) Run(ctx context.Context, inv Invocation) (ExecutionResult, error) {
	binary, err := r.Resolve(inv.Executable, inv.SearchDirs)
	if err != nil {
		return ExecutionResult{}, errors.WithStack(err)
	}

	args, err := commandLine(binary, inv)
	if err != nil {
		return ExecutionResult{}, errors.WithStack(err)
	}

	var output bytes.Buffer
	var writer io.Writer = &output
	if r.Output != nil {
		writer = io.MultiWriter(&output, r.Output)
	}

	cmd, err := r.TaskRunner.NewCommand(ctx, CommandConfig{
		Args:   args[1:],
		Dir:    inv.WorkingDirectory,
		Env:    inv.Env,
		Name:   args[0],
		Stderr: writer,
		Stdout: writer,
	})
	if err != nil {
		return ExecutionResult{}, errors.NewSystemError("unable to spawn sub-process: %s", err)
	}

	r.Log.Debugf("Executing %q in %q", strings.Join(args, " "), inv.WorkingDirectory)
	if err := cmd.Start(); err != nil {
		return ExecutionResult{}, errors.NewSystemError("unable to execute %q: %s", args[0], err)
	}

	waitErr := cmd.Wait()
	result := ExecutionResult{Command: args, Output: output.String(), Success: waitErr == nil}

	if waitErr == nil {
		r.Log.Debugf("%q finished successfully", inv.Executable)
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, errors.NewExecutionError(-1, "%q was interrupted: %s", inv.Executable, ctxErr)
	}

	code, err := r.TaskRunner.GetExitStatusFromError(waitErr)
	if err != nil {
		return result, errors.NewSystemError("unable to determine exit status of %q: %s", inv.Executable, waitErr)
	}

	r.Log.Debugf("%q exited with status %d", inv.Executable, code)
	result.ExitCode = code

	return result, nil
}

func commandLine(binary string, inv Invocation) ([]string, error) {
	compiled, err := templating.CompileTemplate(inv.Template)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	lookup := make(map[string]string, len(inv.Substitutions)+1)
	for keyword, value := range inv.Substitutions {
		lookup[keyword] = value
	}
	lookup[BinaryKeyword] = templating.ShellQuote(binary)

	line, err := compiled.Substitute(lookup)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, errors.NewInputError("Unable to parse %q into shell arguments: %s", line, err)
	}

	if len(args) == 0 {
		return nil, errors.NewInputError("No command was provided")
	}

	return args, nil
}

func executableNames(name string) []string {
	if runtime.GOOS == "windows" {
		return []string{name + ".bat", name + ".exe", name}
	}

	return []string{name, name + ".phar"}
}
