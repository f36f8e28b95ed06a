// Package errors is our internal errors package. It should be used in place of the standard "errors" package,
// "golang.org/x/xerrors", or "fmt.Errorf".
// This package ensures that all errors have a correct category & collect stack-traces.
package errors

import "golang.org/x/xerrors"

// ConfigurationError represents a configuration error. A plugin that could not resolve a configuration file for the
// external tool fails with this error.
type ConfigurationError struct {
	E error
}

// NewConfigurationError returns a new ConfigurationError
func NewConfigurationError(msg string, a ...any) ConfigurationError {
	return ConfigurationError{E: xerrors.Errorf(msg, a...)}
}

// AsConfigurationError checks whether the error is a configuration error
func AsConfigurationError(err error) (ConfigurationError, bool) {
	var e ConfigurationError
	ok := As(err, &e)
	return e, ok
}

func (e ConfigurationError) Error() string { return e.E.Error() }
func (e ConfigurationError) Unwrap() error { return e.E }

// BinaryNotFoundError is returned when the executable of an external tool could not be resolved. It is distinct from
// a tool that ran and reported failures.
type BinaryNotFoundError struct {
	E      error
	Binary string
	Paths  []string
}

// NewBinaryNotFoundError returns a new BinaryNotFoundError
func NewBinaryNotFoundError(binary string, paths []string) BinaryNotFoundError {
	return BinaryNotFoundError{
		E:      xerrors.Errorf("unable to find binary %q", binary),
		Binary: binary,
		Paths:  paths,
	}
}

// AsBinaryNotFoundError checks whether the error is a binary-not-found error
func AsBinaryNotFoundError(err error) (BinaryNotFoundError, bool) {
	var e BinaryNotFoundError
	ok := As(err, &e)
	return e, ok
}

func (e BinaryNotFoundError) Error() string { return e.E.Error() }
func (e BinaryNotFoundError) Unwrap() error { return e.E }

// Description is part of the detailedError interface
func (e BinaryNotFoundError) Description() string {
	return "The external test runner could not be located on the PATH or inside the build directory."
}

// Resolution is part of the detailedError interface
func (e BinaryNotFoundError) Resolution() string {
	if len(e.Paths) == 0 {
		return "Install the tool or add it to the PATH of the build worker."
	}

	return "Install the tool or add it to the PATH of the build worker. Searched:\n" + listPaths(e.Paths)
}

// Type is part of the detailedError interface
func (e BinaryNotFoundError) Type() string { return "Binary not found" }

// ReportMissingError is returned when the external tool did not produce a report at the expected location.
type ReportMissingError struct {
	E    error
	Path string
}

// NewReportMissingError returns a new ReportMissingError
func NewReportMissingError(path string) ReportMissingError {
	return ReportMissingError{E: xerrors.Errorf("report file does not exist: %s", path), Path: path}
}

// AsReportMissingError checks whether the error is a report-missing error
func AsReportMissingError(err error) (ReportMissingError, bool) {
	var e ReportMissingError
	ok := As(err, &e)
	return e, ok
}

func (e ReportMissingError) Error() string { return e.E.Error() }
func (e ReportMissingError) Unwrap() error { return e.E }

// Description is part of the detailedError interface
func (e ReportMissingError) Description() string {
	return "The test runner finished without writing a report to " + e.Path + "."
}

// Resolution is part of the detailedError interface
func (e ReportMissingError) Resolution() string {
	return "Check the output of the test runner. If its config declares `paths.log`, the report is expected there."
}

// Type is part of the detailedError interface
func (e ReportMissingError) Type() string { return "Report missing" }

// ParseError is returned when a report violates its format. Nothing that was parsed before the violation is kept.
type ParseError struct {
	E error
}

// NewParseError returns a new ParseError
func NewParseError(msg string, a ...any) ParseError {
	return ParseError{E: xerrors.Errorf(msg, a...)}
}

// AsParseError checks whether the error is a parse error
func AsParseError(err error) (ParseError, bool) {
	var e ParseError
	ok := As(err, &e)
	return e, ok
}

func (e ParseError) Error() string { return e.E.Error() }
func (e ParseError) Unwrap() error { return e.E }

// ExecutionError is an error that was encountered during the execution of a different task. Specifically, this is
// being used with the `testrig run` command to communicate the exit code of a failing stage.
type ExecutionError struct {
	E    error
	Code int
}

// NewExecutionError returns a new ExecutionError
func NewExecutionError(code int, msg string, a ...any) ExecutionError {
	return ExecutionError{Code: code, E: xerrors.Errorf(msg, a...)}
}

// AsExecutionError checks whether the error is an execution error.
func AsExecutionError(err error) (ExecutionError, bool) {
	var e ExecutionError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e ExecutionError) Error() string { return e.E.Error() }
func (e ExecutionError) Unwrap() error { return e.E }

// InputError is an error caused by user input
type InputError struct {
	E error
}

// NewInputError returns a new InputError
func NewInputError(msg string, a ...any) InputError {
	return InputError{E: xerrors.Errorf(msg, a...)}
}

// AsInputError checks whether the error is an input error
func AsInputError(err error) (InputError, bool) {
	var e InputError
	ok := As(err, &e)
	return e, ok
}

func (e InputError) Error() string { return e.E.Error() }
func (e InputError) Unwrap() error { return e.E }

// InternalError is an internal error. This error type should only be used if an end-user cannot act upon it.
type InternalError struct {
	E error
}

// NewInternalError returns a new InternalError
func NewInternalError(msg string, a ...any) InternalError {
	return InternalError{E: xerrors.Errorf(msg, a...)}
}

// AsInternalError checks whether the error is an internal error
func AsInternalError(err error) (InternalError, bool) {
	var e InternalError
	ok := As(err, &e)
	return e, ok
}

func (e InternalError) Error() string { return e.E.Error() }
func (e InternalError) Unwrap() error { return e.E }

// SystemError is returned when we encountered a system error, most likely during a file read or write.
type SystemError struct {
	E error
}

// NewSystemError returns a new SystemError
func NewSystemError(msg string, a ...any) SystemError {
	return SystemError{E: xerrors.Errorf(msg, a...)}
}

// AsSystemError checks whether the error is a system error
func AsSystemError(err error) (SystemError, bool) {
	var e SystemError
	ok := As(err, &e)
	return e, ok
}

func (e SystemError) Error() string { return e.E.Error() }
func (e SystemError) Unwrap() error { return e.E }
