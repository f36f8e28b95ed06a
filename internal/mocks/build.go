package mocks

import (
	"github.com/rwx-research/testrig-cli/internal/build"
)

// ReportedError is a single call to 'Build.ReportError'.
type ReportedError struct {
	Plugin   string
	Message  string
	Severity build.Severity
	File     *string
	Line     *int
}

// Build is a recording implementation of 'ingest.Build'.
type Build struct {
	Meta     map[string]any
	Reported []ReportedError
}

// StoreMeta records the value under key.
func (b *Build) StoreMeta(key string, value any) {
	if b.Meta == nil {
		b.Meta = make(map[string]any)
	}

	b.Meta[key] = value
}

// ReportError records the call and returns a matching build error.
func (b *Build) ReportError(plugin, message string, severity build.Severity, file *string, line *int) build.Error {
	b.Reported = append(b.Reported, ReportedError{
		Plugin:   plugin,
		Message:  message,
		Severity: severity,
		File:     file,
		Line:     line,
	})

	return build.Error{Plugin: plugin, Message: message, Severity: severity, File: file, Line: line}
}
