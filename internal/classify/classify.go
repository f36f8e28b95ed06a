// Package classify maps the native severities of external tools onto the unified build severity scale.
package classify

import (
	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/parsing"
)

// Table is a severity mapping. Severities without an entry map onto the fallback severity.
type Table struct {
	entries  map[parsing.NativeSeverity]build.Severity
	fallback build.Severity
}

// NewTable returns a table with the given entries and fallback.
func NewTable(entries map[parsing.NativeSeverity]build.Severity, fallback build.Severity) Table {
	copied := make(map[parsing.NativeSeverity]build.Severity, len(entries))
	for native, severity := range entries {
		copied[native] = severity
	}

	return Table{entries: copied, fallback: fallback}
}

// DefaultTable maps errors onto CRITICAL. Everything else, including unknown severities, is HIGH.
func DefaultTable() Table {
	return NewTable(map[parsing.NativeSeverity]build.Severity{
		parsing.NativeSeverityError:   build.SeverityCritical,
		parsing.NativeSeverityFail:    build.SeverityHigh,
		parsing.NativeSeverityWarning: build.SeverityHigh,
		parsing.NativeSeverityRisky:   build.SeverityHigh,
	}, build.SeverityHigh)
}

// Classify returns the unified severity of native.
func (t Table) Classify(native parsing.NativeSeverity) build.Severity {
	if severity, ok := t.entries[native]; ok {
		return severity
	}

	return t.fallback
}

// With returns a copy of the table with an additional (or replaced) entry.
func (t Table) With(native parsing.NativeSeverity, severity build.Severity) Table {
	extended := NewTable(t.entries, t.fallback)
	extended.entries[native] = severity

	return extended
}
