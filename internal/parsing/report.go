package parsing

import (
	"path/filepath"
	"strings"
	"time"
)

// TestStatus is the normalized outcome of a single test.
type TestStatus string

const (
	TestStatusPass    TestStatus = "pass"
	TestStatusFail    TestStatus = "fail"
	TestStatusError   TestStatus = "error"
	TestStatusSkipped TestStatus = "skipped"
)

// NativeSeverity is the severity tag of a failure as the external tool reported it. It is never stored on a build,
// see the classify package for the mapping onto the unified scale.
type NativeSeverity string

const (
	NativeSeverityError   NativeSeverity = "error"
	NativeSeverityFail    NativeSeverity = "fail"
	NativeSeverityWarning NativeSeverity = "warning"
	NativeSeverityRisky   NativeSeverity = "risky"
)

// TestResult is the outcome of one test, in report order.
type TestResult struct {
	Suite    string        `json:"suite" yaml:"suite"`
	Name     string        `json:"name" yaml:"name"`
	Status   TestStatus    `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"`
}

// FailureRecord is a diagnostic anchored to a file & line. File and Line are nil if the tool did not report a
// location.
type FailureRecord struct {
	Test           string         `json:"test" yaml:"test"`
	Message        string         `json:"message" yaml:"message"`
	File           *string        `json:"file" yaml:"file"`
	Line           *int           `json:"line" yaml:"line"`
	NativeSeverity NativeSeverity `json:"severity" yaml:"severity"`
}

// Report is the parsed content of a single report file.
type Report struct {
	Results  []TestResult    `json:"results" yaml:"results"`
	Failures []FailureRecord `json:"failures" yaml:"failures"`
}

// NewReport returns an empty report. Both sequences are non-nil so that empty reports serialize as empty lists.
func NewReport() *Report {
	return &Report{Results: make([]TestResult, 0), Failures: make([]FailureRecord, 0)}
}

// relativeTo strips buildRoot from file. Files outside the build root are returned unchanged.
func relativeTo(buildRoot, file string) string {
	if buildRoot == "" || !filepath.IsAbs(file) {
		return file
	}

	rel, err := filepath.Rel(buildRoot, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return file
	}

	return rel
}

func durationFromSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second)).Round(time.Microsecond)
}

// Merge appends the results and failures of other to r.
func (r *Report) Merge(other *Report) {
	r.Results = append(r.Results, other.Results...)
	r.Failures = append(r.Failures, other.Failures...)
}
