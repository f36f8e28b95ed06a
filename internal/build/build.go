// Package build holds the build record that stage plugins report into: an append-only list of errors and a key-value
// metadata store.
package build

import (
	"time"

	"github.com/google/uuid"
)

// Stage is a named phase of a build pipeline.
type Stage string

const (
	StageSetup    Stage = "setup"
	StageTest     Stage = "test"
	StageComplete Stage = "complete"
	StageSuccess  Stage = "success"
	StageFailure  Stage = "failure"
)

// Stages lists all stages in pipeline order.
var Stages = []Stage{StageSetup, StageTest, StageComplete, StageSuccess, StageFailure}

// IsValid reports whether s is one of the known stages.
func (s Stage) IsValid() bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}

	return false
}

// Severity is the unified severity scale shared by all plugins.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityNormal   Severity = "NORMAL"
	SeverityLow      Severity = "LOW"
)

// Error is an error reported by a plugin against a build. It is never modified after it was reported.
type Error struct {
	ID        string    `yaml:"id"`
	Plugin    string    `yaml:"plugin"`
	Message   string    `yaml:"message"`
	Severity  Severity  `yaml:"severity"`
	File      *string   `yaml:"file,omitempty"`
	Line      *int      `yaml:"line,omitempty"`
	CreatedAt time.Time `yaml:"created-at"`
}

// StageStatus is the outcome of a single stage.
type StageStatus string

const (
	StageStatusPassed  StageStatus = "passed"
	StageStatusFailed  StageStatus = "failed"
	StageStatusSkipped StageStatus = "skipped"
)

// StageResult records how a stage and each of its plugins went.
type StageResult struct {
	Status     StageStatus            `yaml:"status"`
	Plugins    map[string]StageStatus `yaml:"plugins,omitempty"`
	Errors     map[string]string      `yaml:"errors,omitempty"`
	StartedAt  time.Time              `yaml:"started-at"`
	FinishedAt time.Time              `yaml:"finished-at"`
}

// Provenance describes where the code of a build comes from.
type Provenance struct {
	Provider      string `yaml:"provider"`
	Branch        string `yaml:"branch,omitempty"`
	Commit        string `yaml:"commit,omitempty"`
	CommitMessage string `yaml:"commit-message,omitempty"`
	AttemptedBy   string `yaml:"attempted-by,omitempty"`
	BuildURL      string `yaml:"build-url,omitempty"`
}

// Build is a single build of a project. A build is written to by its own worker only.
type Build struct {
	ID        string                `yaml:"id"`
	Root      string                `yaml:"root"`
	Source    Provenance            `yaml:"source"`
	CreatedAt time.Time             `yaml:"created-at"`
	Meta      map[string]any        `yaml:"meta"`
	Errors    []Error               `yaml:"errors"`
	Stages    map[Stage]StageResult `yaml:"stages"`

	now func() time.Time
}

// New returns a new, empty build rooted at root.
func New(root string) *Build {
	b := &Build{
		ID:     uuid.NewString(),
		Root:   root,
		Meta:   make(map[string]any),
		Errors: make([]Error, 0),
		Stages: make(map[Stage]StageResult),
	}
	b.CreatedAt = b.Now()

	return b
}

// StoreMeta stores value under key. An existing value is overwritten.
func (b *Build) StoreMeta(key string, value any) {
	if b.Meta == nil {
		b.Meta = make(map[string]any)
	}

	b.Meta[key] = value
}

// ReportError appends an error to the build and returns it.
func (b *Build) ReportError(plugin, message string, severity Severity, file *string, line *int) Error {
	err := Error{
		ID:        uuid.NewString(),
		Plugin:    plugin,
		Message:   message,
		Severity:  severity,
		File:      file,
		Line:      line,
		CreatedAt: b.Now(),
	}
	b.Errors = append(b.Errors, err)

	return err
}

// ErrorsFor returns the errors that plugin reported, in reporting order.
func (b *Build) ErrorsFor(plugin string) []Error {
	errs := make([]Error, 0)
	for _, err := range b.Errors {
		if err.Plugin == plugin {
			errs = append(errs, err)
		}
	}

	return errs
}

// RecordStage stores the result of a stage, replacing an earlier result of the same stage.
func (b *Build) RecordStage(stage Stage, result StageResult) {
	if b.Stages == nil {
		b.Stages = make(map[Stage]StageResult)
	}

	b.Stages[stage] = result
}

// SetClock replaces the clock used for timestamps.
func (b *Build) SetClock(now func() time.Time) {
	b.now = now
}

// Now returns the current time of the build's clock, in UTC.
func (b *Build) Now() time.Time {
	if b.now != nil {
		return b.now().UTC()
	}

	return time.Now().UTC()
}
