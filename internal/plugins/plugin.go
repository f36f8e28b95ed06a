// Package plugins holds the test-stage plugins testrig can run. A plugin decides on its own whether it applies to a
// stage, resolves its configuration once into an immutable Config and then executes against a build.
package plugins

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/exec"
	"github.com/rwx-research/testrig-cli/internal/ingest"
)

// Plugin is a test-stage plugin.
type Plugin interface {
	// Name is the name errors & metadata are recorded under.
	Name() string
	// CanExecute reports whether the plugin applies to stage. It only ever inspects the file-system.
	CanExecute(stage build.Stage, buildRoot string) bool
	// Resolve turns the user-supplied options into the Config for a single execution. It fails with a
	// ConfigurationError if no configuration can be found.
	Resolve(buildRoot string, options Options) (Config, error)
	// Execute runs the plugin and records its findings on b. The returned verdict is the one of the external tool,
	// diagnostics are recorded on b regardless.
	Execute(ctx context.Context, config Config, b ingest.Build) (bool, error)
}

// CommandRunner runs the external tool of a plugin.
type CommandRunner interface {
	Run(ctx context.Context, inv exec.Invocation) (exec.ExecutionResult, error)
}

// Format is the report format a plugin asks its tool for.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// Options are the user-supplied settings of a plugin, usually read from `plugins.<name>` of the testrig config.
type Options struct {
	// Config lists config files or glob patterns. Relative entries are resolved against the build root.
	Config          []string      `mapstructure:"config" validate:"dive,required"`
	Args            string        `mapstructure:"args"`
	ReportDirectory string        `mapstructure:"report-directory"`
	Format          Format        `mapstructure:"format" validate:"omitempty,oneof=json xml"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gte=0"`
	// AllowFailures keeps the stage passing when the plugin fails. Its errors are still recorded.
	AllowFailures bool `mapstructure:"allow-failures"`
}

// Config is the resolved configuration of a single plugin execution. It is not modified after Resolve.
type Config struct {
	BuildRoot       string
	ConfigFiles     []string
	Args            string
	ReportDirectory string
	Format          Format
	Timeout         time.Duration
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})

	return validateInst
}

// Validate checks the options for values no plugin could work with.
func (o Options) Validate() error {
	err := validatorInstance().Struct(o)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.NewInternalError("unable to validate plugin options: %s", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf(
			"%s failed validation for tag '%s'",
			strings.ToLower(fieldError.Field()), fieldError.Tag(),
		))
	}

	return errors.NewConfigurationError("invalid plugin options: %s", strings.Join(messages, ", "))
}
