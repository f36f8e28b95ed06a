package plugins

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/classify"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/exec"
	"github.com/rwx-research/testrig-cli/internal/fs"
	"github.com/rwx-research/testrig-cli/internal/ingest"
	"github.com/rwx-research/testrig-cli/internal/locating"
	"github.com/rwx-research/testrig-cli/internal/parsing"
	"github.com/rwx-research/testrig-cli/internal/templating"
)

const (
	CodeceptionName       = "codeception"
	CodeceptionExecutable = "codecept"

	// CodeceptionReportDirectory is where Codeception writes reports unless its config declares `paths.log`.
	CodeceptionReportDirectory = "tests/_output"

	codeceptionJSONTemplate = "{{ binary }} run -c {{ config }} --json {{ args }}"
	codeceptionXMLTemplate  = "{{ binary }} run -c {{ config }} --xml {{ args }}"
)

// Codeception runs Codeception (https://codeception.com) in the test stage.
type Codeception struct {
	Classifier ingest.Classifier
	FileSystem fs.FileSystem
	Locator    locating.Locator
	Log        *zap.SugaredLogger
	Runner     CommandRunner
}

// NewCodeception returns the Codeception plugin with the default config candidates & severity mapping.
func NewCodeception(fileSystem fs.FileSystem, log *zap.SugaredLogger, runner CommandRunner) Codeception {
	return Codeception{
		Classifier: classify.DefaultTable(),
		FileSystem: fileSystem,
		Locator:    locating.Locator{FileSystem: fileSystem, Candidates: locating.DefaultCandidates},
		Log:        log,
		Runner:     runner,
	}
}

func (c Codeception) Name() string {
	return CodeceptionName
}

// CanExecute is true for the test stage of builds that contain a Codeception config.
func (c Codeception) CanExecute(stage build.Stage, buildRoot string) bool {
	if stage != build.StageTest {
		return false
	}

	_, ok := c.Locator.Locate(buildRoot)
	return ok
}

// Resolve prefers explicitly configured config files over the ones found in the build root.
func (c Codeception) Resolve(buildRoot string, options Options) (Config, error) {
	if err := options.Validate(); err != nil {
		return Config{}, errors.WithStack(err)
	}

	config := Config{
		BuildRoot:       buildRoot,
		Args:            options.Args,
		ReportDirectory: options.ReportDirectory,
		Format:          options.Format,
		Timeout:         options.Timeout,
	}

	if config.ReportDirectory == "" {
		config.ReportDirectory = CodeceptionReportDirectory
	}

	if config.Format == "" {
		config.Format = FormatJSON
	}

	if len(options.Config) > 0 {
		patterns := make([]string, 0, len(options.Config))
		for _, pattern := range options.Config {
			if !filepath.IsAbs(pattern) {
				pattern = filepath.Join(buildRoot, pattern)
			}
			patterns = append(patterns, pattern)
		}

		configFiles, err := c.FileSystem.GlobMany(patterns)
		if err != nil {
			return Config{}, errors.NewConfigurationError("unable to expand config patterns: %s", err)
		}

		if len(configFiles) == 0 {
			return Config{}, errors.NewConfigurationError("no Codeception config file matches %v", options.Config)
		}

		config.ConfigFiles = configFiles
		return config, nil
	}

	configFile, ok := c.Locator.Locate(buildRoot)
	if !ok {
		return Config{}, errors.NewConfigurationError("no Codeception config file found in %q", buildRoot)
	}

	config.ConfigFiles = []string{configFile}
	return config, nil
}

// Execute runs Codeception once per config file. The build passes only if every run exits successfully.
func (c Codeception) Execute(ctx context.Context, config Config, b ingest.Build) (bool, error) {
	if len(config.ConfigFiles) == 0 {
		return false, errors.NewConfigurationError("no Codeception config file found in %q", config.BuildRoot)
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	store := &ingest.Store{Build: b, Classifier: c.Classifier, FileSystem: c.FileSystem, Log: c.Log}

	success := true
	for _, configFile := range config.ConfigFiles {
		ok, err := c.runConfigFile(ctx, config, configFile, store)
		if err != nil {
			return false, errors.WithStack(err)
		}

		success = success && ok
	}

	return success, nil
}

func (c Codeception) runConfigFile(
	ctx context.Context,
	config Config,
	configFile string,
	store *ingest.Store,
) (bool, error) {
	template, reportName, parser := codeceptionJSONTemplate, "report.json", parsing.Parser(parsing.CodeceptionJSONParser{})
	if config.Format == FormatXML {
		template, reportName, parser = codeceptionXMLTemplate, "report.xml", parsing.JUnitXMLParser{}
	}

	c.Log.Infof("Running Codeception with %q", configFile)

	result, err := c.Runner.Run(ctx, exec.Invocation{
		Executable: CodeceptionExecutable,
		SearchDirs: []string{
			filepath.Join(config.BuildRoot, "vendor", "bin"),
			filepath.Join(config.BuildRoot, "bin"),
			config.BuildRoot,
		},
		Template: template,
		Substitutions: map[string]string{
			"config": templating.ShellQuote(configFile),
			"args":   config.Args,
		},
		WorkingDirectory: config.BuildRoot,
	})
	if err != nil {
		return false, errors.WithStack(err)
	}

	if !result.Success {
		c.Log.Warnf("Codeception exited with status %d", result.ExitCode)
	}

	toolConfig, err := locating.ReadToolConfig(c.FileSystem, configFile)
	if err != nil {
		return false, errors.WithStack(err)
	}

	reportPath := toolConfig.ReportPath(config.BuildRoot, config.ReportDirectory, reportName)
	if _, err := store.IngestFile(reportPath, config.BuildRoot, c.Name(), parser); err != nil {
		return false, errors.WithStack(err)
	}

	return result.Success, nil
}
