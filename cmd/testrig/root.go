package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rwx-research/testrig-cli/internal/build/local"
	"github.com/rwx-research/testrig-cli/internal/cli"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/exec"
	"github.com/rwx-research/testrig-cli/internal/fs"
	"github.com/rwx-research/testrig-cli/internal/logging"
	"github.com/rwx-research/testrig-cli/internal/plugins"
	"github.com/rwx-research/testrig-cli/internal/provenance"
	"github.com/rwx-research/testrig-cli/internal/stage"
)

var (
	cfg                  cli.Config
	initializationErrors []error
	testrig              cli.Service

	rootCmd = &cobra.Command{
		Use:               "testrig",
		Short:             "testrig runs the test-stage plugins of a build and records their findings",
		Long:              descriptionTestrig,
		PersistentPreRunE: initCLIService,
		SilenceErrors:     true, // Errors are manually printed in 'main'
		SilenceUsage:      true, // Disables usage text on error
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("build-root", "", "the directory of the project under test (default: the working directory)")
	flags.String("data-dir", "", "the directory builds are stored in (default: <build-root>/"+cli.DefaultDataDir+")")
	flags.Bool("debug", false, "enable debug output")

	for _, name := range []string{"build-root", "data-dir", "debug"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			initializationErrors = append(initializationErrors, err)
		}
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func initCLIService(cmd *cobra.Command, args []string) error {
	if len(initializationErrors) > 0 {
		return errors.NewInternalError("unable to initialize the command line interface: %v", initializationErrors)
	}

	var err error

	cfg, err = cli.LoadConfig(viper.GetViper())
	if err != nil {
		return errors.WithStack(err)
	}

	logger := logging.New(cfg.Debug)
	fileSystem := fs.Local{}

	env, err := provenance.ReadEnv(nil)
	if err != nil {
		return errors.WithStack(err)
	}

	runner := exec.Runner{
		FileSystem: fileSystem,
		Log:        logger,
		TaskRunner: exec.Local{},
		Output:     os.Stdout,
	}

	registry, err := plugins.NewRegistry(plugins.NewCodeception(fileSystem, logger, runner))
	if err != nil {
		return errors.WithStack(err)
	}

	repository, err := local.NewRepository(fileSystem, cfg.DataDir)
	if err != nil {
		return errors.WithStack(err)
	}

	stages := stage.Runner{
		Log:      logger,
		Options:  cfg.Plugins,
		Registry: registry,
	}
	if err := stages.Validate(); err != nil {
		return errors.WithStack(err)
	}

	testrig = cli.Service{
		Log:        logger,
		Provenance: provenance.Detector{Env: env, Log: logger},
		Repository: repository,
		Stages:     stages,
	}

	return nil
}
