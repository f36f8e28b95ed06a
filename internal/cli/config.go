package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/plugins"
)

const (
	// ConfigName is the name of the config file in the build root, i.e. `testrig.yaml` or `testrig.yml`.
	ConfigName = "testrig"
	// DefaultDataDir is where builds are stored unless configured otherwise. Relative to the build root.
	DefaultDataDir = ".testrig/builds"

	envPrefix = "TESTRIG"
)

// Config is the configuration of testrig. Flags take precedence over environment variables, which take precedence
// over the config file.
type Config struct {
	BuildRoot string                     `mapstructure:"build-root"`
	DataDir   string                     `mapstructure:"data-dir"`
	Debug     bool                       `mapstructure:"debug"`
	Plugins   map[string]plugins.Options `mapstructure:"plugins"`
}

// LoadConfig reads the configuration into v. The config file is looked up in the build root, which defaults to the
// working directory.
func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"build-root", "data-dir", "debug"} {
		if err := v.BindEnv(key); err != nil {
			return cfg, errors.NewInternalError("unable to bind %q to the environment: %s", key, err)
		}
	}

	buildRoot, err := absoluteBuildRoot(v.GetString("build-root"))
	if err != nil {
		return cfg, errors.WithStack(err)
	}

	v.SetConfigName(ConfigName)
	v.AddConfigPath(buildRoot)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, errors.NewConfigurationError("unable to read %s: %s", v.ConfigFileUsed(), err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.NewConfigurationError("unable to parse configuration: %s", err)
	}

	cfg.BuildRoot = buildRoot

	switch {
	case cfg.DataDir == "":
		cfg.DataDir = filepath.Join(buildRoot, DefaultDataDir)
	case !filepath.IsAbs(cfg.DataDir):
		cfg.DataDir = filepath.Join(buildRoot, cfg.DataDir)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.WithStack(err)
	}

	return cfg, nil
}

// Validate checks the options of every configured plugin.
func (cfg Config) Validate() error {
	names := make([]string, 0, len(cfg.Plugins))
	for name := range cfg.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := cfg.Plugins[name].Validate(); err != nil {
			return errors.Wrapf(err, "plugins.%s", name)
		}
	}

	return nil
}

func absoluteBuildRoot(buildRoot string) (string, error) {
	if buildRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.NewSystemError("unable to determine the working directory: %s", err)
		}

		return wd, nil
	}

	abs, err := filepath.Abs(buildRoot)
	if err != nil {
		return "", errors.NewConfigurationError("invalid build root %q: %s", buildRoot, err)
	}

	return abs, nil
}
