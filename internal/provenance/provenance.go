// Package provenance determines where the code of a build comes from: the CI provider it runs on, the branch and the
// commit. Values the CI environment does not provide are read from the git repository of the build root.
package provenance

import (
	"github.com/caarlos0/env/v7"
	"go.uber.org/zap"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

// Env holds the environment variables of all supported CI providers.
type Env struct {
	Buildkite BuildkiteEnv
	CircleCI  CircleCIEnv
	GitHub    GitHubEnv
	GitLab    GitLabEnv
}

// ReadEnv reads the provider environment. A nil environment means the environment of the current process.
func ReadEnv(environment map[string]string) (Env, error) {
	var cfg Env

	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, errors.NewConfigurationError("unable to read CI environment: %s", err)
	}

	return cfg, nil
}

// Provenance returns the provenance reported by the first detected provider.
func (e Env) Provenance() build.Provenance {
	switch {
	case e.GitHub.Detected:
		return e.GitHub.provenance()
	case e.GitLab.Detected:
		return e.GitLab.provenance()
	case e.Buildkite.Detected:
		return e.Buildkite.provenance()
	case e.CircleCI.Detected:
		return e.CircleCI.provenance()
	default:
		return build.Provenance{Provider: "local"}
	}
}

// Detector resolves the provenance of builds.
type Detector struct {
	Env Env
	Log *zap.SugaredLogger
}

// Detect returns the provenance of the build at buildRoot. Missing values are taken from git; a build root that is
// not a git repository only results in less information.
func (d Detector) Detect(buildRoot string) build.Provenance {
	provenance := d.Env.Provenance()
	if provenance.Commit != "" && provenance.Branch != "" && provenance.CommitMessage != "" {
		return provenance
	}

	head, err := gitHead(buildRoot)
	if err != nil {
		d.Log.Debugf("Unable to read git metadata of %q: %s", buildRoot, err)
		return provenance
	}

	provenance.Commit = firstNonEmpty(provenance.Commit, head.Commit)
	provenance.Branch = firstNonEmpty(provenance.Branch, head.Branch)
	provenance.CommitMessage = firstNonEmpty(provenance.CommitMessage, head.CommitMessage)
	provenance.AttemptedBy = firstNonEmpty(provenance.AttemptedBy, head.AttemptedBy)

	return provenance
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
