package provenance

import (
	"fmt"
	"strings"

	"github.com/rwx-research/testrig-cli/internal/build"
)

type GitHubEnv struct {
	Detected bool `env:"GITHUB_ACTIONS"`

	ExecutingActor  string `env:"GITHUB_ACTOR"`
	TriggeringActor string `env:"GITHUB_TRIGGERING_ACTOR"`

	EventName string `env:"GITHUB_EVENT_NAME"`
	RefName   string `env:"GITHUB_REF_NAME"`
	HeadRef   string `env:"GITHUB_HEAD_REF"`

	CommitSha  string `env:"GITHUB_SHA"`
	Repository string `env:"GITHUB_REPOSITORY"`
	RunID      string `env:"GITHUB_RUN_ID"`
	ServerURL  string `env:"GITHUB_SERVER_URL" envDefault:"https://github.com"`
}

func (cfg GitHubEnv) provenance() build.Provenance {
	branch := cfg.RefName
	if cfg.EventName == "pull_request" {
		branch = cfg.HeadRef
	}

	var buildURL string
	if cfg.Repository != "" && cfg.RunID != "" {
		buildURL = fmt.Sprintf("%s/%s/actions/runs/%s", strings.TrimSuffix(cfg.ServerURL, "/"), cfg.Repository, cfg.RunID)
	}

	return build.Provenance{
		Provider:    "github",
		Branch:      branch,
		Commit:      cfg.CommitSha,
		AttemptedBy: firstNonEmpty(cfg.TriggeringActor, cfg.ExecutingActor),
		BuildURL:    buildURL,
	}
}

// GitLabEnv, see https://docs.gitlab.com/ee/ci/variables/predefined_variables.html
type GitLabEnv struct {
	Detected bool `env:"GITLAB_CI"`

	UserLogin     string `env:"GITLAB_USER_LOGIN"`
	CommitAuthor  string `env:"CI_COMMIT_AUTHOR"`
	CommitBranch  string `env:"CI_COMMIT_BRANCH"`
	CommitMessage string `env:"CI_COMMIT_MESSAGE"`
	CommitSHA     string `env:"CI_COMMIT_SHA"`
	JobURL        string `env:"CI_JOB_URL"`
}

func (cfg GitLabEnv) provenance() build.Provenance {
	return build.Provenance{
		Provider: "gitlabci",
		Branch:   cfg.CommitBranch,
		Commit:   cfg.CommitSHA,
		// Without a user login the build was presumably triggered by pushing the commit.
		AttemptedBy:   firstNonEmpty(cfg.UserLogin, cfg.CommitAuthor),
		CommitMessage: cfg.CommitMessage,
		BuildURL:      cfg.JobURL,
	}
}

type BuildkiteEnv struct {
	Detected bool `env:"BUILDKITE"`

	BuildCreatorEmail string `env:"BUILDKITE_BUILD_CREATOR_EMAIL"`
	Branch            string `env:"BUILDKITE_BRANCH"`
	Message           string `env:"BUILDKITE_MESSAGE"`
	Commit            string `env:"BUILDKITE_COMMIT"`
	BuildURL          string `env:"BUILDKITE_BUILD_URL"`
}

func (cfg BuildkiteEnv) provenance() build.Provenance {
	return build.Provenance{
		Provider:      "buildkite",
		Branch:        cfg.Branch,
		Commit:        cfg.Commit,
		CommitMessage: cfg.Message,
		AttemptedBy:   cfg.BuildCreatorEmail,
		BuildURL:      cfg.BuildURL,
	}
}

// CircleCIEnv carries no commit message, it is always read from git.
type CircleCIEnv struct {
	Detected bool `env:"CIRCLECI"`

	Username string `env:"CIRCLE_USERNAME"`
	Branch   string `env:"CIRCLE_BRANCH"`
	Sha1     string `env:"CIRCLE_SHA1"`
	BuildURL string `env:"CIRCLE_BUILD_URL"`
}

func (cfg CircleCIEnv) provenance() build.Provenance {
	return build.Provenance{
		Provider:    "circleci",
		Branch:      cfg.Branch,
		Commit:      cfg.Sha1,
		AttemptedBy: cfg.Username,
		BuildURL:    cfg.BuildURL,
	}
}
