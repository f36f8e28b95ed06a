package provenance

import (
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/errors"
)

// gitHead reads the checked out commit of the repository containing dir.
func gitHead(dir string) (build.Provenance, error) {
	var provenance build.Provenance

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return provenance, errors.Wrapf(err, "unable to open git repository at %q", dir)
	}

	head, err := repo.Head()
	if err != nil {
		return provenance, errors.Wrap(err, "unable to resolve HEAD")
	}

	provenance.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		provenance.Branch = head.Name().Short()
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return provenance, errors.Wrapf(err, "unable to read commit %s", head.Hash())
	}

	provenance.CommitMessage = strings.TrimSpace(commit.Message)
	provenance.AttemptedBy = commit.Author.Email

	return provenance, nil
}
