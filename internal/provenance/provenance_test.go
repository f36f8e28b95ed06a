package provenance_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap/zaptest"

	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/provenance"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Provenance", func() {
	Describe("ReadEnv", func() {
		It("reads GitHub Actions", func() {
			env, err := provenance.ReadEnv(map[string]string{
				"GITHUB_ACTIONS":          "true",
				"GITHUB_ACTOR":            "executor",
				"GITHUB_TRIGGERING_ACTOR": "trigger",
				"GITHUB_EVENT_NAME":       "pull_request",
				"GITHUB_REF_NAME":         "123/merge",
				"GITHUB_HEAD_REF":         "feature",
				"GITHUB_SHA":              "abc123",
				"GITHUB_REPOSITORY":       "acme/shop",
				"GITHUB_RUN_ID":           "42",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(env.Provenance()).To(Equal(build.Provenance{
				Provider:    "github",
				Branch:      "feature",
				Commit:      "abc123",
				AttemptedBy: "trigger",
				BuildURL:    "https://github.com/acme/shop/actions/runs/42",
			}))
		})

		It("reads GitLab CI", func() {
			env, err := provenance.ReadEnv(map[string]string{
				"GITLAB_CI":         "true",
				"CI_COMMIT_AUTHOR":  "Jane <jane@example.com>",
				"CI_COMMIT_BRANCH":  "main",
				"CI_COMMIT_MESSAGE": "Fix checkout",
				"CI_COMMIT_SHA":     "def456",
				"CI_JOB_URL":        "https://gitlab.com/acme/shop/-/jobs/7",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(env.Provenance()).To(Equal(build.Provenance{
				Provider:      "gitlabci",
				Branch:        "main",
				Commit:        "def456",
				CommitMessage: "Fix checkout",
				AttemptedBy:   "Jane <jane@example.com>",
				BuildURL:      "https://gitlab.com/acme/shop/-/jobs/7",
			}))
		})

		It("reads Buildkite", func() {
			env, err := provenance.ReadEnv(map[string]string{
				"BUILDKITE":        "true",
				"BUILDKITE_BRANCH": "main",
				"BUILDKITE_COMMIT": "789abc",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(env.Provenance().Provider).To(Equal("buildkite"))
			Expect(env.Provenance().Commit).To(Equal("789abc"))
		})

		It("reads CircleCI", func() {
			env, err := provenance.ReadEnv(map[string]string{
				"CIRCLECI":        "true",
				"CIRCLE_BRANCH":   "main",
				"CIRCLE_SHA1":     "fed987",
				"CIRCLE_USERNAME": "jane",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(env.Provenance()).To(Equal(build.Provenance{
				Provider: "circleci", Branch: "main", Commit: "fed987", AttemptedBy: "jane",
			}))
		})

		It("falls back to local builds", func() {
			env, err := provenance.ReadEnv(map[string]string{})

			Expect(err).NotTo(HaveOccurred())
			Expect(env.Provenance()).To(Equal(build.Provenance{Provider: "local"}))
		})

		It("rejects malformed flags", func() {
			_, err := provenance.ReadEnv(map[string]string{"GITHUB_ACTIONS": "maybe"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Detector", func() {
		var root string

		BeforeEach(func() {
			root = GinkgoT().TempDir()
		})

		commit := func(message string) string {
			repo, err := git.PlainInit(root, false)
			Expect(err).NotTo(HaveOccurred())

			Expect(os.WriteFile(filepath.Join(root, "codeception.yml"), []byte("paths: {}\n"), 0o600)).To(Succeed())

			worktree, err := repo.Worktree()
			Expect(err).NotTo(HaveOccurred())
			_, err = worktree.Add("codeception.yml")
			Expect(err).NotTo(HaveOccurred())

			hash, err := worktree.Commit(message, &git.CommitOptions{
				Author: &object.Signature{Name: "Jane", Email: "jane@example.com", When: time.Now()},
			})
			Expect(err).NotTo(HaveOccurred())

			return hash.String()
		}

		It("reads the HEAD commit of local builds", func() {
			hash := commit("Add codeception config\n")
			detector := provenance.Detector{Log: zaptest.NewLogger(GinkgoT()).Sugar()}

			Expect(detector.Detect(root)).To(Equal(build.Provenance{
				Provider:      "local",
				Branch:        "master",
				Commit:        hash,
				CommitMessage: "Add codeception config",
				AttemptedBy:   "jane@example.com",
			}))
		})

		It("prefers values of the CI provider", func() {
			commit("Add codeception config")
			detector := provenance.Detector{
				Env: provenance.Env{CircleCI: provenance.CircleCIEnv{
					Detected: true, Branch: "main", Sha1: "fed987", Username: "jane",
				}},
				Log: zaptest.NewLogger(GinkgoT()).Sugar(),
			}

			detected := detector.Detect(root)

			Expect(detected.Branch).To(Equal("main"))
			Expect(detected.Commit).To(Equal("fed987"))
			Expect(detected.CommitMessage).To(Equal("Add codeception config"))
			Expect(detected.AttemptedBy).To(Equal("jane"))
		})

		It("tolerates build roots outside of git", func() {
			detector := provenance.Detector{Log: zaptest.NewLogger(GinkgoT()).Sugar()}

			Expect(detector.Detect(root)).To(Equal(build.Provenance{Provider: "local"}))
		})
	})
})
