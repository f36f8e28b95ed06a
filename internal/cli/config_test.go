package cli_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/rwx-research/testrig-cli/internal/cli"
	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/plugins"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoadConfig", func() {
	var (
		root string
		v    *viper.Viper
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		v = viper.New()
		v.Set("build-root", root)
	})

	write := func(contents string) {
		Expect(os.WriteFile(filepath.Join(root, "testrig.yaml"), []byte(contents), 0o600)).To(Succeed())
	}

	It("works without a config file", func() {
		cfg, err := cli.LoadConfig(v)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.BuildRoot).To(Equal(root))
		Expect(cfg.DataDir).To(Equal(filepath.Join(root, ".testrig", "builds")))
		Expect(cfg.Plugins).To(BeEmpty())
	})

	It("reads plugin options", func() {
		write(`
data-dir: var/builds
plugins:
  codeception:
    config: tests/*.suite.yml
    args: --fail-fast
    format: xml
    timeout: 10m
    allow-failures: true
`)

		cfg, err := cli.LoadConfig(v)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DataDir).To(Equal(filepath.Join(root, "var", "builds")))
		Expect(cfg.Plugins).To(HaveKeyWithValue("codeception", plugins.Options{
			Config:        []string{"tests/*.suite.yml"},
			Args:          "--fail-fast",
			Format:        plugins.FormatXML,
			Timeout:       10 * time.Minute,
			AllowFailures: true,
		}))
	})

	It("reads lists of config files", func() {
		write(`
plugins:
  codeception:
    config:
      - codeception.yml
      - tests/api.suite.yml
`)

		cfg, err := cli.LoadConfig(v)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Plugins["codeception"].Config).To(Equal([]string{"codeception.yml", "tests/api.suite.yml"}))
	})

	It("rejects invalid plugin options", func() {
		write(`
plugins:
  codeception:
    format: html
`)

		_, err := cli.LoadConfig(v)

		_, ok := errors.AsConfigurationError(err)
		Expect(ok).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("plugins.codeception"))
	})

	It("rejects malformed config files", func() {
		write("plugins: [")

		_, err := cli.LoadConfig(v)

		_, ok := errors.AsConfigurationError(err)
		Expect(ok).To(BeTrue())
	})

	It("keeps absolute data directories", func() {
		dataDir := filepath.Join(GinkgoT().TempDir(), "builds")
		v.Set("data-dir", dataDir)

		cfg, err := cli.LoadConfig(v)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DataDir).To(Equal(dataDir))
	})
})
