package locating_test

import (
	"os"
	"path/filepath"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
	"github.com/rwx-research/testrig-cli/internal/locating"
	"github.com/rwx-research/testrig-cli/internal/mocks"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Locator", func() {
	var (
		root    string
		locator locating.Locator
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		locator = locating.Locator{FileSystem: fs.Local{}}
	})

	touch := func(name string) {
		Expect(os.WriteFile(filepath.Join(root, name), []byte("paths: {}\n"), 0o600)).To(Succeed())
	}

	It("prefers the primary config", func() {
		touch("codeception.yml")
		touch("codeception.dist.yml")

		path, ok := locator.Locate(root)

		Expect(ok).To(BeTrue())
		Expect(path).To(Equal(filepath.Join(root, "codeception.yml")))
	})

	It("falls back to the .dist variant", func() {
		touch("codeception.dist.yml")

		path, ok := locator.Locate(root)

		Expect(ok).To(BeTrue())
		Expect(path).To(Equal(filepath.Join(root, "codeception.dist.yml")))
	})

	It("finds nothing in an empty directory", func() {
		_, ok := locator.Locate(root)

		Expect(ok).To(BeFalse())
	})

	It("ignores directories", func() {
		Expect(os.Mkdir(filepath.Join(root, "codeception.yml"), 0o755)).To(Succeed())

		_, ok := locator.Locate(root)

		Expect(ok).To(BeFalse())
	})

	It("uses custom candidates", func() {
		touch("acceptance.suite.yml")
		locator.Candidates = []string{"acceptance.suite.yml"}

		path, ok := locator.Locate(root)

		Expect(ok).To(BeTrue())
		Expect(path).To(Equal(filepath.Join(root, "acceptance.suite.yml")))
	})

	It("only stats the file-system", func() {
		var statted []string
		fileSystem := new(mocks.FileSystem)
		fileSystem.MockStat = func(name string) (os.FileInfo, error) {
			statted = append(statted, name)
			if filepath.Base(name) == "codeception.dist.yml" {
				return mocks.FileInfo{Dir: false}, nil
			}
			return nil, os.ErrNotExist
		}
		locator.FileSystem = fileSystem

		path, ok := locator.Locate("/builds/42")

		Expect(ok).To(BeTrue())
		Expect(path).To(Equal("/builds/42/codeception.dist.yml"))
		Expect(statted).To(Equal([]string{"/builds/42/codeception.yml", "/builds/42/codeception.dist.yml"}))
	})
})

var _ = Describe("ReadToolConfig", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
	})

	write := func(contents string) string {
		path := filepath.Join(root, "codeception.yml")
		Expect(os.WriteFile(path, []byte(contents), 0o600)).To(Succeed())
		return path
	}

	It("reads the log directory", func() {
		config, err := locating.ReadToolConfig(fs.Local{}, write("paths:\n  tests: tests\n  log: custom/logs\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(config.LogDirectory()).To(Equal("custom/logs"))
		Expect(config.ReportPath("/builds/42", "tests/_output", "report.json")).
			To(Equal("/builds/42/custom/logs/report.json"))
	})

	It("falls back to the output directory", func() {
		config, err := locating.ReadToolConfig(fs.Local{}, write("paths:\n  output: tests/_out\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(config.LogDirectory()).To(Equal("tests/_out"))
	})

	It("uses the default directory when nothing is declared", func() {
		config, err := locating.ReadToolConfig(fs.Local{}, write(""))

		Expect(err).NotTo(HaveOccurred())
		Expect(config.ReportPath("/builds/42", "tests/_output", "report.json")).
			To(Equal("/builds/42/tests/_output/report.json"))
	})

	It("keeps absolute log directories", func() {
		config, err := locating.ReadToolConfig(fs.Local{}, write("paths:\n  log: /var/log/codeception\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(config.ReportPath("/builds/42", "tests/_output", "report.xml")).
			To(Equal("/var/log/codeception/report.xml"))
	})

	It("reports malformed configs", func() {
		_, err := locating.ReadToolConfig(fs.Local{}, write("paths: [log"))

		_, ok := errors.AsConfigurationError(err)
		Expect(ok).To(BeTrue())
	})

	It("reports missing configs", func() {
		_, err := locating.ReadToolConfig(fs.Local{}, filepath.Join(root, "missing.yml"))

		_, ok := errors.AsConfigurationError(err)
		Expect(ok).To(BeTrue())
	})
})
