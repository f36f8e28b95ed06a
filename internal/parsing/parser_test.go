package parsing_test

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zaptest"

	"github.com/rwx-research/testrig-cli/internal/errors"
	"github.com/rwx-research/testrig-cli/internal/fs"
	"github.com/rwx-research/testrig-cli/internal/mocks"
	"github.com/rwx-research/testrig-cli/internal/parsing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FileParser", func() {
	var (
		dir    string
		parser parsing.FileParser
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		parser = parsing.FileParser{
			FileSystem: fs.Local{},
			Log:        zaptest.NewLogger(GinkgoT()).Sugar(),
			Parser:     parsing.CodeceptionJSONParser{},
		}
	})

	It("fails with ReportMissing when there is no report", func() {
		path := filepath.Join(dir, "tests", "_output", "report.json")

		report, err := parser.ParseFile(path, dir)

		missing, ok := errors.AsReportMissingError(err)
		Expect(ok).To(BeTrue())
		Expect(missing.Path).To(Equal(path))
		Expect(report).To(BeNil())
	})

	It("parses existing reports", func() {
		path := filepath.Join(dir, "report.json")
		Expect(os.WriteFile(path, []byte(`{"event": "test", "test": "A::b", "status": "pass"}`), 0o600)).To(Succeed())

		report, err := parser.ParseFile(path, dir)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Results).To(HaveLen(1))
	})

	It("keeps the parse error category", func() {
		path := filepath.Join(dir, "report.json")
		Expect(os.WriteFile(path, []byte(`{"event": `), 0o600)).To(Succeed())

		_, err := parser.ParseFile(path, dir)

		_, ok := errors.AsParseError(err)
		Expect(ok).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(path))
	})

	It("closes the report after parsing", func() {
		file := mocks.NewFile("report.json", `{"event": "test", "test": "A::b", "status": "fail", "message": "no"}`)
		fileSystem := new(mocks.FileSystem)
		fileSystem.MockOpen = func(name string) (fs.File, error) {
			Expect(name).To(Equal("/builds/42/tests/_output/report.json"))
			return file, nil
		}
		parser.FileSystem = fileSystem

		report, err := parser.ParseFile("/builds/42/tests/_output/report.json", "/builds/42")

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Failures).To(HaveLen(1))
		Expect(file.Closed).To(BeTrue())
	})

	It("reports other open failures as system errors", func() {
		fileSystem := new(mocks.FileSystem)
		fileSystem.MockOpen = func(string) (fs.File, error) {
			return nil, os.ErrPermission
		}
		parser.FileSystem = fileSystem

		_, err := parser.ParseFile("/builds/42/tests/_output/report.json", "/builds/42")

		_, ok := errors.AsSystemError(err)
		Expect(ok).To(BeTrue())
	})
})
