package classify_test

import (
	"github.com/rwx-research/testrig-cli/internal/build"
	"github.com/rwx-research/testrig-cli/internal/classify"
	"github.com/rwx-research/testrig-cli/internal/parsing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DefaultTable", func() {
	table := classify.DefaultTable()

	DescribeTable("Classify",
		func(native parsing.NativeSeverity, expected build.Severity) {
			Expect(table.Classify(native)).To(Equal(expected))
		},
		Entry("errors are critical", parsing.NativeSeverityError, build.SeverityCritical),
		Entry("failures are high", parsing.NativeSeverityFail, build.SeverityHigh),
		Entry("warnings are high", parsing.NativeSeverityWarning, build.SeverityHigh),
		Entry("risky tests are high", parsing.NativeSeverityRisky, build.SeverityHigh),
		Entry("unknown severities fall back to high", parsing.NativeSeverity("deprecated"), build.SeverityHigh),
		Entry("empty severities fall back to high", parsing.NativeSeverity(""), build.SeverityHigh),
	)
})

var _ = Describe("Table.With", func() {
	It("extends a copy of the table", func() {
		base := classify.DefaultTable()
		extended := base.With(parsing.NativeSeverityWarning, build.SeverityLow)

		Expect(extended.Classify(parsing.NativeSeverityWarning)).To(Equal(build.SeverityLow))
		Expect(extended.Classify(parsing.NativeSeverityError)).To(Equal(build.SeverityCritical))
		Expect(base.Classify(parsing.NativeSeverityWarning)).To(Equal(build.SeverityHigh))
	})
})
