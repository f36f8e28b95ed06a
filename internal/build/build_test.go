package build_test

import (
	"time"

	"github.com/rwx-research/testrig-cli/internal/build"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Build", func() {
	var (
		b   *build.Build
		now time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		b = build.New("/builds/42")
		b.SetClock(func() time.Time { return now })
	})

	It("gets a unique ID", func() {
		Expect(b.ID).NotTo(BeEmpty())
		Expect(build.New("/builds/42").ID).NotTo(Equal(b.ID))
	})

	Describe("StoreMeta", func() {
		It("overwrites existing values", func() {
			b.StoreMeta("codeception-data", []string{"first"})
			b.StoreMeta("codeception-data", []string{"second"})

			Expect(b.Meta).To(HaveLen(1))
			Expect(b.Meta["codeception-data"]).To(Equal([]string{"second"}))
		})
	})

	Describe("ReportError", func() {
		It("appends errors in reporting order", func() {
			file := "tests/unit/UserTest.php"
			line := 12

			b.ReportError("codeception", "first", build.SeverityCritical, &file, &line)
			b.ReportError("phpunit", "second", build.SeverityHigh, nil, nil)
			b.ReportError("codeception", "third", build.SeverityHigh, nil, nil)

			Expect(b.Errors).To(HaveLen(3))
			Expect(b.Errors[0].CreatedAt).To(Equal(now))
			Expect(*b.Errors[0].File).To(Equal(file))
			Expect(*b.Errors[0].Line).To(Equal(line))

			codeception := b.ErrorsFor("codeception")
			Expect(codeception).To(HaveLen(2))
			Expect(codeception[0].Message).To(Equal("first"))
			Expect(codeception[1].Message).To(Equal("third"))
		})
	})

	Describe("Stage", func() {
		It("knows the pipeline stages", func() {
			Expect(build.StageTest.IsValid()).To(BeTrue())
			Expect(build.Stage("deploy").IsValid()).To(BeFalse())
		})
	})
})
