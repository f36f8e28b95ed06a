package main

import (
	"strings"

	"github.com/rwx-research/testrig-cli/internal/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("rootCmd", func() {
	It("initializes without errors", func() {
		Expect(initializationErrors).To(BeEmpty())
	})

	It("registers all sub-commands", func() {
		names := make([]string, 0)
		for _, cmd := range rootCmd.Commands() {
			names = append(names, cmd.Name())
		}

		Expect(names).To(ContainElements("detect", "run", "show"))
	})

	It("defaults detect to the test stage", func() {
		Expect(detectCmd.Flags().Lookup("stage").DefValue).To(Equal("test"))
	})

	It("requires a build ID for show", func() {
		Expect(showCmd.Args(showCmd, nil)).To(HaveOccurred())
		Expect(showCmd.Args(showCmd, []string{"6f1c7a2e"})).To(Succeed())
	})
})

var _ = Describe("exitCode", func() {
	var stderr *strings.Builder

	BeforeEach(func() {
		stderr = new(strings.Builder)
	})

	It("exits quietly for failed builds", func() {
		Expect(exitCode(errors.NewExecutionError(1, "build 42 failed"), stderr)).To(Equal(1))
		Expect(stderr.String()).To(BeEmpty())
	})

	It("explains interrupted runs and exits with 1", func() {
		err := errors.WithStack(errors.NewExecutionError(-1, `"codecept" was interrupted: context canceled`))

		Expect(exitCode(err, stderr)).To(Equal(1))
		Expect(stderr.String()).To(ContainSubstring("was interrupted"))
	})

	It("keeps other exit codes", func() {
		Expect(exitCode(errors.NewExecutionError(3, "setup exited with 3"), stderr)).To(Equal(3))
		Expect(stderr.String()).To(ContainSubstring("setup exited with 3"))
	})

	It("decorates every other error", func() {
		err := errors.NewBinaryNotFoundError("codecept", []string{"/build/vendor/bin"})

		Expect(exitCode(err, stderr)).To(Equal(1))
		Expect(stderr.String()).To(HavePrefix("Binary not found:"))
	})
})
