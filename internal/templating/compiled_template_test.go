package templating_test

import (
	"github.com/rwx-research/testrig-cli/internal/templating"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompileTemplate", func() {
	It("maps placeholders to keywords", func() {
		compiled, err := templating.CompileTemplate("{{ binary }} run -c {{config}} --json {{ args }}")

		Expect(err).NotTo(HaveOccurred())
		Expect(compiled.Keywords()).To(Equal([]string{"args", "binary", "config"}))
	})

	It("accepts templates without placeholders", func() {
		compiled, err := templating.CompileTemplate("codecept run")

		Expect(err).NotTo(HaveOccurred())
		Expect(compiled.Keywords()).To(BeEmpty())
	})

	It("rejects duplicate keywords", func() {
		_, err := templating.CompileTemplate("{{ config }} {{ config }}")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("duplicate substitution of placeholder 'config'"))
	})
})

var _ = Describe("CompiledTemplate.Substitute", func() {
	var compiled templating.CompiledTemplate

	BeforeEach(func() {
		var err error
		compiled, err = templating.CompileTemplate("{{ binary }} run -c {{ config }} --json {{ args }}")
		Expect(err).NotTo(HaveOccurred())
	})

	It("substitutes every placeholder", func() {
		command, err := compiled.Substitute(map[string]string{
			"binary": "/usr/bin/codecept",
			"config": "'/build/codeception.yml'",
			"args":   "--fail-fast",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(command).To(Equal("/usr/bin/codecept run -c '/build/codeception.yml' --json --fail-fast"))
	})

	It("keeps placeholder text inside substituted values", func() {
		for i := 0; i < 20; i++ {
			command, err := compiled.Substitute(map[string]string{
				"binary": "codecept",
				"config": "'{{ args }}.yml'",
				"args":   "--group {{ config }}",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(command).To(Equal("codecept run -c '{{ args }}.yml' --json --group {{ config }}"))
		}
	})

	It("trims empty trailing values", func() {
		command, err := compiled.Substitute(map[string]string{"binary": "codecept", "config": "c.yml", "args": ""})

		Expect(err).NotTo(HaveOccurred())
		Expect(command).To(Equal("codecept run -c c.yml --json"))
	})

	It("fails when a keyword has no value", func() {
		_, err := compiled.Substitute(map[string]string{"binary": "codecept"})

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("missing values for args, config"))
	})
})
