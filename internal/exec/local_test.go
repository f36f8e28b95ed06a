//go:build unix

package exec_test

import (
	"context"
	"strings"
	"time"

	"github.com/rwx-research/testrig-cli/internal/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Local", func() {
	var output *strings.Builder

	BeforeEach(func() {
		output = new(strings.Builder)
	})

	It("runs the command in the given directory", func() {
		dir := GinkgoT().TempDir()
		cmd, err := exec.Local{}.NewCommand(context.Background(), exec.CommandConfig{
			Name:   "sh",
			Args:   []string{"-c", "pwd"},
			Dir:    dir,
			Stdout: output,
			Stderr: output,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(cmd.Start()).To(Succeed())
		Expect(cmd.Wait()).To(Succeed())
		Expect(output.String()).To(ContainSubstring(dir))
	})

	It("extracts the exit code", func() {
		cmd, err := exec.Local{}.NewCommand(context.Background(), exec.CommandConfig{
			Name: "sh", Args: []string{"-c", "exit 3"}, Stdout: output, Stderr: output,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Start()).To(Succeed())

		waitErr := cmd.Wait()
		Expect(waitErr).To(HaveOccurred())
		Expect(exec.Local{}.GetExitStatusFromError(waitErr)).To(Equal(3))
	})

	It("kills the command once the context is done", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		cmd, err := exec.Local{}.NewCommand(ctx, exec.CommandConfig{
			Name: "sh", Args: []string{"-c", "sleep 30"}, Stdout: output, Stderr: output,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Start()).To(Succeed())

		started := time.Now()
		Expect(cmd.Wait()).NotTo(Succeed())
		Expect(time.Since(started)).To(BeNumerically("<", 10*time.Second))
	})

	It("rejects errors that are not exit errors", func() {
		_, err := exec.Local{}.GetExitStatusFromError(context.Canceled)
		Expect(err).To(HaveOccurred())
	})
})
