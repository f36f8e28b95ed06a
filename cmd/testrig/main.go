// Package main holds the command line interface of testrig. The package itself is mainly concerned with configuring
// the necessary options before passing control to `internal/cli`, which holds the business logic itself.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode returns the exit status for err and explains it on stderr. A failed build (exit code 1) was already
// logged stage by stage in `internal/cli`, so it is not repeated. Interrupted runs report -1, which exits with 1.
func exitCode(err error, stderr io.Writer) int {
	e, ok := errors.AsExecutionError(err)
	if ok && e.Code == 1 {
		return 1
	}

	fmt.Fprintln(stderr, errors.WithDecoration(err))

	if ok && e.Code > 1 {
		return e.Code
	}

	return 1
}
