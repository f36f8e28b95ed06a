//go:build !unix

package exec

import "os/exec"

func configureProcessGroup(cmd *exec.Cmd) {}
