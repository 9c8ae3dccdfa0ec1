package batch

import "os/exec"

// Runner executes one external tool to completion and returns its
// combined output. The drivers never interpret the output beyond
// logging it on failure.
type Runner interface {
	Run(name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools as real subprocesses.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}
