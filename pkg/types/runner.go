package types

import (
	"context"
	"fmt"
	"time"
)

// Runner invokes the installed primary executable.
type Runner interface {
	// Run executes the primary executable inside the sandbox with command
	// as its single argument.
	Run(ctx context.Context, sandboxRoot, command string) *RunResult
}

// RunOptions are options to pass to a run from the CLI.
type RunOptions struct {
	// The directory UserSU was installed to
	SandboxRoot string
	// The routing policy the sandbox was installed with
	Policy PolicyName
	// The single argument passed to the executable
	Command string
	// Kill the process after this long. Zero waits forever.
	Timeout time.Duration
}

// RunResult is the outcome of running the primary executable.
type RunResult struct {
	// The trimmed combined stdout and stderr of the process
	Output string
	// The exit code of the process, or -1 if it did not exit normally
	ExitCode int
	// Nil if the process ran and exited zero
	Err error
}

// Kind returns the classification of the failure, or zero on success.
func (r *RunResult) Kind() ErrorKind { return KindOf(r.Err) }

// String returns the text to display for this result. Processes that ran
// and failed still show their own output.
func (r *RunResult) String() string {
	switch r.Kind() {
	case 0, ProcessError:
		return r.Output
	case Timeout:
		if r.Output != "" {
			return fmt.Sprintf("%s\nError: %s", r.Output, r.Err.Error())
		}
	}
	return fmt.Sprintf("Error: %s", r.Err.Error())
}
