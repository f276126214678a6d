package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/sandbox"
	"github.com/tinyzimmer/usersu/pkg/types"
)

// waitDelay bounds how long output is still collected after the process
// exits or is killed, in case a descendant keeps its stdout open.
const waitDelay = 2 * time.Second

// New returns a runner for sandboxes laid out with the given policy.
func New(policy sandbox.Policy) types.Runner {
	return &runner{policy: policy, start: func(cmd *exec.Cmd) error { return cmd.Start() }}
}

type runner struct {
	policy sandbox.Policy
	// start launches the prepared command, tests replace it to observe launches
	start func(cmd *exec.Cmd) error
}

func (r *runner) Run(ctx context.Context, sandboxRoot, command string) *types.RunResult {
	box := sandbox.New(sandboxRoot, r.policy)
	bin := box.ExecutablePath()
	if !box.IsExecutableReady() {
		log.Debugf("Refusing to run %q, it is missing or not executable\n", bin)
		return &types.RunResult{
			ExitCode: -1,
			Err:      types.NewError(types.MissingExecutable, fmt.Sprintf("usud binary not found or not executable at %s", bin), nil),
		}
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, command)
	cmd.Dir = box.Root()
	// a single writer for both streams interleaves them in emission order
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// the whole group, so helpers the executable spawned die with it
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	log.Debugf("Executing %q with argument %q\n", bin, command)
	if err := r.start(cmd); err != nil {
		return &types.RunResult{
			ExitCode: -1,
			Err:      types.NewError(types.SpawnError, "error executing command", err),
		}
	}

	err := cmd.Wait()
	result := &types.RunResult{
		Output:   strings.TrimSpace(out.String()),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	log.DebugReader(strings.NewReader(result.Output))

	switch {
	case err == nil:
		log.Debugf("%s exited with code %d\n", bin, result.ExitCode)
	case errors.Is(err, exec.ErrWaitDelay):
		log.Warningf("%s exited but a child process held its output open, output may be incomplete\n", bin)
	case ctx.Err() == context.DeadlineExceeded:
		result.Err = types.NewError(types.Timeout, "command timed out", ctx.Err())
	case ctx.Err() != nil:
		result.Err = types.NewError(types.ProcessError, "command cancelled", ctx.Err())
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.Err = types.NewError(types.ProcessError, fmt.Sprintf("usud exited with code %d", exitErr.ExitCode()), nil)
		} else {
			result.Err = types.NewError(types.ProcessError, "error waiting for command", err)
		}
	}
	return result
}
