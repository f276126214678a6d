package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/sandbox"
)

func completeStringOpts(opts []string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return opts, cobra.ShellCompDirectiveDefault
	}
}

// exitError is returned by commands that have already printed their failure
// and only need the process to exit with code.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// ExitCode returns the status the process should exit with for an error
// returned from the root command, and whether the error was already shown to
// the user.
func ExitCode(err error) (code int, reported bool) {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code, true
	}
	return 1, false
}

// withSandboxLock runs fn while holding the cross-process lock for the
// sandbox at root.
func withSandboxLock(root string, fn func() error) error {
	lock, err := sandbox.Acquire(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warning("Failed to release sandbox lock:", err)
		}
	}()
	return fn()
}
