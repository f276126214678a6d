package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/bridge"
	"github.com/tinyzimmer/usersu/pkg/types"
)

var runTimeout time.Duration

func init() {
	runCmd.Flags().DurationVarP(&runTimeout, "timeout", "t", 0, "Kill usud if it has not exited after this long, zero waits forever")

	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run COMMAND",
	Short: "Run usud in the sandbox with COMMAND as its single argument",
	Long: `
Runs the installed usud binary with COMMAND passed as one argument, so quote it if it
contains spaces. The combined output of the process is printed and usersu exits with
the exit code of usud.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), cmd.OutOrStdout(), &types.RunOptions{
			SandboxRoot: sandboxRoot,
			Policy:      policy.Name(),
			Command:     args[0],
			Timeout:     runTimeout,
		})
	},
}

func runCommand(ctx context.Context, out io.Writer, opts *types.RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	return withSandboxLock(opts.SandboxRoot, func() error {
		result := bridge.New(policy).Run(ctx, opts.SandboxRoot, opts.Command)
		if display := result.String(); display != "" {
			fmt.Fprintln(out, display)
		}
		if result.Err == nil {
			return nil
		}
		if result.ExitCode > 0 {
			return &exitError{code: result.ExitCode}
		}
		return &exitError{code: 1}
	})
}
