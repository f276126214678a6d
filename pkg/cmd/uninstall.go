package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/sandbox"
)

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove everything the install policy placed in the sandbox",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSandboxLock(sandboxRoot, func() error {
			outcome := sandbox.NewUninstaller(policy).Uninstall(sandboxRoot)
			fmt.Fprintln(cmd.OutOrStdout(), outcome)
			if !outcome.Success() {
				return &exitError{code: 1}
			}
			return nil
		})
	},
}
