package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/cache"
	"github.com/tinyzimmer/usersu/pkg/install"
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/types"
)

func init() {
	installCmd.Flags().BoolVar(&cache.NoCache, "no-cache", false, "Download remote archives again instead of using the local cache")

	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install ARCHIVE",
	Short: "Install a UserSU archive from a local path or http(s) URL into the sandbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.OutOrStdout(), &types.InstallOptions{
			Source:      args[0],
			SandboxRoot: sandboxRoot,
			Policy:      policy.Name(),
		})
	},
}

func runInstall(out io.Writer, opts *types.InstallOptions) error {
	return withSandboxLock(opts.SandboxRoot, func() error {
		src, err := install.OpenSource(opts.Source)
		if err != nil {
			return err
		}
		defer src.Close()

		outcome := install.New(policy).Install(src, opts.SandboxRoot)
		fmt.Fprintln(out, outcome)
		if !outcome.Success() {
			log.Debugf("Install of %q failed: %+v\n", opts.Source, outcome.Err)
			return &exitError{code: 1}
		}
		return nil
	})
}
