package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information for usersu",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("UserSU Version:", version.Version)
		fmt.Println("UserSU GitCommit:", version.GitCommit)
	},
}
