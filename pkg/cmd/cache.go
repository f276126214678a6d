package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/cache"
)

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the cache of downloaded archives",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Wipe the local archive cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cache.DefaultCache.Clean()
	},
}
