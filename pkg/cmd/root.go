package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tinyzimmer/usersu/pkg/cache"
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/sandbox"
	"github.com/tinyzimmer/usersu/pkg/types"
	"github.com/tinyzimmer/usersu/pkg/util"
)

const (
	rootEnv   = "USERSU_ROOT"
	policyEnv = "USERSU_POLICY"
)

var (
	cacheDir    string
	sandboxRoot string
	policyName  string

	// resolved in PersistentPreRunE
	policy sandbox.Policy
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&sandboxRoot, "root", "r", envOrDefault(rootEnv, defaultSandboxRoot()), "The directory the sandbox is installed to")
	rootCmd.PersistentFlags().StringVarP(&policyName, "policy", "p", envOrDefault(policyEnv, string(types.PolicyTree)), "The install layout of the sandbox, one of flat or tree")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", cache.DefaultCache.CacheDir(), "Override the default location for downloaded archives")
	rootCmd.PersistentFlags().StringVar(&util.TempDir, "tmp-dir", util.TempDir, "Override the default tmp directory")
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&log.NoColor, "no-color", false, "Disable colors in log output")

	rootCmd.RegisterFlagCompletionFunc("policy", completeStringOpts([]string{string(types.PolicyFlat), string(types.PolicyTree)}))
}

var rootCmd = &cobra.Command{
	Use:   "usersu",
	Short: "usersu installs and runs an unprivileged UserSU sandbox",
	Long: `
The usersu command installs a UserSU bundle from a gzip or xz compressed tarball into a
sandbox directory, runs commands through the bundled usud binary, and removes it again.
No elevated privileges are required.
`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cacheDir != cache.DefaultCache.CacheDir() {
			log.Debugf("Setting cache dir to %q\n", cacheDir)
			cache.DefaultCache = cache.New(cacheDir)
		} else {
			log.Debugf("Default cache dir is %q\n", cache.DefaultCache.CacheDir())
		}

		var err error
		if sandboxRoot, err = util.ExpandHome(sandboxRoot); err != nil {
			return err
		}
		if sandboxRoot, err = filepath.Abs(sandboxRoot); err != nil {
			return err
		}
		if policy, err = sandbox.PolicyFor(types.PolicyName(policyName)); err != nil {
			return err
		}
		log.Debugf("Using sandbox %q with the %s policy\n", sandboxRoot, policy.Name())
		return nil
	},
}

// GetRootCommand returns the root usersu command
func GetRootCommand() *cobra.Command { return rootCmd }

func defaultSandboxRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(util.TempDir, "usersu", "sandbox")
	}
	return filepath.Join(home, ".usersu", "sandbox")
}

func envOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
