package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/tinyzimmer/usersu/pkg/bridge"
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/sandbox"
	"github.com/tinyzimmer/usersu/pkg/types"
)

const versionTimeout = 10 * time.Second

var (
	infoOutput   string
	infoTemplate string
)

func init() {
	infoCmd.Flags().StringVarP(&infoOutput, "output", "o", "text", "The output format, one of text or yaml")
	infoCmd.Flags().StringVarP(&infoTemplate, "template", "t", "", "A go template to render the report with, sprig functions are available")

	infoCmd.RegisterFlagCompletionFunc("output", completeStringOpts([]string{"text", "yaml"}))

	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what is installed in the sandbox",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := sandbox.New(sandboxRoot, policy).Info()
		if info.ExecutableReady {
			ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
			defer cancel()
			result := bridge.New(policy).Run(ctx, sandboxRoot, types.VersionArg)
			if result.Err != nil {
				log.Warning("Could not read the usud version:", result.Err)
			} else {
				info.Version = result.Output
			}
		}

		var out []byte
		var err error
		switch {
		case infoTemplate != "":
			out, err = info.Render(infoTemplate)
		case infoOutput == "yaml":
			out, err = yaml.Marshal(info)
		case infoOutput == "text":
			out, err = info.Render(types.DefaultInfoTemplate)
		default:
			return errors.New("output must be one of text or yaml")
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}
