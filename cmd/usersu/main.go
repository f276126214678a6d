package main

import (
	"os"

	"github.com/tinyzimmer/usersu/pkg/cmd"
	"github.com/tinyzimmer/usersu/pkg/log"
)

func main() {
	if err := cmd.GetRootCommand().Execute(); err != nil {
		code, reported := cmd.ExitCode(err)
		if !reported {
			log.Error(err)
		}
		os.Exit(code)
	}
}
