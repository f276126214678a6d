package install

import (
	"bufio"
	"io"
	"os"

	"github.com/tinyzimmer/usersu/pkg/archive"
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/sandbox"
	"github.com/tinyzimmer/usersu/pkg/types"
)

// New returns a new installer that lays archives out with the given policy.
func New(policy sandbox.Policy) types.Installer { return &installer{policy: policy} }

type installer struct {
	policy sandbox.Policy
}

func (i *installer) Install(src io.Reader, sandboxRoot string) *types.InstallOutcome {
	box := sandbox.New(sandboxRoot, i.policy)
	outcome := &types.InstallOutcome{Path: box.Root()}

	log.Infof("Installing to %q using the %s policy\n", box.Root(), i.policy.Name())
	if err := os.MkdirAll(box.Root(), 0755); err != nil {
		outcome.Err = types.NewError(types.IOError, "io error", err)
		return outcome
	}

	rdr, err := archive.Open(bufio.NewReader(src))
	if err != nil {
		log.Debug("Could not open archive:", err)
		outcome.Err = err
		return outcome
	}
	defer rdr.Close()
	log.Debugf("Detected %s compressed archive\n", rdr.Kind())

	outcome.Files, outcome.Err = extract(rdr, box)
	if outcome.Err != nil {
		log.Debugf("Extraction stopped after %d files: %v\n", outcome.Files, outcome.Err)
		return outcome
	}
	if !box.IsExecutableReady() {
		log.Warningf("The archive did not contain %s, the sandbox cannot be run until it is installed\n", i.policy.Executable())
	}
	return outcome
}
