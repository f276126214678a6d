package sandbox

import (
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/types"
)

// Info reports what is installed in the sandbox. The version of the primary
// executable is left empty since reading it requires running the executable.
func (s *Sandbox) Info() *types.SandboxInfo {
	info := &types.SandboxInfo{
		Root:               s.root,
		Policy:             s.policy.Name(),
		Executable:         s.ExecutablePath(),
		ExecutableReady:    s.IsExecutableReady(),
		HelperLibrary:      s.LibraryPath(),
		HelperLibraryFound: s.HasLibrary(),
	}
	pids, err := s.RunningPIDs()
	if err != nil {
		log.Warning("Could not list running processes:", err)
		return info
	}
	info.RunningPIDs = pids
	return info
}
