package sandbox

import (
	"path"
	"sort"

	"github.com/mitchellh/go-ps"

	"github.com/tinyzimmer/usersu/pkg/log"
)

// processes is swapped out by tests
var processes = ps.Processes

// RunningPIDs returns the PIDs of processes on the system whose executable
// name matches the sandbox's primary executable. The process table only
// exposes names, so instances started from other sandboxes are included.
func (s *Sandbox) RunningPIDs() ([]int, error) {
	procs, err := processes()
	if err != nil {
		return nil, err
	}
	name := path.Base(s.policy.Executable())
	pids := make([]int, 0)
	for _, proc := range procs {
		if proc.Executable() != name {
			continue
		}
		log.Debugf("Found running %s with pid %d\n", name, proc.Pid())
		pids = append(pids, proc.Pid())
	}
	sort.Ints(pids)
	return pids, nil
}
