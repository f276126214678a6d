package types

// SandboxInfo is a report on the state of an installed sandbox.
type SandboxInfo struct {
	Root               string     `yaml:"root"`
	Policy             PolicyName `yaml:"policy"`
	Executable         string     `yaml:"executable"`
	ExecutableReady    bool       `yaml:"executableReady"`
	Version            string     `yaml:"version"`
	HelperLibrary      string     `yaml:"helperLibrary"`
	HelperLibraryFound bool       `yaml:"helperLibraryFound"`
	RunningPIDs        []int      `yaml:"runningPids,omitempty"`
}
