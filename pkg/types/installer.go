package types

import (
	"fmt"
	"io"
)

// Installer lays the contents of a UserSU tarball down into a sandbox.
type Installer interface {
	// Install sniffs, decodes and selectively extracts the given stream into
	// the sandbox root. The stream is borrowed for the duration of the call
	// and is not closed.
	Install(src io.Reader, sandboxRoot string) *InstallOutcome
}

// InstallOptions are options to pass to an installation from the CLI.
type InstallOptions struct {
	// The path or http(s) URL of the tar archive
	Source string
	// The directory to install into
	SandboxRoot string
	// The routing policy to use for selecting entries
	Policy PolicyName
}

// InstallOutcome is the result of an install attempt. Err is nil on success.
type InstallOutcome struct {
	// The sandbox root that was written to
	Path string
	// The number of files fully written
	Files int
	// The reason for failure, if any. Files that were fully written before a
	// failure are left in place.
	Err error
}

// Success returns true if the install completed.
func (o *InstallOutcome) Success() bool { return o.Err == nil }

// String returns a status line suitable for display to a user.
func (o *InstallOutcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("Installation failed: %s", o.Err.Error())
	}
	return fmt.Sprintf("Extracted %d files successfully to %s", o.Files, o.Path)
}
