package types

import "fmt"

// Uninstaller tears down a sandbox.
type Uninstaller interface {
	Uninstall(sandboxRoot string) *UninstallOutcome
}

// UninstallResult is the kind of outcome of an uninstall.
type UninstallResult int

const (
	// UninstallRemoved means the sandbox existed and was removed.
	UninstallRemoved UninstallResult = iota
	// UninstallNothingToRemove means none of the managed paths existed.
	UninstallNothingToRemove
	// UninstallFailed means one or more paths could not be removed.
	UninstallFailed
)

// UninstallOutcome is the result of an uninstall attempt.
type UninstallOutcome struct {
	Result UninstallResult
	// The number of filesystem entries (files and directories) removed
	Removed int
	// Populated when Result is UninstallFailed
	Err error
}

// Success returns true for both a completed removal and a no-op.
func (o *UninstallOutcome) Success() bool { return o.Result != UninstallFailed }

// String returns a status line suitable for display to a user.
func (o *UninstallOutcome) String() string {
	switch o.Result {
	case UninstallRemoved:
		return "UserSU uninstalled successfully."
	case UninstallNothingToRemove:
		return "UserSU not found for uninstallation."
	}
	return fmt.Sprintf("Uninstallation failed: %v", o.Err)
}
