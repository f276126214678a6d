package sandbox

import (
	"fmt"
	"path"
	"strings"

	"github.com/tinyzimmer/usersu/pkg/types"
)

// Policy decides which archive entries are installed and where. The set of
// policies is closed; use Flat, Tree or PolicyFor.
type Policy interface {
	// Name returns the name the policy is selected by.
	Name() types.PolicyName
	// Route maps a slash separated archive entry name to its destination.
	// ok is false for entries that are not installed.
	Route(entryName string) (route types.Route, ok bool)
	// Executable is the primary executable relative to the sandbox root.
	Executable() string
	// Library is the helper library relative to the sandbox root.
	Library() string
	// ManagedPaths are the paths, relative to the sandbox root, that the
	// policy writes into and an uninstall removes.
	ManagedPaths() []string

	sealed()
}

// Flat is the policy that installs only the primary executable and helper
// library, by basename, directly into the sandbox root.
var Flat Policy = flatPolicy{}

// Tree is the policy that installs the bin/, lib/ and fs/ trees of the
// archive, rewriting fs/ to rootfs/.
var Tree Policy = treePolicy{}

// PolicyFor returns the policy registered under the given name.
func PolicyFor(name types.PolicyName) (Policy, error) {
	switch name {
	case types.PolicyFlat:
		return Flat, nil
	case types.PolicyTree:
		return Tree, nil
	}
	return nil, fmt.Errorf("unknown install policy %q, must be one of %q or %q", name, types.PolicyFlat, types.PolicyTree)
}

// cleanEntryName normalises a member name so that routing sees the path the
// entry would actually be written to. ok is false for names that resolve to
// the archive root or above it.
func cleanEntryName(name string) (string, bool) {
	name = path.Clean(strings.TrimLeft(name, "/"))
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", false
	}
	return name, true
}

type flatPolicy struct{}

func (flatPolicy) sealed() {}

func (flatPolicy) Name() types.PolicyName { return types.PolicyFlat }

func (flatPolicy) Route(entryName string) (types.Route, bool) {
	name, ok := cleanEntryName(entryName)
	if !ok {
		return types.Route{}, false
	}
	switch path.Base(name) {
	case types.PrimaryExecutable:
		return types.Route{Path: types.PrimaryExecutable, Executable: true}, true
	case types.HelperLibrary:
		return types.Route{Path: types.HelperLibrary}, true
	}
	return types.Route{}, false
}

func (flatPolicy) Executable() string { return types.PrimaryExecutable }

func (flatPolicy) Library() string { return types.HelperLibrary }

func (flatPolicy) ManagedPaths() []string {
	return []string{types.PrimaryExecutable, types.HelperLibrary}
}

const (
	binDir    = "bin"
	libDir    = "lib"
	rootfsDir = "rootfs"
	// fsPrefix is the archive directory that is installed as rootfsDir
	fsPrefix = "fs/"
)

type treePolicy struct{}

func (treePolicy) sealed() {}

func (treePolicy) Name() types.PolicyName { return types.PolicyTree }

func (treePolicy) Route(entryName string) (types.Route, bool) {
	name, ok := cleanEntryName(entryName)
	if !ok {
		return types.Route{}, false
	}
	switch {
	case strings.HasPrefix(name, binDir+"/"):
		return types.Route{Path: name, Executable: true}, true
	case strings.HasPrefix(name, libDir+"/"):
		return types.Route{Path: name}, true
	case strings.HasPrefix(name, fsPrefix):
		return types.Route{Path: path.Join(rootfsDir, strings.TrimPrefix(name, fsPrefix))}, true
	}
	// includes the bare prefix directories, which Clean leaves without a slash
	return types.Route{}, false
}

func (treePolicy) Executable() string { return path.Join(binDir, types.PrimaryExecutable) }

func (treePolicy) Library() string { return path.Join(libDir, types.HelperLibrary) }

func (treePolicy) ManagedPaths() []string { return []string{binDir, libDir, rootfsDir} }
