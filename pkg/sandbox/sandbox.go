package sandbox

import (
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"
)

// Sandbox is an install location paired with the policy that lays it out.
type Sandbox struct {
	root   string
	policy Policy
}

// New returns a sandbox rooted at the given directory. The directory does not
// need to exist yet.
func New(root string, policy Policy) *Sandbox {
	return &Sandbox{root: filepath.Clean(root), policy: policy}
}

// Root returns the sandbox root directory.
func (s *Sandbox) Root() string { return s.root }

// Policy returns the policy the sandbox is laid out with.
func (s *Sandbox) Policy() Policy { return s.policy }

// Resolve joins a slash separated relative path onto the sandbox root. The
// result is always inside the root, even when rel contains ".." elements or
// traverses symlinks already present in the sandbox.
func (s *Sandbox) Resolve(rel string) (string, error) {
	p, err := securejoin.SecureJoin(s.root, filepath.FromSlash(rel))
	if err != nil {
		return "", errors.Wrapf(err, "resolving %q inside %s", rel, s.root)
	}
	return p, nil
}

// ExecutablePath returns the absolute location of the primary executable.
func (s *Sandbox) ExecutablePath() string {
	return filepath.Join(s.root, filepath.FromSlash(s.policy.Executable()))
}

// LibraryPath returns the absolute location of the helper library.
func (s *Sandbox) LibraryPath() string {
	return filepath.Join(s.root, filepath.FromSlash(s.policy.Library()))
}

// ManagedPaths returns the absolute paths an uninstall removes.
func (s *Sandbox) ManagedPaths() []string {
	rel := s.policy.ManagedPaths()
	out := make([]string, len(rel))
	for i, p := range rel {
		out[i] = filepath.Join(s.root, filepath.FromSlash(p))
	}
	return out
}

// IsExecutableReady returns true if the primary executable exists, is a
// regular file and has an executable bit set.
func (s *Sandbox) IsExecutableReady() bool {
	info, err := os.Stat(s.ExecutablePath())
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// HasLibrary returns true if the helper library is present.
func (s *Sandbox) HasLibrary() bool {
	info, err := os.Stat(s.LibraryPath())
	return err == nil && info.Mode().IsRegular()
}
