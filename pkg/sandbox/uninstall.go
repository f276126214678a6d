package sandbox

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/types"
)

// NewUninstaller returns an uninstaller for sandboxes laid out with the given
// policy.
func NewUninstaller(policy Policy) types.Uninstaller { return &uninstaller{policy: policy} }

type uninstaller struct{ policy Policy }

func (u *uninstaller) Uninstall(sandboxRoot string) *types.UninstallOutcome {
	return New(sandboxRoot, u.policy).Remove()
}

// Remove deletes every managed path of the sandbox. Contents are removed
// before the directories holding them. Removal continues past failures so
// the outcome reports every path that could not be deleted. The root itself
// is only removed once nothing else is left in it.
func (s *Sandbox) Remove() *types.UninstallOutcome {
	var targets []string
	for _, p := range s.ManagedPaths() {
		if _, err := os.Lstat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return &types.UninstallOutcome{
				Result: types.UninstallFailed,
				Err:    types.NewError(types.IOError, "io error", err),
			}
		}
		targets = append(targets, p)
	}
	if len(targets) == 0 {
		log.Debugf("Nothing to remove under %q\n", s.root)
		return &types.UninstallOutcome{Result: types.UninstallNothingToRemove}
	}

	var removed int
	var result *multierror.Error
	for _, target := range targets {
		log.Info("Removing", target)
		n, err := removePostOrder(target)
		removed += n
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result.ErrorOrNil() == nil {
		n, err := removeIfEmpty(s.root)
		removed += n
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return &types.UninstallOutcome{
			Result:  types.UninstallFailed,
			Removed: removed,
			Err:     types.NewError(types.IOError, "io error", err),
		}
	}
	return &types.UninstallOutcome{Result: types.UninstallRemoved, Removed: removed}
}

// removePostOrder removes root and everything beneath it, children first.
// Symlinks are removed, never followed.
func removePostOrder(root string) (int, error) {
	var paths []string
	var result *multierror.Error
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// an unreadable directory was already recorded on its first visit
			result = multierror.Append(result, errors.Wrapf(err, "walking %s", p))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		result = multierror.Append(result, err)
	}

	var removed int
	failed := make(map[string]bool)
	// walk order is pre-order, so reversing it visits children before parents
	for i := len(paths) - 1; i >= 0; i-- {
		p := paths[i]
		if failed[p] {
			continue
		}
		if err := os.Remove(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			result = multierror.Append(result, errors.Wrapf(err, "removing %s", p))
			// the parents of a path that could not be removed cannot be empty
			for dir := filepath.Dir(p); dir != root && len(dir) > len(root); dir = filepath.Dir(dir) {
				failed[dir] = true
			}
			failed[root] = true
			continue
		}
		log.Debug("Removed", p)
		removed++
	}
	return removed, result.ErrorOrNil()
}

// removeIfEmpty removes dir when it has no entries left.
func removeIfEmpty(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "reading %s", dir)
	}
	if len(entries) > 0 {
		log.Debugf("Leaving %q in place, it holds %d unmanaged entries\n", dir, len(entries))
		return 0, nil
	}
	if err := os.Remove(dir); err != nil {
		return 0, errors.Wrapf(err, "removing %s", dir)
	}
	log.Debug("Removed", dir)
	return 1, nil
}
