package sandbox

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/tinyzimmer/usersu/pkg/log"
)

// Lock is an advisory, cross-process lock serializing operations on one
// sandbox. It lives next to the sandbox root so that removing the sandbox
// does not remove the lock.
type Lock struct {
	f *os.File
}

// LockPath returns the lock file used for the given sandbox root.
func LockPath(root string) string {
	root = filepath.Clean(root)
	return filepath.Join(filepath.Dir(root), "."+filepath.Base(root)+".lock")
}

// Acquire blocks until it holds the exclusive lock for the sandbox root.
func Acquire(root string) (*Lock, error) {
	p := LockPath(root)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, errors.Wrap(err, "creating lock directory")
	}
	f, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "opening lock file")
	}
	log.Debugf("Acquiring sandbox lock %q\n", p)
	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "locking %s", p)
	}
	return &Lock{f: f}, nil
}

// Release gives up the lock.
func (l *Lock) Release() error {
	defer l.f.Close()
	return unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
}
