package install

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tinyzimmer/usersu/pkg/archive"
	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/sandbox"
	"github.com/tinyzimmer/usersu/pkg/types"
)

// extract drains the archive into the sandbox, returning the number of files
// written. It stops at the first error, leaving completed files in place.
func extract(rdr *archive.Reader, box *sandbox.Sandbox) (int, error) {
	var count int
	for {
		entry, err := rdr.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if entry.IsDir {
			continue
		}
		route, ok := box.Policy().Route(entry.Name)
		if !ok {
			log.Debugf("Skipping %q\n", entry.Name)
			continue
		}
		if !entry.IsRegular {
			log.Warningf("Skipping %q, only regular files are installed\n", entry.Name)
			continue
		}
		dest, err := box.Resolve(route.Path)
		if err != nil {
			return count, types.NewError(types.IOError, "io error", err)
		}
		if err := writeEntry(entry, dest, route.Executable); err != nil {
			return count, err
		}
		count++
	}
}

// writeEntry copies the entry body to dest, replacing anything there, and
// only then marks it executable if requested.
func writeEntry(entry *archive.Entry, dest string, executable bool) error {
	log.Debugf("Writing %q to %q (%d bytes)\n", entry.Name, dest, entry.Size)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return types.NewError(types.IOError, "io error", err)
	}
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return types.NewError(types.IOError, "io error", err)
	}
	// an overwritten file keeps its old mode through O_TRUNC
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return types.NewError(types.IOError, "io error", err)
	}
	body := &readTracker{r: entry.Body}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		if body.err != nil {
			// already classified by the archive reader
			return body.err
		}
		return types.NewError(types.IOError, "io error", errors.Wrapf(err, "writing %s", dest))
	}
	if err := f.Close(); err != nil {
		return types.NewError(types.IOError, "io error", errors.Wrapf(err, "writing %s", dest))
	}
	if !executable {
		return nil
	}
	info, err := os.Stat(dest)
	if err != nil {
		return types.NewError(types.IOError, "io error", err)
	}
	if err := os.Chmod(dest, info.Mode().Perm()|0100); err != nil {
		return types.NewError(types.IOError, "io error", err)
	}
	return nil
}

// readTracker remembers a read error so a failed copy can be blamed on the
// right side.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
