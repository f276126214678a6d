package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"

	"github.com/tinyzimmer/usersu/pkg/types"
)

// MockEntry is a member of a tarball built by MockTarball. Names ending in a
// slash are written as directories.
type MockEntry struct {
	Name string
	Body string
}

// MockTarball returns a tar archive of the given entries compressed with
// kind. CompressionUnknown produces a plain, uncompressed tar.
func MockTarball(kind types.CompressionKind, entries ...MockEntry) ([]byte, error) {
	var buf bytes.Buffer
	var out io.WriteCloser
	var err error
	switch kind {
	case types.CompressionGzip:
		out = gzip.NewWriter(&buf)
	case types.CompressionXz:
		out, err = xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
	default:
		out = nopWriteCloser{&buf}
	}

	tw := tar.NewWriter(out)
	for _, entry := range entries {
		hdr := &tar.Header{Name: entry.Name, Mode: 0644, Size: int64(len(entry.Body)), Typeflag: tar.TypeReg}
		if strings.HasSuffix(entry.Name, "/") {
			hdr.Mode, hdr.Size, hdr.Typeflag = 0755, 0, tar.TypeDir
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeDir {
			continue
		}
		if _, err := io.WriteString(tw, entry.Body); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
