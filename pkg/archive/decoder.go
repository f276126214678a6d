package archive

import (
	"archive/tar"
	"bufio"
	"io"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"

	"github.com/tinyzimmer/usersu/pkg/log"
	"github.com/tinyzimmer/usersu/pkg/types"
)

// Entry is a single member of a tar archive. Body is only valid until the
// next call to Reader.Next.
type Entry struct {
	// Slash separated name as stored in the archive
	Name string
	// Whether the entry is a directory
	IsDir bool
	// Whether the entry is a regular file. Links and device nodes are neither
	// this nor a directory.
	IsRegular bool
	// Size of the body in bytes
	Size int64
	// The entry contents
	Body io.Reader
}

// Reader is a forward-only cursor over the entries of a compressed tar
// archive.
type Reader struct {
	kind types.CompressionKind
	src  *trackingReader
	dc   io.ReadCloser
	tr   *tar.Reader
}

// Open sniffs the given stream and wraps it in the matching decompressor and
// a tar reader. The stream is not closed by the returned Reader.
func Open(r io.Reader) (*Reader, error) {
	p, ok := r.(Peeker)
	if !ok {
		p = bufio.NewReader(r)
	}
	kind, err := Sniff(p)
	if err != nil {
		return nil, types.NewError(types.IOError, "io error", errors.Wrap(err, "reading archive header"))
	}
	return NewReader(p, kind)
}

// NewReader wraps an already sniffed stream in the decompressor for kind and
// a tar reader.
func NewReader(r io.Reader, kind types.CompressionKind) (*Reader, error) {
	log.Debugf("Opening %s compressed archive\n", kind)
	var dc io.ReadCloser
	switch kind {
	case types.CompressionGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, types.NewError(types.DecodeError, "decompression error", err)
		}
		dc = gzr
	case types.CompressionXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, types.NewError(types.DecodeError, "decompression error", err)
		}
		dc = io.NopCloser(xzr)
	default:
		return nil, types.NewError(types.FormatError, "unsupported archive format", nil)
	}
	src := &trackingReader{r: dc}
	return &Reader{
		kind: kind,
		src:  src,
		dc:   dc,
		tr:   tar.NewReader(src),
	}, nil
}

// Kind returns the compression format of the underlying stream.
func (r *Reader) Kind() types.CompressionKind { return r.kind }

// Next advances to the next entry, skipping any unread bytes of the current
// one. It returns io.EOF once the end of the archive is reached.
func (r *Reader) Next() (*Entry, error) {
	hdr, err := r.tr.Next()
	if err == io.EOF {
		return nil, r.drain()
	}
	if err != nil {
		return nil, r.classify(err)
	}
	return &Entry{
		Name:      hdr.Name,
		IsDir:     hdr.Typeflag == tar.TypeDir,
		IsRegular: hdr.Typeflag == tar.TypeReg,
		Size:      hdr.Size,
		Body:      &entryReader{r: r},
	}, nil
}

// drain reads the compressed stream past the end of the tar data so the
// decompressor checks its trailer. It returns io.EOF for an intact stream.
func (r *Reader) drain() error {
	if _, err := io.Copy(io.Discard, r.src); err != nil {
		return types.NewError(types.DecodeError, "decompression error", err)
	}
	return io.EOF
}

// Close releases the decompressor. It does not close the source stream.
func (r *Reader) Close() error { return r.dc.Close() }

// classify sorts a read error into a decompression or container failure
// depending on which layer produced it.
func (r *Reader) classify(err error) error {
	if r.src.err != nil && r.src.err != io.EOF {
		return types.NewError(types.DecodeError, "decompression error", r.src.err)
	}
	return types.NewError(types.DecodeError, "archive error", err)
}

// trackingReader records the last error returned by the decompressor.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil {
		t.err = err
	}
	return n, err
}

// entryReader classifies errors hit while reading an entry body.
type entryReader struct{ r *Reader }

func (e *entryReader) Read(p []byte) (int, error) {
	n, err := e.r.tr.Read(p)
	if err != nil && err != io.EOF {
		return n, e.r.classify(err)
	}
	return n, err
}
