package archive

import (
	"bytes"
	"io"

	"github.com/tinyzimmer/usersu/pkg/types"
)

// SniffLen is the number of leading bytes needed to classify any supported
// format.
const SniffLen = 6

var (
	gzipMagic = []byte{0x1F, 0x8B}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// Peeker is a stream that can look ahead without advancing. *bufio.Reader
// satisfies it.
type Peeker interface {
	io.Reader
	// Peek returns the next n bytes without advancing the reader. It may
	// return fewer than n bytes along with an error.
	Peek(n int) ([]byte, error)
}

// Sniff classifies the stream from its leading bytes. The read position of
// p is left unchanged. Streams shorter than a magic are classified from what
// is available; only read errors other than EOF are returned.
func Sniff(p Peeker) (types.CompressionKind, error) {
	head, err := p.Peek(SniffLen)
	if err != nil && err != io.EOF {
		return types.CompressionUnknown, err
	}
	return DetectCompression(head), nil
}

// DetectCompression classifies a byte prefix.
func DetectCompression(head []byte) types.CompressionKind {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return types.CompressionGzip
	case bytes.HasPrefix(head, xzMagic):
		return types.CompressionXz
	}
	return types.CompressionUnknown
}
