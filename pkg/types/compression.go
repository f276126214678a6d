package types

// CompressionKind is the compression format of an archive stream, as
// determined by sniffing its leading bytes.
type CompressionKind int

const (
	// CompressionUnknown is any stream that did not match a supported magic.
	CompressionUnknown CompressionKind = iota
	// CompressionGzip is a gzip stream (1F 8B).
	CompressionGzip
	// CompressionXz is an xz stream (FD 37 7A 58 5A 00).
	CompressionXz
)

func (c CompressionKind) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionXz:
		return "xz"
	}
	return "unknown"
}
