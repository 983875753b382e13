package compress

// ZstdCompressor provides Zstandard compression for tsframe payloads.
//
// Zstd trades speed for ratio, which suits the store and archival flat files
// where payloads are written once and read rarely.
//
// Two implementations back this type: builds with cgo use valyala/gozstd
// (bindings to libzstd), pure-Go builds use klauspost/compress/zstd with
// pooled encoder and decoder state. Output from either implementation is
// standard Zstd and decompresses with the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
