// Package format defines the wire-level enum types shared by the flatfile,
// store and compress packages.
package format

// CompressionType identifies the codec applied to an encoded payload.
//
// The numeric values are part of the on-disk format: the store prefixes
// every value it writes with this byte so reads stay self-describing, and
// zero stays reserved so an uninitialized tag never aliases a real codec.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0x1
	// CompressionZstd selects Zstandard, the best ratio at moderate speed.
	CompressionZstd CompressionType = 0x2
	// CompressionS2 selects S2, Snappy-compatible with faster encoding.
	CompressionS2 CompressionType = 0x3
	// CompressionLZ4 selects LZ4, the fastest decompression.
	CompressionLZ4 CompressionType = 0x4
)

// String returns the codec name, or "unknown" for unregistered values.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}
