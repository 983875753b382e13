package compress

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/format"
)

// Compressor compresses whole tsframe payloads.
//
// A payload is a complete encoded artifact, either a flat-file body or a
// length-prefixed series record, typically a few KB to a few MB.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
//
// Separate interfaces allow asymmetric implementations where compression and
// decompression have different performance characteristics or resource
// requirements.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// The input must have been compressed with the same algorithm. Corrupted
	// or incompatible input returns an error.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrInvalidCompressionType for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s for %s", errs.ErrInvalidCompressionType, compressionType, target)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, compressionType)
}
