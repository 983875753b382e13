package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression. Decompression is the fastest
// of the supported algorithms, which suits read-heavy store workloads.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression with a
// pooled compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses LZ4 block data.
//
// LZ4 blocks do not record the decompressed size, so the buffer is sized
// adaptively:
//  1. Start at 4x the compressed size (common expansion ratio)
//  2. On ErrInvalidSourceShortBuffer, double the buffer and retry
//  3. Give up past 128MB, which indicates corrupted input
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
