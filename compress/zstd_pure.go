//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Encoder and decoder state is expensive to build and reusable once warm, so
// both sides pool it. EncodeAll and DecodeAll leave the pooled instance in a
// reusable state even after an error.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd encoder init: %v", err))
			}

			return encoder
		},
	}

	zstdDecoderPool = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderLowmem(false),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd decoder init: %v", err))
			}

			return decoder
		},
	}
)

// Compress compresses the input data with Zstandard at the default level.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data.
//
// Corrupted input, or input compressed with a different algorithm, returns
// an error.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
