// Package rawbin implements a length-prefixed binary interchange format for
// keyed float64 vectors.
//
// Each record is laid out as
//
//	[uint32 key length][key bytes][uint32 value count][value count * uint64]
//
// with every value carrying the IEEE 754 bit pattern of one float64. Records
// are written back to back with no framing between them, so a buffer can be
// decoded by reading records until it is exhausted.
//
// The byte order defaults to big-endian, the layout produced by JVM
// DataOutputStream writers, which makes the format a direct bridge to
// JVM-based pipelines. WithLittleEndian switches both sides for
// Go-to-Go interchange on common hardware.
package rawbin

import (
	"math"

	"github.com/arloliu/tsframe/endian"
	"github.com/arloliu/tsframe/internal/options"
)

// Record is one decoded entry of a buffer: a series key and its values.
type Record struct {
	Key    string
	Values []float64
}

type codecConfig struct {
	engine endian.EndianEngine
}

// Option configures encoding and decoding.
type Option = options.Option[*codecConfig]

// WithLittleEndian switches the byte order to little-endian. Both sides of
// an exchange must agree on the order; the default is big-endian.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *codecConfig) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

func defaultCodecConfig() codecConfig {
	return codecConfig{engine: endian.GetBigEndianEngine()}
}

// appendSeries appends one record to dst and returns the extended buffer.
func appendSeries(dst []byte, engine endian.EndianEngine, key string, values []float64) []byte {
	dst = engine.AppendUint32(dst, uint32(len(key)))
	dst = append(dst, key...)
	dst = engine.AppendUint32(dst, uint32(len(values)))
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// EncodedSize returns the exact encoded size in bytes of one record.
func EncodedSize(key string, values []float64) int {
	return 4 + len(key) + 4 + 8*len(values)
}
