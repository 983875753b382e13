package rawbin

import (
	"slices"

	"github.com/arloliu/tsframe/endian"
	"github.com/arloliu/tsframe/internal/options"
	"github.com/arloliu/tsframe/internal/pool"
)

// Encoder accumulates records into a single buffer.
//
// The internal buffer comes from a shared pool; call Finish exactly once to
// take the encoded bytes and recycle it. An Encoder is not safe for
// concurrent use.
type Encoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
}

// NewEncoder creates an encoder.
//
// Returns:
//   - *Encoder: the created encoder
//   - error: an option error
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg := defaultCodecConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{engine: cfg.engine, buf: pool.GetRecordBuffer()}, nil
}

// AppendSeries appends one record holding the key and its values.
func (e *Encoder) AppendSeries(key string, values []float64) {
	e.buf.Grow(EncodedSize(key, values))
	e.buf.B = appendSeries(e.buf.B, e.engine, key, values)
}

// Len returns the encoded size so far in bytes.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Finish returns the encoded buffer and recycles the encoder's internal
// storage. The encoder must not be used afterwards.
func (e *Encoder) Finish() []byte {
	out := slices.Clone(e.buf.Bytes())
	pool.PutRecordBuffer(e.buf)
	e.buf = nil

	return out
}

// EncodeAll encodes records back to back into a single buffer.
//
// Returns:
//   - []byte: the encoded buffer, empty for no records
//   - error: an option error
func EncodeAll(records []Record, opts ...Option) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		enc.AppendSeries(rec.Key, rec.Values)
	}

	return enc.Finish(), nil
}
