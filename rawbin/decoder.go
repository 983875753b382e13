package rawbin

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/tsframe/endian"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/internal/options"
)

// Decoder reads records from a buffer one at a time.
//
// A Decoder never copies or modifies the buffer it reads; the buffer must
// stay unchanged while decoding. A Decoder is not safe for concurrent use.
type Decoder struct {
	engine endian.EndianEngine
	buf    []byte
	off    int
}

// NewDecoder creates a decoder over buf.
//
// Returns:
//   - *Decoder: the created decoder
//   - error: an option error
func NewDecoder(buf []byte, opts ...Option) (*Decoder, error) {
	cfg := defaultCodecConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{engine: cfg.engine, buf: buf}, nil
}

// More reports whether undecoded bytes remain.
func (d *Decoder) More() bool {
	return d.off < len(d.buf)
}

// Next decodes the next record.
//
// Returns:
//   - Record: the decoded record, with freshly allocated key and values
//   - error: io.EOF when the buffer is cleanly exhausted, or
//     errs.ErrBufferTooShort when the buffer ends inside a record
func (d *Decoder) Next() (Record, error) {
	if d.off == len(d.buf) {
		return Record{}, io.EOF
	}

	start := d.off

	keyLen, err := d.uint32(start)
	if err != nil {
		return Record{}, err
	}
	key, err := d.take(start, int(keyLen))
	if err != nil {
		return Record{}, err
	}

	count, err := d.uint32(start)
	if err != nil {
		return Record{}, err
	}
	// Bounds-check the whole value block before allocating, so a corrupt
	// count cannot trigger a huge allocation.
	if int64(len(d.buf)-d.off) < int64(count)*8 {
		return Record{}, fmt.Errorf("%w: record at offset %d: %d values truncated",
			errs.ErrBufferTooShort, start, count)
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(d.engine.Uint64(d.buf[d.off:]))
		d.off += 8
	}

	return Record{Key: string(key), Values: values}, nil
}

// uint32 reads a 4-byte field at the current offset. start locates the
// record for error reporting.
func (d *Decoder) uint32(start int) (uint32, error) {
	if len(d.buf)-d.off < 4 {
		return 0, fmt.Errorf("%w: record at offset %d truncated", errs.ErrBufferTooShort, start)
	}

	v := d.engine.Uint32(d.buf[d.off:])
	d.off += 4

	return v, nil
}

// take consumes n raw bytes at the current offset.
func (d *Decoder) take(start, n int) ([]byte, error) {
	if len(d.buf)-d.off < n {
		return nil, fmt.Errorf("%w: record at offset %d truncated", errs.ErrBufferTooShort, start)
	}

	b := d.buf[d.off : d.off+n]
	d.off += n

	return b, nil
}

// DecodeAll decodes every record in buf.
//
// Returns:
//   - []Record: the decoded records in buffer order, nil for an empty buffer
//   - error: errs.ErrBufferTooShort on a truncated record, or an option
//     error
func DecodeAll(buf []byte, opts ...Option) ([]Record, error) {
	dec, err := NewDecoder(buf, opts...)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		rec, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
}
