package frame

import (
	"fmt"

	"github.com/arloliu/tsframe/rawbin"
	"github.com/arloliu/tsframe/timeindex"
)

// FromBuffers builds a collection from raw binary buffers in the rawbin
// big-endian interchange format, the layout produced by JVM pipelines.
//
// Buffers are decoded eagerly, in order, and every decoded record becomes
// one series. Little-endian buffers must be decoded with the rawbin package
// directly and handed to New.
//
// Parameters:
//   - idx: time index the decoded vectors are aligned on
//   - bufs: buffers of back-to-back records
//   - opts: optional settings, e.g. WithPartitions
//
// Returns:
//   - *Collection: the created collection
//   - error: errs.ErrBufferTooShort on a truncated buffer,
//     errs.ErrLengthMismatch on a record not matching idx, or errs.ErrNilIndex
func FromBuffers(idx timeindex.Index, bufs [][]byte, opts ...CollectionOption) (*Collection, error) {
	var series []Series
	for i, buf := range bufs {
		records, err := rawbin.DecodeAll(buf)
		if err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}

		for _, rec := range records {
			series = append(series, Series{Key: rec.Key, Data: rec.Values})
		}
	}

	return New(idx, series, opts...)
}
