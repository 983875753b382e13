package frame

import (
	"cmp"
	"context"
	"fmt"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/internal/options"
)

// DefaultChunkSize is the number of series per transpose fragment when
// WithChunkSize is not given.
const DefaultChunkSize = 20

type instantConfig struct {
	chunkSize  int
	partitions int
}

// InstantOption configures the instant-major transpose.
type InstantOption = options.Option[*instantConfig]

// WithChunkSize sets how many series each transpose fragment carries. Larger
// chunks mean fewer, bigger fragments through the shuffle. The size must be
// positive.
func WithChunkSize(n int) InstantOption {
	return options.New(func(cfg *instantConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidChunkSize, n)
		}
		cfg.chunkSize = n

		return nil
	})
}

// WithInstantPartitions sets the partition count of the instant dataset.
// Instants split into contiguous time ranges, one per partition. The count
// must be positive.
func WithInstantPartitions(n int) InstantOption {
	return options.New(func(cfg *instantConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPartitionCount, n)
		}
		cfg.partitions = n

		return nil
	})
}

// fragment carries the values of one series chunk at one instant between the
// chunking and reassembly phases of the transpose.
type fragment struct {
	ts     int64
	loc    int
	chunk  int64
	values []float64
}

// chunkID packs a source partition and a chunk sequence number into one
// ordering token. Ascending chunk IDs enumerate chunks in partition order,
// then in series order within the partition, so reassembled value order
// matches Keys. Sequence numbers stay below 1<<32.
func chunkID(part, seq int) int64 {
	return int64(part)<<32 | int64(seq)
}

// InstantDataset transposes the series-major collection into a lazy dataset
// of per-instant cross sections.
//
// Each source partition splits its series into chunks of WithChunkSize
// series and emits, per chunk and per instant, a fragment holding that
// chunk's values at that instant. Fragments are shuffled so each destination
// partition receives a contiguous range of instants, ordered by timestamp
// and chunk, then reassembled into whole instants. No partition ever holds a
// full copy of the collection.
//
// Instant values follow the key enumeration order of Keys. Partitions of the
// result cover ascending, non-overlapping time ranges.
//
// Parameters:
//   - opts: optional settings, e.g. WithChunkSize, WithInstantPartitions
//
// Returns:
//   - *dataset.Dataset[Instant]: lazy instant dataset
//   - error: an option error
func (c *Collection) InstantDataset(opts ...InstantOption) (*dataset.Dataset[Instant], error) {
	cfg := instantConfig{chunkSize: DefaultChunkSize, partitions: c.data.NumPartitions()}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	idx := c.index
	size := idx.Size()
	chunkSize := cfg.chunkSize

	fragments := dataset.MapPartitions(c.data, func(part int, series []Series) ([]fragment, error) {
		nChunks := (len(series) + chunkSize - 1) / chunkSize
		frags := make([]fragment, 0, nChunks*size)
		for seq := 0; seq*chunkSize < len(series); seq++ {
			chunk := series[seq*chunkSize : min((seq+1)*chunkSize, len(series))]
			id := chunkID(part, seq)
			for loc, ts := range idx.All() {
				values := make([]float64, len(chunk))
				for k, s := range chunk {
					values[k] = s.Data[loc]
				}
				frags = append(frags, fragment{ts: ts, loc: loc, chunk: id, values: values})
			}
		}

		return frags, nil
	})

	// Fragments only exist for size > 0, so the range assignment below never
	// divides by zero.
	shuffled, err := dataset.Shuffle(fragments, dataset.ShuffleConfig[fragment]{
		NumPartitions: cfg.partitions,
		Assign:        func(f fragment) int { return f.loc * cfg.partitions / size },
		Compare: func(a, b fragment) int {
			if diff := cmp.Compare(a.ts, b.ts); diff != 0 {
				return diff
			}

			return cmp.Compare(a.chunk, b.chunk)
		},
	})
	if err != nil {
		return nil, err
	}

	return dataset.MapPartitions(shuffled, func(_ int, frags []fragment) ([]Instant, error) {
		return reassemble(frags)
	}), nil
}

// Instants evaluates the transpose and returns all cross sections in
// ascending timestamp order, one per index instant. A collection with no
// series produces no instants.
//
// Returns:
//   - []Instant: the cross sections, values in Keys order
//   - error: an option or evaluation error
func (c *Collection) Instants(ctx context.Context, opts ...InstantOption) ([]Instant, error) {
	d, err := c.InstantDataset(opts...)
	if err != nil {
		return nil, err
	}

	return d.Collect(ctx)
}
