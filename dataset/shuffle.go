package dataset

import (
	"context"
	"fmt"
	"slices"

	"github.com/arloliu/tsframe/errs"
)

// ShuffleConfig names the two policies of a repartitioning step: where each
// element goes, and how elements are ordered once they arrive.
type ShuffleConfig[T any] struct {
	// NumPartitions is the destination partition count. Must be positive.
	NumPartitions int

	// Assign returns the destination partition of an element, in
	// [0, NumPartitions). Out-of-range results fail evaluation with
	// errs.ErrPartitionOutOfRange.
	Assign func(item T) int

	// Compare orders elements within each destination partition, with the
	// usual negative/zero/positive contract. A nil Compare keeps arrival
	// order.
	Compare func(a, b T) int
}

// Shuffle returns a dataset whose elements are redistributed into
// cfg.NumPartitions partitions by cfg.Assign and ordered within each
// partition by cfg.Compare.
//
// The shuffle is deterministic: a destination partition concatenates its
// elements in source-partition order with within-source order preserved,
// then sorts stably when Compare is set. Equal elements therefore keep their
// arrival order, which downstream consumers rely on for last-write-wins
// semantics.
func Shuffle[T any](d *Dataset[T], cfg ShuffleConfig[T]) (*Dataset[T], error) {
	if cfg.NumPartitions <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPartitionCount, cfg.NumPartitions)
	}
	if cfg.Assign == nil {
		return nil, fmt.Errorf("%w: nil assign function", errs.ErrInvalidPartitionCount)
	}

	return &Dataset[T]{
		numPartitions: cfg.NumPartitions,
		compute: func(ctx context.Context) ([][]T, error) {
			parts, err := d.compute(ctx)
			if err != nil {
				return nil, err
			}

			// Route each source partition into its own destination buckets,
			// in parallel. Keeping per-source buckets separate until the
			// concatenation step makes the result independent of worker
			// scheduling.
			buckets := make([][][]T, len(parts))
			err = eachPartition(ctx, len(parts), func(_ context.Context, src int) error {
				local := make([][]T, cfg.NumPartitions)
				for _, item := range parts[src] {
					dest := cfg.Assign(item)
					if dest < 0 || dest >= cfg.NumPartitions {
						return fmt.Errorf("%w: assigned %d of %d", errs.ErrPartitionOutOfRange, dest, cfg.NumPartitions)
					}
					local[dest] = append(local[dest], item)
				}
				buckets[src] = local

				return nil
			})
			if err != nil {
				return nil, err
			}

			out := make([][]T, cfg.NumPartitions)
			err = eachPartition(ctx, cfg.NumPartitions, func(_ context.Context, dest int) error {
				size := 0
				for src := range buckets {
					size += len(buckets[src][dest])
				}

				merged := make([]T, 0, size)
				for src := range buckets {
					merged = append(merged, buckets[src][dest]...)
				}

				if cfg.Compare != nil {
					slices.SortStableFunc(merged, cfg.Compare)
				}
				out[dest] = merged

				return nil
			})
			if err != nil {
				return nil, err
			}

			return out, nil
		},
	}, nil
}
