// Package dataset implements a partitioned, lazily evaluated collection.
//
// A Dataset is an immutable handle: a partition count plus a pure compute
// function producing the partition contents. Transforms compose compute
// functions without evaluating anything; terminal operations (Collect,
// Partitions, Count, Aggregate) run the whole chain. Because compute
// functions are pure, re-evaluating a pipeline reproduces identical
// partitions, so retrying after a failure is always safe.
//
// Evaluation fans out across partitions with an errgroup bounded by
// runtime.GOMAXPROCS. Cancelling the context aborts evaluation between
// partition steps.
//
// Every terminal operation re-runs the pipeline. Call Materialize to pin the
// results of an expensive chain before applying several terminals to it.
package dataset

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/tsframe/errs"
)

// Dataset is an immutable handle on a partitioned collection of T.
//
// The element order within a partition and the order of partitions are part
// of the dataset's value: two evaluations of the same handle yield the same
// partitions in the same order.
type Dataset[T any] struct {
	numPartitions int
	compute       func(ctx context.Context) ([][]T, error)
}

// FromSlice creates a dataset holding items split into numPartitions
// contiguous blocks. Item order is preserved across the partition boundary.
func FromSlice[T any](items []T, numPartitions int) (*Dataset[T], error) {
	if numPartitions <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPartitionCount, numPartitions)
	}

	parts := make([][]T, numPartitions)
	for i := range numPartitions {
		lo := i * len(items) / numPartitions
		hi := (i + 1) * len(items) / numPartitions
		parts[i] = items[lo:hi]
	}

	return FromPartitions(parts), nil
}

// Empty creates a dataset of numPartitions partitions with no elements.
func Empty[T any](numPartitions int) (*Dataset[T], error) {
	return FromSlice[T](nil, numPartitions)
}

// FromPartitions creates a dataset over the given partitions as-is.
//
// The dataset aliases the given slices; callers must not mutate them
// afterwards.
func FromPartitions[T any](parts [][]T) *Dataset[T] {
	return &Dataset[T]{
		numPartitions: len(parts),
		compute: func(ctx context.Context) ([][]T, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			return parts, nil
		},
	}
}

// NumPartitions returns the partition count of the dataset.
func (d *Dataset[T]) NumPartitions() int {
	return d.numPartitions
}

// Partitions evaluates the pipeline and returns the partition contents in
// partition order.
//
// The returned slices are owned by the dataset's evaluation; callers must
// not mutate them.
func (d *Dataset[T]) Partitions(ctx context.Context) ([][]T, error) {
	return d.compute(ctx)
}

// Collect evaluates the pipeline and returns all elements in partition
// order, with within-partition order preserved.
func (d *Dataset[T]) Collect(ctx context.Context) ([]T, error) {
	parts, err := d.compute(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}

	out := make([]T, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}

	return out, nil
}

// Count evaluates the pipeline and returns the total element count.
func (d *Dataset[T]) Count(ctx context.Context) (int, error) {
	parts, err := d.compute(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}

	return total, nil
}

// Materialize evaluates the pipeline once and returns a dataset backed by
// the concrete partitions. Terminal operations on the result no longer
// re-run the chain.
func (d *Dataset[T]) Materialize(ctx context.Context) (*Dataset[T], error) {
	parts, err := d.compute(ctx)
	if err != nil {
		return nil, err
	}

	return FromPartitions(parts), nil
}

// eachPartition runs f for every partition index, fanning out across an
// errgroup bounded by GOMAXPROCS. The first error cancels the remaining
// work.
func eachPartition(ctx context.Context, numPartitions int, f func(ctx context.Context, part int) error) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i := range numPartitions {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return f(ctx, i)
		})
	}

	return group.Wait()
}
