package dataset

import (
	"context"
	"fmt"
)

// Map returns a dataset applying the pure function f to every element.
// Partition structure and order are preserved.
func Map[T, U any](d *Dataset[T], f func(T) U) *Dataset[U] {
	return &Dataset[U]{
		numPartitions: d.numPartitions,
		compute: func(ctx context.Context) ([][]U, error) {
			parts, err := d.compute(ctx)
			if err != nil {
				return nil, err
			}

			out := make([][]U, len(parts))
			err = eachPartition(ctx, len(parts), func(_ context.Context, i int) error {
				mapped := make([]U, len(parts[i]))
				for j, item := range parts[i] {
					mapped[j] = f(item)
				}
				out[i] = mapped

				return nil
			})
			if err != nil {
				return nil, err
			}

			return out, nil
		},
	}
}

// MapPartitions returns a dataset applying f to each whole partition. The
// function receives the partition index and its elements and may change the
// element count. A returned error aborts evaluation.
func MapPartitions[T, U any](d *Dataset[T], f func(part int, items []T) ([]U, error)) *Dataset[U] {
	return &Dataset[U]{
		numPartitions: d.numPartitions,
		compute: func(ctx context.Context) ([][]U, error) {
			parts, err := d.compute(ctx)
			if err != nil {
				return nil, err
			}

			out := make([][]U, len(parts))
			err = eachPartition(ctx, len(parts), func(_ context.Context, i int) error {
				mapped, err := f(i, parts[i])
				if err != nil {
					return fmt.Errorf("partition %d: %w", i, err)
				}
				out[i] = mapped

				return nil
			})
			if err != nil {
				return nil, err
			}

			return out, nil
		},
	}
}

// Filter returns a dataset keeping only the elements for which keep returns
// true. Partition structure and relative order are preserved.
func Filter[T any](d *Dataset[T], keep func(T) bool) *Dataset[T] {
	return MapPartitions(d, func(_ int, items []T) ([]T, error) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if keep(item) {
				kept = append(kept, item)
			}
		}

		return kept, nil
	})
}

// Aggregate evaluates the pipeline and folds every element into a single
// accumulator.
//
// Each partition folds independently starting from seed(); the partition
// results merge in partition order, starting again from seed(). For an
// order-independent result, merge must be associative and seed() must be its
// identity.
func Aggregate[T, A any](ctx context.Context, d *Dataset[T], seed func() A, fold func(A, T) A, merge func(A, A) A) (A, error) {
	var zero A

	parts, err := d.compute(ctx)
	if err != nil {
		return zero, err
	}

	accs := make([]A, len(parts))
	err = eachPartition(ctx, len(parts), func(_ context.Context, i int) error {
		acc := seed()
		for _, item := range parts[i] {
			acc = fold(acc, item)
		}
		accs[i] = acc

		return nil
	})
	if err != nil {
		return zero, err
	}

	result := seed()
	for _, acc := range accs {
		result = merge(result, acc)
	}

	return result, nil
}
