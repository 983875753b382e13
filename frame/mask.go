package frame

import (
	"context"
	"math"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/timeindex"
)

// MissingMask evaluates the collection and reports, per index instant,
// whether any series is missing a value there. mask[i] is true when at least
// one series holds NaN at instant i. An empty collection yields an all-false
// mask of the index size.
func (c *Collection) MissingMask(ctx context.Context) ([]bool, error) {
	size := c.index.Size()

	return dataset.Aggregate(ctx, c.data,
		func() []bool { return make([]bool, size) },
		func(mask []bool, s Series) []bool {
			for i, v := range s.Data {
				if math.IsNaN(v) {
					mask[i] = true
				}
			}

			return mask
		},
		func(a, b []bool) []bool {
			for i, miss := range b {
				if miss {
					a[i] = true
				}
			}

			return a
		})
}

// RemoveInstantsWithNaNs drops every instant at which at least one series is
// missing a value, keeping only fully observed cross sections. The surviving
// instants form an irregular index even when they happen to be evenly
// spaced.
//
// The mask is computed eagerly; the projection of the series vectors stays
// lazy.
//
// Returns:
//   - *Collection: collection restricted to fully observed instants
//   - error: evaluation error from computing the mask
func (c *Collection) RemoveInstantsWithNaNs(ctx context.Context) (*Collection, error) {
	mask, err := c.MissingMask(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]int, 0, len(mask))
	keptTs := make([]int64, 0, len(mask))
	for i, ts := range c.index.All() {
		if !mask[i] {
			kept = append(kept, i)
			keptTs = append(keptTs, ts)
		}
	}

	sub, err := timeindex.NewIrregularMicros(keptTs)
	if err != nil {
		return nil, err
	}

	return c.MapSeriesWithIndex(sub, func(data []float64) []float64 {
		out := make([]float64, len(kept))
		for j, loc := range kept {
			out[j] = data[loc]
		}

		return out
	})
}
