package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/timeindex"
	"github.com/arloliu/tsframe/univariate"
)

// MapSeries returns a collection whose vectors are f applied to each series
// vector. The index and keys are unchanged.
//
// f must return a fresh vector of the same length and must not modify its
// input; vectors are shared with the source collection. The length contract
// is checked when the result is evaluated, and a violation fails the
// evaluating operation with errs.ErrLengthMismatch.
//
// Parameters:
//   - f: vector transform, e.g. univariate.FillLinear
//
// Returns:
//   - *Collection: lazily transformed collection
func (c *Collection) MapSeries(f func([]float64) []float64) *Collection {
	size := c.index.Size()
	mapped := dataset.MapPartitions(c.data, func(_ int, in []Series) ([]Series, error) {
		out := make([]Series, len(in))
		for i, s := range in {
			data := f(s.Data)
			if len(data) != size {
				return nil, fmt.Errorf("%w: series %q mapped to %d values, index has %d instants",
					errs.ErrLengthMismatch, s.Key, len(data), size)
			}
			out[i] = Series{Key: s.Key, Data: data}
		}

		return out, nil
	})

	return c.derive(mapped)
}

// MapSeriesWithIndex returns a collection aligned on target whose vectors
// are f applied to each series vector. Unlike MapSeries, f must return
// vectors of length target.Size(); the contract is checked when the result
// is evaluated.
//
// Returns:
//   - *Collection: lazily transformed collection aligned on target
//   - error: errs.ErrNilIndex when target is nil
func (c *Collection) MapSeriesWithIndex(target timeindex.Index, f func([]float64) []float64) (*Collection, error) {
	if target == nil {
		return nil, errs.ErrNilIndex
	}

	size := target.Size()
	mapped := dataset.MapPartitions(c.data, func(_ int, in []Series) ([]Series, error) {
		out := make([]Series, len(in))
		for i, s := range in {
			data := f(s.Data)
			if len(data) != size {
				return nil, fmt.Errorf("%w: series %q mapped to %d values, index has %d instants",
					errs.ErrLengthMismatch, s.Key, len(data), size)
			}
			out[i] = Series{Key: s.Key, Data: data}
		}

		return out, nil
	})

	return fromDataset(target, mapped), nil
}

// Filter returns a collection keeping only the series for which keep returns
// true. keep must not modify the data vector.
func (c *Collection) Filter(keep func(key string, data []float64) bool) *Collection {
	kept := dataset.Filter(c.data, func(s Series) bool { return keep(s.Key, s.Data) })

	return c.derive(kept)
}

// FilterStartingBefore keeps the series whose first non-NaN observation is
// at or before ts (microseconds since the Unix epoch). Series with no
// observations are dropped.
func (c *Collection) FilterStartingBefore(ts int64) *Collection {
	idx := c.index

	return c.Filter(func(_ string, data []float64) bool {
		first := univariate.FirstObserved(data)

		return first >= 0 && idx.At(first) <= ts
	})
}

// FilterEndingAfter keeps the series whose last non-NaN observation is at or
// after ts (microseconds since the Unix epoch). Series with no observations
// are dropped.
func (c *Collection) FilterEndingAfter(ts int64) *Collection {
	idx := c.index

	return c.Filter(func(_ string, data []float64) bool {
		last := univariate.LastObserved(data)

		return last >= 0 && idx.At(last) >= ts
	})
}

// WithIndex returns the collection realigned on target. Instants shared with
// the current index keep their values, instants absent from it are filled
// with fill, and values at instants target does not cover are dropped.
//
// Parameters:
//   - target: index to align on
//   - fill: value for instants the current index does not cover, commonly
//     math.NaN()
//
// Returns:
//   - *Collection: lazily realigned collection
//   - error: errs.ErrNilIndex when target is nil
func (c *Collection) WithIndex(target timeindex.Index, fill float64) (*Collection, error) {
	if target == nil {
		return nil, errs.ErrNilIndex
	}

	src := c.index
	mapped := dataset.MapPartitions(c.data, func(_ int, in []Series) ([]Series, error) {
		out := make([]Series, len(in))
		for i, s := range in {
			data, err := Align(src, target, s.Data, fill)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", s.Key, err)
			}
			out[i] = Series{Key: s.Key, Data: data}
		}

		return out, nil
	})

	return fromDataset(target, mapped), nil
}

// Slice restricts the collection to the instants in [from, to], both in
// microseconds since the Unix epoch and both inclusive.
//
// Returns:
//   - *Collection: collection aligned on the sliced index
//   - error: errs.ErrInvalidRange when from > to
func (c *Collection) Slice(from, to int64) (*Collection, error) {
	sub, err := c.index.Slice(from, to)
	if err != nil {
		return nil, err
	}

	return c.WithIndex(sub, math.NaN())
}

// SliceLoc restricts the collection to the instants in the half-open
// location range [i, j).
//
// Returns:
//   - *Collection: collection aligned on the sliced index
//   - error: errs.ErrInvalidRange when the range is out of bounds
func (c *Collection) SliceLoc(i, j int) (*Collection, error) {
	sub, err := c.index.SliceLoc(i, j)
	if err != nil {
		return nil, err
	}

	return c.WithIndex(sub, math.NaN())
}
