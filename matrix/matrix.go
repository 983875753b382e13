// Package matrix exports collections as dense instant-major row views,
// the layout expected by numeric and linear-algebra tooling.
//
// Rows come from the collection's transposed instant view: row i holds the
// values of every series at instant i, in key enumeration order. The
// indexed views additionally tag each row with its offset on the time
// index; that offset arithmetic is only exact on a uniform index, so the
// indexed views require one.
package matrix

import (
	"context"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/timeindex"
)

// IndexedRow is one dense row tagged with its offset on the time index.
type IndexedRow struct {
	// Loc is the instant's offset on the collection's index.
	Loc int
	// Values holds one value per series, in key enumeration order.
	Values []float64
}

// uniformIndex returns the collection's index as a Uniform, or
// errs.ErrNonUniformIndex.
func uniformIndex(c *frame.Collection) (timeindex.Uniform, error) {
	u, ok := c.Index().(timeindex.Uniform)
	if !ok {
		return timeindex.Uniform{}, errs.ErrNonUniformIndex
	}

	return u, nil
}

// RowDataset returns the lazy dense row view of the collection, one row per
// instant in ascending time order. Any index shape is accepted.
//
// Returns:
//   - *dataset.Dataset[[]float64]: lazy rows
//   - error: an option error
func RowDataset(c *frame.Collection, opts ...frame.InstantOption) (*dataset.Dataset[[]float64], error) {
	instants, err := c.InstantDataset(opts...)
	if err != nil {
		return nil, err
	}

	return dataset.Map(instants, func(in frame.Instant) []float64 {
		return in.Values
	}), nil
}

// IndexedRowDataset returns the lazy dense row view with each row tagged by
// its index offset.
//
// Returns:
//   - *dataset.Dataset[IndexedRow]: lazy tagged rows
//   - error: errs.ErrNonUniformIndex, or an option error
func IndexedRowDataset(c *frame.Collection, opts ...frame.InstantOption) (*dataset.Dataset[IndexedRow], error) {
	u, err := uniformIndex(c)
	if err != nil {
		return nil, err
	}

	instants, err := c.InstantDataset(opts...)
	if err != nil {
		return nil, err
	}

	return dataset.Map(instants, func(in frame.Instant) IndexedRow {
		// Instants lie on the grid, so the lookup always hits.
		loc, _ := u.Loc(in.Ts)

		return IndexedRow{Loc: loc, Values: in.Values}
	}), nil
}

// Rows evaluates the dense row view, one row per instant in ascending time
// order. A collection with no series yields no rows.
func Rows(ctx context.Context, c *frame.Collection, opts ...frame.InstantOption) ([][]float64, error) {
	d, err := RowDataset(c, opts...)
	if err != nil {
		return nil, err
	}

	return d.Collect(ctx)
}

// IndexedRows evaluates the tagged dense row view.
func IndexedRows(ctx context.Context, c *frame.Collection, opts ...frame.InstantOption) ([]IndexedRow, error) {
	d, err := IndexedRowDataset(c, opts...)
	if err != nil {
		return nil, err
	}

	return d.Collect(ctx)
}
