// Package columnar exports collections as Apache Arrow records for
// interchange with columnar query engines and dataframe tooling.
//
// A collection maps to one record: a non-nullable "timestamp" column in
// microseconds UTC, then one nullable float64 column per series in key
// enumeration order. NaN gaps become Arrow nulls, so downstream consumers
// see missing data the Arrow way.
package columnar

import (
	"context"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/internal/options"
)

// TimestampColumn is the name of the leading time column.
const TimestampColumn = "timestamp"

type recordConfig struct {
	alloc memory.Allocator
}

// Option configures record building.
type Option = options.Option[*recordConfig]

// WithAllocator sets the Arrow allocator used for record buffers. The
// default is the Go allocator.
func WithAllocator(alloc memory.Allocator) Option {
	return options.NoError(func(cfg *recordConfig) {
		cfg.alloc = alloc
	})
}

// Schema returns the Arrow schema of a collection with the given series
// keys: the timestamp column followed by one nullable float64 column per
// key.
func Schema(keys []string) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(keys)+1)
	fields = append(fields, arrow.Field{
		Name: TimestampColumn,
		Type: arrow.FixedWidthTypes.Timestamp_us,
	})
	for _, key := range keys {
		fields = append(fields, arrow.Field{
			Name:     key,
			Type:     arrow.PrimitiveTypes.Float64,
			Nullable: true,
		})
	}

	return arrow.NewSchema(fields, nil)
}

// Record evaluates the collection into a single Arrow record with one row
// per instant. NaN values become nulls. A collection with no series yields
// a zero-row record holding only the timestamp column.
//
// The caller owns the returned record and must Release it.
//
// Parameters:
//   - ctx: evaluation context
//   - c: collection to export
//   - opts: optional settings, e.g. WithAllocator
//
// Returns:
//   - arrow.Record: the built record
//   - error: an option or evaluation error
func Record(ctx context.Context, c *frame.Collection, opts ...Option) (arrow.Record, error) {
	cfg := recordConfig{alloc: memory.NewGoAllocator()}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	keys, err := c.Keys(ctx)
	if err != nil {
		return nil, err
	}
	instants, err := c.Instants(ctx)
	if err != nil {
		return nil, err
	}

	builder := array.NewRecordBuilder(cfg.alloc, Schema(keys))
	defer builder.Release()

	tsBuilder := builder.Field(0).(*array.TimestampBuilder)
	valueBuilders := make([]*array.Float64Builder, len(keys))
	for k := range keys {
		valueBuilders[k] = builder.Field(k + 1).(*array.Float64Builder)
	}

	tsBuilder.Reserve(len(instants))
	for _, b := range valueBuilders {
		b.Reserve(len(instants))
	}

	for _, in := range instants {
		tsBuilder.Append(arrow.Timestamp(in.Ts))
		for k, v := range in.Values {
			if math.IsNaN(v) {
				valueBuilders[k].AppendNull()
			} else {
				valueBuilders[k].Append(v)
			}
		}
	}

	return builder.NewRecord(), nil
}
