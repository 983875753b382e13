package frame

import (
	"context"
	"fmt"
	"slices"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/internal/options"
	"github.com/arloliu/tsframe/timeindex"
)

// DefaultPartitions is the number of dataset partitions a collection is
// built with when WithPartitions is not given.
const DefaultPartitions = 4

type collectionConfig struct {
	partitions int
}

// CollectionOption configures collection construction.
type CollectionOption = options.Option[*collectionConfig]

// WithPartitions sets the number of dataset partitions the collection's
// series are spread over. The count must be positive.
func WithPartitions(n int) CollectionOption {
	return options.New(func(cfg *collectionConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPartitionCount, n)
		}
		cfg.partitions = n

		return nil
	})
}

func defaultCollectionConfig() collectionConfig {
	return collectionConfig{partitions: DefaultPartitions}
}

// Collection is an immutable set of keyed series aligned on a shared time
// index. The series live in a lazy dataset, so transforms compose without
// materializing intermediate results.
//
// The zero value is not usable; build collections with New, FromVectors,
// FromObservations or FromBuffers.
type Collection struct {
	index timeindex.Index
	data  *dataset.Dataset[Series]
}

// New creates a collection of the given series aligned on idx.
//
// Every series must hold exactly idx.Size() values. The series slice itself
// is copied, but the collection takes ownership of the data vectors; callers
// must not modify them afterwards.
//
// Parameters:
//   - idx: time index shared by all series
//   - series: series vectors, one value per index instant
//   - opts: optional settings, e.g. WithPartitions
//
// Returns:
//   - *Collection: the created collection
//   - error: errs.ErrNilIndex, errs.ErrLengthMismatch on a series whose
//     length does not match idx, or an option error
func New(idx timeindex.Index, series []Series, opts ...CollectionOption) (*Collection, error) {
	if idx == nil {
		return nil, errs.ErrNilIndex
	}

	cfg := defaultCollectionConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	size := idx.Size()
	for _, s := range series {
		if len(s.Data) != size {
			return nil, fmt.Errorf("%w: series %q has %d values, index has %d instants",
				errs.ErrLengthMismatch, s.Key, len(s.Data), size)
		}
	}

	data, err := dataset.FromSlice(slices.Clone(series), cfg.partitions)
	if err != nil {
		return nil, err
	}

	return &Collection{index: idx, data: data}, nil
}

// FromVectors creates a collection from parallel key and vector slices.
// keys[i] names the series holding vectors[i].
//
// Returns:
//   - *Collection: the created collection
//   - error: errs.ErrLengthMismatch when the slices differ in length or a
//     vector does not match idx, errs.ErrNilIndex, or an option error
func FromVectors(idx timeindex.Index, keys []string, vectors [][]float64, opts ...CollectionOption) (*Collection, error) {
	if len(keys) != len(vectors) {
		return nil, fmt.Errorf("%w: %d keys, %d vectors", errs.ErrLengthMismatch, len(keys), len(vectors))
	}

	series := make([]Series, len(keys))
	for i, key := range keys {
		series[i] = Series{Key: key, Data: vectors[i]}
	}

	return New(idx, series, opts...)
}

// fromDataset wraps an existing series dataset without validation. Callers
// guarantee every series matches idx.
func fromDataset(idx timeindex.Index, data *dataset.Dataset[Series]) *Collection {
	return &Collection{index: idx, data: data}
}

// derive returns a collection with the same index backed by a new dataset.
func (c *Collection) derive(data *dataset.Dataset[Series]) *Collection {
	return &Collection{index: c.index, data: data}
}

// Index returns the time index all series are aligned on.
func (c *Collection) Index() timeindex.Index {
	return c.index
}

// NumPartitions returns the number of dataset partitions backing the
// collection.
func (c *Collection) NumPartitions() int {
	return c.data.NumPartitions()
}

// Dataset returns the underlying series dataset for direct pipeline
// composition. The returned dataset shares the collection's compute chain.
func (c *Collection) Dataset() *dataset.Dataset[Series] {
	return c.data
}

// Collect evaluates the collection and returns all series in enumeration
// order, partition by partition.
func (c *Collection) Collect(ctx context.Context) ([]Series, error) {
	return c.data.Collect(ctx)
}

// Count evaluates the collection and returns the number of series.
func (c *Collection) Count(ctx context.Context) (int, error) {
	return c.data.Count(ctx)
}

// Keys evaluates the collection and returns the series keys in enumeration
// order. Duplicate keys appear once per series carrying them. The order
// matches the value order of instants produced by Instants.
func (c *Collection) Keys(ctx context.Context) ([]string, error) {
	keyed := dataset.Map(c.data, func(s Series) string { return s.Key })

	return keyed.Collect(ctx)
}

// Get evaluates the collection and returns the first series with the given
// key in enumeration order. The boolean reports whether the key was found.
func (c *Collection) Get(ctx context.Context, key string) (Series, bool, error) {
	parts, err := c.data.Partitions(ctx)
	if err != nil {
		return Series{}, false, err
	}

	for _, part := range parts {
		for _, s := range part {
			if s.Key == key {
				return s, true, nil
			}
		}
	}

	return Series{}, false, nil
}

// Materialize evaluates the collection once and returns a collection backed
// by the computed partitions. Use it to pin the result of an expensive
// transform chain before fanning out several terminal operations.
func (c *Collection) Materialize(ctx context.Context) (*Collection, error) {
	data, err := c.data.Materialize(ctx)
	if err != nil {
		return nil, err
	}

	return c.derive(data), nil
}
