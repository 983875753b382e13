// Package tsframe provides partitioned collections of time series aligned
// on a shared time index, with lazy transforms and a distributed-style
// transpose into per-instant cross sections.
//
// A collection pairs a time index (uniform or irregular, microsecond
// resolution) with many keyed float64 vectors, one value per index instant
// and NaN marking gaps. Collections are immutable and lazily evaluated:
// transforms compose into a pipeline that only runs when a terminal
// operation collects results, and every evaluation fans out across
// partitions.
//
// # Core Features
//
//   - Uniform and irregular time indexes with O(1)/O(log n) instant lookup
//   - Alignment of vectors and whole collections onto new indexes
//   - Ingestion of unordered observation streams with hash routing,
//     deduplication and NaN gap filling
//   - Series-major to instant-major transpose without gathering the whole
//     collection on one partition
//   - Gap analysis (missing masks, dropping incomplete instants) and
//     per-series fills (value, previous, next, linear)
//   - Flat-file and length-prefixed binary interchange, optional
//     compression (Zstd, S2, LZ4)
//   - Embedded persistence of named collections
//   - Dense matrix and Apache Arrow columnar exports
//
// # Basic Usage
//
// Building a collection and reading it back:
//
//	import "github.com/arloliu/tsframe"
//
//	idx, _ := tsframe.UniformIndex(start, time.Minute, 60)
//	c, _ := tsframe.FromVectors(idx,
//	    []string{"cpu.user", "cpu.sys"},
//	    [][]float64{userVec, sysVec},
//	)
//
//	series, _ := c.Collect(ctx)
//
// Ingesting unordered observations:
//
//	obs := []tsframe.Observation{
//	    {Ts: t0, Key: "cpu.user", Value: 3.1},
//	    {Ts: t1, Key: "cpu.sys", Value: 0.4},
//	}
//	c, _ := tsframe.FromObservations(idx, obs)
//
// Filling gaps and flipping to the instant-major view:
//
//	filled := c.MapSeries(univariate.FillLinear)
//	instants, _ := filled.Instants(ctx)
//	for _, in := range instants {
//	    fmt.Println(in.Time(), in.Values)
//	}
//
// Persisting named collections:
//
//	db, _ := tsframe.OpenStore("/var/lib/tsframe",
//	    store.WithCompression(format.CompressionZstd))
//	defer db.Close()
//
//	_ = db.Save(ctx, "host42.cpu", c)
//	loaded, _ := db.Load("host42.cpu")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the frame,
// timeindex and store packages, simplifying the most common use cases. For
// fine-grained control use the subpackages directly: frame for collection
// transforms, univariate for vector operations, dataset for pipeline
// composition, flatfile and rawbin for interchange, matrix and columnar for
// dense exports.
package tsframe

import (
	"time"

	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/internal/hash"
	"github.com/arloliu/tsframe/store"
	"github.com/arloliu/tsframe/timeindex"
)

// Collection is an immutable set of keyed series on a shared time index.
type Collection = frame.Collection

// Series is one named vector of a collection.
type Series = frame.Series

// Observation is a single timestamped measurement of one series.
type Observation = frame.Observation

// Instant is a cross section of a collection at one time instant.
type Instant = frame.Instant

// Index locates instants on the time axis.
type Index = timeindex.Index

// UniformIndex creates an evenly spaced index of count instants step apart,
// beginning at start. Most collections use a uniform index; lookups on it
// are constant-time arithmetic.
//
// Parameters:
//   - start: first instant
//   - step: spacing, at least one microsecond
//   - count: number of instants
//
// Returns:
//   - Index: the created index
//   - error: errs.ErrInvalidTimeStep or errs.ErrInvalidRange
//
// Example:
//
//	idx, err := tsframe.UniformIndex(time.Now(), time.Minute, 60)
func UniformIndex(start time.Time, step time.Duration, count int) (Index, error) {
	return timeindex.NewUniform(start, step, count)
}

// IrregularIndex creates an index over explicit, strictly increasing
// instants.
//
// Returns:
//   - Index: the created index
//   - error: errs.ErrUnorderedTimestamps on out-of-order or duplicate
//     instants
func IrregularIndex(instants []time.Time) (Index, error) {
	return timeindex.NewIrregular(instants)
}

// ParseIndex restores an index from its text encoding, the form produced by
// Index.Encode and stored in flat-file sidecars.
func ParseIndex(encoded string) (Index, error) {
	return timeindex.Parse(encoded)
}

// NewCollection creates a collection of the given series aligned on idx.
// Every series must hold exactly idx.Size() values.
//
// Example:
//
//	c, err := tsframe.NewCollection(idx, []tsframe.Series{
//	    {Key: "cpu.user", Data: userVec},
//	})
func NewCollection(idx Index, series []Series, opts ...frame.CollectionOption) (*Collection, error) {
	return frame.New(idx, series, opts...)
}

// FromVectors creates a collection from parallel key and vector slices.
func FromVectors(idx Index, keys []string, vectors [][]float64, opts ...frame.CollectionOption) (*Collection, error) {
	return frame.FromVectors(idx, keys, vectors, opts...)
}

// FromObservations builds a collection from unordered timestamped
// observations, grouping them by key and aligning them onto idx. Instants
// with no observation hold NaN; observations off the index grid are
// dropped; for duplicate (key, timestamp) pairs the last one in obs order
// wins.
//
// Example:
//
//	c, err := tsframe.FromObservations(idx, obs,
//	    frame.WithPartitions(8))
func FromObservations(idx Index, obs []Observation, opts ...frame.CollectionOption) (*Collection, error) {
	return frame.FromObservations(idx, obs, opts...)
}

// FromBuffers builds a collection from raw binary buffers in the rawbin
// big-endian interchange format, the layout produced by JVM pipelines.
func FromBuffers(idx Index, bufs [][]byte, opts ...frame.CollectionOption) (*Collection, error) {
	return frame.FromBuffers(idx, bufs, opts...)
}

// KeyID returns the 64-bit hash of a series key, the value used to route a
// key to a partition. The hash is stable across processes and platforms.
func KeyID(key string) uint64 {
	return hash.ID(key)
}

// OpenStore opens or creates a collection store at path.
//
// Example:
//
//	db, err := tsframe.OpenStore(dir, store.WithInMemory())
func OpenStore(path string, opts ...store.Option) (*store.Store, error) {
	return store.Open(path, opts...)
}
