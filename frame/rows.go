package frame

import (
	"cmp"
	"math"
	"slices"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/internal/hash"
	"github.com/arloliu/tsframe/internal/options"
	"github.com/arloliu/tsframe/timeindex"
)

// FromObservations builds a collection from unordered timestamped
// observations.
//
// Observations are routed to partitions by key hash, so all rows of one
// series land on the same partition, then aligned onto idx. Instants of idx
// with no observation are filled with NaN. Observations whose timestamp is
// not an instant of idx are dropped. When several observations carry the
// same key and timestamp, the one latest in obs order wins.
//
// Parameters:
//   - idx: time index to align on
//   - obs: observations in any order
//   - opts: optional settings, e.g. WithPartitions
//
// Returns:
//   - *Collection: lazily grouped and aligned collection
//   - error: errs.ErrNilIndex or an option error
func FromObservations(idx timeindex.Index, obs []Observation, opts ...CollectionOption) (*Collection, error) {
	if idx == nil {
		return nil, errs.ErrNilIndex
	}

	cfg := defaultCollectionConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	d, err := dataset.FromSlice(slices.Clone(obs), cfg.partitions)
	if err != nil {
		return nil, err
	}

	return groupObservations(idx, d, cfg.partitions)
}

// FromObservationDataset builds a collection from an existing observation
// dataset, with the same grouping, alignment and duplicate semantics as
// FromObservations. Within a source partition, later observations win over
// earlier ones; across partitions, the higher partition wins.
//
// The result defaults to d's partition count; override with WithPartitions.
//
// Returns:
//   - *Collection: lazily grouped and aligned collection
//   - error: errs.ErrNilIndex or an option error
func FromObservationDataset(idx timeindex.Index, d *dataset.Dataset[Observation], opts ...CollectionOption) (*Collection, error) {
	if idx == nil {
		return nil, errs.ErrNilIndex
	}

	cfg := collectionConfig{partitions: d.NumPartitions()}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return groupObservations(idx, d, cfg.partitions)
}

// groupObservations routes observations to partitions by key hash, sorts
// each partition by (key, timestamp) and folds every key run into one
// aligned series. The stable shuffle order makes the fold deterministic:
// duplicates resolve to the last observation in source order.
func groupObservations(idx timeindex.Index, d *dataset.Dataset[Observation], partitions int) (*Collection, error) {
	shuffled, err := dataset.Shuffle(d, dataset.ShuffleConfig[Observation]{
		NumPartitions: partitions,
		Assign:        func(o Observation) int { return hash.Partition(o.Key, partitions) },
		Compare: func(a, b Observation) int {
			if diff := cmp.Compare(a.Key, b.Key); diff != 0 {
				return diff
			}

			return cmp.Compare(a.Ts, b.Ts)
		},
	})
	if err != nil {
		return nil, err
	}

	size := idx.Size()
	grouped := dataset.MapPartitions(shuffled, func(_ int, obs []Observation) ([]Series, error) {
		var series []Series
		for start := 0; start < len(obs); {
			end := start
			for end < len(obs) && obs[end].Key == obs[start].Key {
				end++
			}

			data := nanVector(size)
			for _, o := range obs[start:end] {
				if loc, ok := idx.Loc(o.Ts); ok {
					data[loc] = o.Value
				}
			}

			series = append(series, Series{Key: obs[start].Key, Data: data})
			start = end
		}

		return series, nil
	})

	return fromDataset(idx, grouped), nil
}

func nanVector(size int) []float64 {
	v := make([]float64, size)
	for i := range v {
		v[i] = math.NaN()
	}

	return v
}
