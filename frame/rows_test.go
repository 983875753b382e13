package frame

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsframe/dataset"
	"github.com/arloliu/tsframe/errs"
)

func TestFromObservations(t *testing.T) {
	nan := math.NaN()
	idx := mustUniform(t, 3)

	t.Run("GroupsAndAligns", func(t *testing.T) {
		obs := []Observation{
			{Ts: microsAt(2), Key: "a", Value: 3},
			{Ts: microsAt(1), Key: "b", Value: 5},
			{Ts: microsAt(0), Key: "a", Value: 1},
		}

		c, err := FromObservations(idx, obs)
		require.NoError(t, err)
		require.Equal(t, idx, c.Index())

		got := collectMap(t, c)
		require.Len(t, got, 2)
		requireVector(t, []float64{1, nan, 3}, got["a"])
		requireVector(t, []float64{nan, 5, nan}, got["b"])
	})

	t.Run("DropsOffGridTimestamps", func(t *testing.T) {
		obs := []Observation{
			{Ts: microsAt(0), Key: "a", Value: 1},
			{Ts: microsAt(1) + 1, Key: "a", Value: 99},
			{Ts: microsAt(0) - 1, Key: "ghost", Value: 42},
		}

		c, err := FromObservations(idx, obs)
		require.NoError(t, err)

		got := collectMap(t, c)
		requireVector(t, []float64{1, nan, nan}, got["a"])
		// A key seen only off-grid still yields a series, fully unobserved.
		requireVector(t, []float64{nan, nan, nan}, got["ghost"])
	})

	t.Run("LastWriteWins", func(t *testing.T) {
		obs := []Observation{
			{Ts: microsAt(1), Key: "a", Value: 1},
			{Ts: microsAt(1), Key: "a", Value: 99},
		}

		c, err := FromObservations(idx, obs)
		require.NoError(t, err)

		got := collectMap(t, c)
		requireVector(t, []float64{nan, 99, nan}, got["a"])
	})

	t.Run("NilIndex", func(t *testing.T) {
		_, err := FromObservations(nil, nil)
		require.ErrorIs(t, err, errs.ErrNilIndex)
	})

	t.Run("InvalidPartitions", func(t *testing.T) {
		_, err := FromObservations(idx, nil, WithPartitions(-1))
		require.ErrorIs(t, err, errs.ErrInvalidPartitionCount)
	})

	t.Run("NoObservations", func(t *testing.T) {
		c, err := FromObservations(idx, nil)
		require.NoError(t, err)

		count, err := c.Count(context.Background())
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func TestFromObservations_ManyKeysAcrossPartitions(t *testing.T) {
	idx := mustUniform(t, 4)

	keys := []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7"}
	var obs []Observation
	for ki, key := range keys {
		for loc := range 4 {
			obs = append(obs, Observation{Ts: microsAt(loc), Key: key, Value: float64(ki*10 + loc)})
		}
	}

	c, err := FromObservations(idx, obs, WithPartitions(3))
	require.NoError(t, err)
	require.Equal(t, 3, c.NumPartitions())

	got := collectMap(t, c)
	require.Len(t, got, len(keys))
	for ki, key := range keys {
		base := float64(ki * 10)
		requireVector(t, []float64{base, base + 1, base + 2, base + 3}, got[key])
	}
}

func TestFromObservationDataset(t *testing.T) {
	nan := math.NaN()
	idx := mustUniform(t, 2)

	t.Run("HigherPartitionWinsDuplicates", func(t *testing.T) {
		parts := [][]Observation{
			{{Ts: microsAt(0), Key: "a", Value: 1}},
			{{Ts: microsAt(0), Key: "a", Value: 2}},
		}
		d := dataset.FromPartitions(parts)

		c, err := FromObservationDataset(idx, d)
		require.NoError(t, err)
		require.Equal(t, 2, c.NumPartitions())

		got := collectMap(t, c)
		requireVector(t, []float64{2, nan}, got["a"])
	})

	t.Run("OverridePartitions", func(t *testing.T) {
		d := dataset.FromPartitions([][]Observation{
			{{Ts: microsAt(0), Key: "a", Value: 1}},
		})

		c, err := FromObservationDataset(idx, d, WithPartitions(4))
		require.NoError(t, err)
		require.Equal(t, 4, c.NumPartitions())
	})

	t.Run("NilIndex", func(t *testing.T) {
		d := dataset.FromPartitions([][]Observation{})
		_, err := FromObservationDataset(nil, d)
		require.ErrorIs(t, err, errs.ErrNilIndex)
	})
}
