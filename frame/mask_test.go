package frame

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissingMask(t *testing.T) {
	nan := math.NaN()

	t.Run("UnionOfGaps", func(t *testing.T) {
		c, err := FromVectors(mustUniform(t, 3),
			[]string{"a", "b"},
			[][]float64{{1, nan, 3}, {1, 2, nan}},
			WithPartitions(2))
		require.NoError(t, err)

		mask, err := c.MissingMask(context.Background())
		require.NoError(t, err)
		require.Equal(t, []bool{false, true, true}, mask)
	})

	t.Run("NoSeries", func(t *testing.T) {
		c, err := New(mustUniform(t, 3), nil)
		require.NoError(t, err)

		mask, err := c.MissingMask(context.Background())
		require.NoError(t, err)
		require.Equal(t, []bool{false, false, false}, mask)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		c, err := New(mustIrregular(t), []Series{{Key: "a"}})
		require.NoError(t, err)

		mask, err := c.MissingMask(context.Background())
		require.NoError(t, err)
		require.Empty(t, mask)
	})

	t.Run("FullyObserved", func(t *testing.T) {
		c, err := FromVectors(mustUniform(t, 2), []string{"a"}, [][]float64{{1, 2}})
		require.NoError(t, err)

		mask, err := c.MissingMask(context.Background())
		require.NoError(t, err)
		require.Equal(t, []bool{false, false}, mask)
	})
}

func TestRemoveInstantsWithNaNs(t *testing.T) {
	nan := math.NaN()
	ctx := context.Background()

	t.Run("KeepsFullyObservedInstants", func(t *testing.T) {
		c, err := FromVectors(mustUniform(t, 3),
			[]string{"a", "b"},
			[][]float64{{1, nan, 3}, {1, 2, nan}},
			WithPartitions(2))
		require.NoError(t, err)

		clean, err := c.RemoveInstantsWithNaNs(ctx)
		require.NoError(t, err)

		idx := clean.Index()
		require.False(t, idx.IsUniform())
		require.Equal(t, 1, idx.Size())
		require.Equal(t, microsAt(0), idx.At(0))

		got := collectMap(t, clean)
		requireVector(t, []float64{1}, got["a"])
		requireVector(t, []float64{1}, got["b"])
	})

	t.Run("AllInstantsClean", func(t *testing.T) {
		c, err := FromVectors(mustUniform(t, 3), []string{"a"}, [][]float64{{1, 2, 3}})
		require.NoError(t, err)

		clean, err := c.RemoveInstantsWithNaNs(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, clean.Index().Size())
		require.False(t, clean.Index().IsUniform(), "survivors always form an irregular index")

		got := collectMap(t, clean)
		requireVector(t, []float64{1, 2, 3}, got["a"])
	})

	t.Run("AllInstantsDropped", func(t *testing.T) {
		c, err := FromVectors(mustUniform(t, 2), []string{"a"}, [][]float64{{nan, nan}})
		require.NoError(t, err)

		clean, err := c.RemoveInstantsWithNaNs(ctx)
		require.NoError(t, err)
		require.Zero(t, clean.Index().Size())

		got := collectMap(t, clean)
		require.Empty(t, got["a"])
	})
}
