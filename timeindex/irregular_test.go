package timeindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsframe/errs"
)

func mustIrregular(t *testing.T, ts ...int64) Irregular {
	t.Helper()
	idx, err := NewIrregularMicros(ts)
	require.NoError(t, err)

	return idx
}

func TestNewIrregular(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		idx := mustIrregular(t, 100, 250, 900)
		require.Equal(t, 3, idx.Size())
		require.False(t, idx.IsUniform())
	})

	t.Run("FromTimes", func(t *testing.T) {
		base := time.Date(2015, 8, 4, 0, 0, 0, 0, time.UTC)
		idx, err := NewIrregular([]time.Time{base, base.Add(time.Second), base.Add(time.Hour)})
		require.NoError(t, err)
		require.Equal(t, 3, idx.Size())
		require.Equal(t, base, idx.TimeAt(0))
		require.Equal(t, base.Add(time.Hour), idx.TimeAt(2))
	})

	t.Run("Unordered", func(t *testing.T) {
		_, err := NewIrregularMicros([]int64{100, 50, 900})
		require.ErrorIs(t, err, errs.ErrUnorderedTimestamps)
	})

	t.Run("Duplicates", func(t *testing.T) {
		_, err := NewIrregularMicros([]int64{100, 100, 900})
		require.ErrorIs(t, err, errs.ErrUnorderedTimestamps)
	})

	t.Run("Empty", func(t *testing.T) {
		idx, err := NewIrregularMicros(nil)
		require.NoError(t, err)
		require.Equal(t, 0, idx.Size())
	})

	t.Run("CopiesInput", func(t *testing.T) {
		src := []int64{100, 200, 300}
		idx, err := NewIrregularMicros(src)
		require.NoError(t, err)

		src[1] = 999
		require.Equal(t, int64(200), idx.At(1))
	})
}

func TestIrregular_Loc(t *testing.T) {
	idx := mustIrregular(t, 100, 250, 900, 1000)

	t.Run("Present", func(t *testing.T) {
		for loc := range idx.Size() {
			got, ok := idx.Loc(idx.At(loc))
			require.True(t, ok)
			require.Equal(t, loc, got)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		for _, ts := range []int64{0, 101, 500, 2000} {
			_, ok := idx.Loc(ts)
			require.False(t, ok)
		}
	})
}

func TestIrregular_LowerBound(t *testing.T) {
	idx := mustIrregular(t, 100, 250, 900)

	tests := []struct {
		name string
		ts   int64
		want int
	}{
		{"before first", 50, 0},
		{"at first", 100, 0},
		{"between", 101, 1},
		{"at middle", 250, 1},
		{"at last", 900, 2},
		{"past end", 901, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, idx.LowerBound(tt.ts))
		})
	}
}

func TestIrregular_All(t *testing.T) {
	idx := mustIrregular(t, 100, 250, 900)

	var instants []int64
	for loc, ts := range idx.All() {
		require.Equal(t, len(instants), loc)
		instants = append(instants, ts)
	}
	require.Equal(t, []int64{100, 250, 900}, instants)
}

func TestIrregular_Slice(t *testing.T) {
	idx := mustIrregular(t, 100, 250, 900, 1000, 5000)

	t.Run("InclusiveBothEnds", func(t *testing.T) {
		sub, err := idx.Slice(250, 1000)
		require.NoError(t, err)
		require.Equal(t, 3, sub.Size())
		require.Equal(t, int64(250), sub.At(0))
		require.Equal(t, int64(1000), sub.At(2))
	})

	t.Run("OffIndexBounds", func(t *testing.T) {
		sub, err := idx.Slice(101, 999)
		require.NoError(t, err)
		require.Equal(t, 2, sub.Size())
		require.Equal(t, int64(250), sub.At(0))
		require.Equal(t, int64(900), sub.At(1))
	})

	t.Run("EmptyResult", func(t *testing.T) {
		sub, err := idx.Slice(1001, 4999)
		require.NoError(t, err)
		require.Equal(t, 0, sub.Size())
	})

	t.Run("InvertedRange", func(t *testing.T) {
		_, err := idx.Slice(900, 250)
		require.ErrorIs(t, err, errs.ErrInvalidRange)
	})
}

func TestIrregular_SliceLoc(t *testing.T) {
	idx := mustIrregular(t, 100, 250, 900, 1000)

	sub, err := idx.SliceLoc(1, 3)
	require.NoError(t, err)
	require.Equal(t, 2, sub.Size())
	require.Equal(t, int64(250), sub.At(0))
	require.Equal(t, int64(900), sub.At(1))

	_, err = idx.SliceLoc(2, 5)
	require.ErrorIs(t, err, errs.ErrInvalidRange)
}

func TestIrregular_EncodeParse(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		idx := mustIrregular(t, 100, 250, 900)
		require.Equal(t, "irregular,100,250,900", idx.Encode())

		parsed, err := Parse(idx.Encode())
		require.NoError(t, err)
		require.Equal(t, idx, parsed)
	})

	t.Run("EmptyRoundTrip", func(t *testing.T) {
		idx := mustIrregular(t)
		require.Equal(t, "irregular", idx.Encode())

		parsed, err := Parse(idx.Encode())
		require.NoError(t, err)
		require.Equal(t, 0, parsed.Size())
		require.False(t, parsed.IsUniform())
	})

	t.Run("NegativeInstants", func(t *testing.T) {
		idx := mustIrregular(t, -500, -100, 0, 100)
		parsed, err := Parse(idx.Encode())
		require.NoError(t, err)
		require.Equal(t, idx, parsed)
	})
}
