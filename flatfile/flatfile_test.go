package flatfile

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/format"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/timeindex"
)

const (
	testStartUs = int64(1_700_000_000_000_000)
	testStepUs  = int64(60_000_000)
)

func testSeries() []frame.Series {
	return []frame.Series{
		{Key: "cpu.user", Data: []float64{1, 2.5, -3.25}},
		{Key: "gaps", Data: []float64{math.NaN(), math.Inf(1), math.Inf(-1)}},
		{Key: "", Data: []float64{0, -0.5, 1e300}},
	}
}

func requireSeriesEqual(t *testing.T, want, got []frame.Series) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Key, got[i].Key, "series %d", i)
		require.Len(t, got[i].Data, len(want[i].Data), "series %d", i)
		for j := range want[i].Data {
			if math.IsNaN(want[i].Data[j]) {
				require.True(t, math.IsNaN(got[i].Data[j]), "series %d value %d", i, j)
				continue
			}
			require.Equal(t, want[i].Data[j], got[i].Data[j], "series %d value %d", i, j)
		}
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	series := testSeries()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, series))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	requireSeriesEqual(t, series, got)
}

func TestWrite_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []frame.Series{
		{Key: "a", Data: []float64{1, 2.5, math.NaN()}},
		{Key: "b", Data: nil},
	})
	require.NoError(t, err)
	require.Equal(t, "a,1,2.5,NaN\nb\n", buf.String())
}

func TestWrite_InvalidKey(t *testing.T) {
	for _, key := range []string{"a,b", "a\nb", "a\rb"} {
		var buf bytes.Buffer
		err := Write(&buf, []frame.Series{{Key: key}})
		require.ErrorIs(t, err, errs.ErrInvalidKey)
	}
}

func TestWriteRead_Compressed(t *testing.T) {
	series := testSeries()

	compressions := map[string]format.CompressionType{
		"None": format.CompressionNone,
		"Zstd": format.CompressionZstd,
		"S2":   format.CompressionS2,
		"LZ4":  format.CompressionLZ4,
	}

	for name, compression := range compressions {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, series, WithCompression(compression)))

			got, err := Read(bytes.NewReader(buf.Bytes()), WithCompression(compression))
			require.NoError(t, err)
			requireSeriesEqual(t, series, got)
		})
	}
}

func TestRead_ParseErrors(t *testing.T) {
	t.Run("BadValue", func(t *testing.T) {
		_, err := Read(strings.NewReader("a,1\nb,oops\n"))
		require.Error(t, err)
		require.ErrorContains(t, err, "line 2")
	})

	t.Run("BlankLinesAndCRLF", func(t *testing.T) {
		got, err := Read(strings.NewReader("a,1\r\n\r\n\nb,2\n"))
		require.NoError(t, err)
		requireSeriesEqual(t, []frame.Series{
			{Key: "a", Data: []float64{1}},
			{Key: "b", Data: []float64{2}},
		}, got)
	})

	t.Run("MissingFinalNewline", func(t *testing.T) {
		got, err := Read(strings.NewReader("a,1\nb,2"))
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := Read(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestIndexSidecarRoundTrip(t *testing.T) {
	t.Run("Uniform", func(t *testing.T) {
		idx, err := timeindex.NewUniformMicros(testStartUs, testStepUs, 5)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteIndex(&buf, idx))
		require.True(t, strings.HasSuffix(buf.String(), "\n"))

		got, err := ReadIndex(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, idx.Encode(), got.Encode())
	})

	t.Run("Irregular", func(t *testing.T) {
		idx, err := timeindex.NewIrregularMicros([]int64{testStartUs, testStartUs + 7, testStartUs + 100})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteIndex(&buf, idx))

		got, err := ReadIndex(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, idx.Encode(), got.Encode())
	})

	t.Run("NilIndex", func(t *testing.T) {
		var buf bytes.Buffer
		require.ErrorIs(t, WriteIndex(&buf, nil), errs.ErrNilIndex)
	})
}

func TestWriteFileReadFile(t *testing.T) {
	idx, err := timeindex.NewUniformMicros(testStartUs, testStepUs, 3)
	require.NoError(t, err)
	series := testSeries()

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.csv")
		require.NoError(t, WriteFile(path, idx, series))

		_, err := os.Stat(path + IndexSuffix)
		require.NoError(t, err, "index sidecar must exist")

		got, gotIdx, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, idx.Encode(), gotIdx.Encode())
		requireSeriesEqual(t, series, got)
	})

	t.Run("CompressedRoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.csv.zst")
		require.NoError(t, WriteFile(path, idx, series, WithCompression(format.CompressionZstd)))

		got, _, err := ReadFile(path, WithCompression(format.CompressionZstd))
		require.NoError(t, err)
		requireSeriesEqual(t, series, got)
	})

	t.Run("MissingSidecar", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,1\n"), 0o644))

		_, _, err := ReadFile(path)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("NilIndex", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metrics.csv")
		require.ErrorIs(t, WriteFile(path, nil, series), errs.ErrNilIndex)
	})
}

func TestSaveLoad(t *testing.T) {
	idx, err := timeindex.NewUniformMicros(testStartUs, testStepUs, 2)
	require.NoError(t, err)
	c, err := frame.FromVectors(idx, []string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "collection.csv")
	require.NoError(t, Save(context.Background(), path, c, WithCompression(format.CompressionS2)))

	loaded, err := Load(path, WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.Equal(t, idx.Encode(), loaded.Index().Encode())

	got, err := loaded.Collect(context.Background())
	require.NoError(t, err)
	requireSeriesEqual(t, []frame.Series{
		{Key: "a", Data: []float64{1, 2}},
		{Key: "b", Data: []float64{3, 4}},
	}, got)
}
