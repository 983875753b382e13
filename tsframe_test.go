package tsframe

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/rawbin"
	"github.com/arloliu/tsframe/store"
	"github.com/arloliu/tsframe/univariate"
)

func TestUniformIndex(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	idx, err := UniformIndex(start, time.Minute, 60)
	require.NoError(t, err)
	require.Equal(t, 60, idx.Size())
	require.True(t, idx.IsUniform())
	require.Equal(t, start.UnixMicro(), idx.At(0))

	_, err = UniformIndex(start, 0, 60)
	require.ErrorIs(t, err, errs.ErrInvalidTimeStep)
}

func TestIrregularIndex(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	idx, err := IrregularIndex([]time.Time{base, base.Add(time.Second), base.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 3, idx.Size())
	require.False(t, idx.IsUniform())

	_, err = IrregularIndex([]time.Time{base, base})
	require.ErrorIs(t, err, errs.ErrUnorderedTimestamps)
}

func TestParseIndex_RoundTrip(t *testing.T) {
	idx, err := UniformIndex(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Second, 10)
	require.NoError(t, err)

	parsed, err := ParseIndex(idx.Encode())
	require.NoError(t, err)
	require.Equal(t, idx.Encode(), parsed.Encode())
}

func TestKeyID(t *testing.T) {
	require.Equal(t, KeyID("cpu.user"), KeyID("cpu.user"))
	require.NotEqual(t, KeyID("cpu.user"), KeyID("cpu.sys"))
}

// TestObservationPipeline drives the common end-to-end path through the
// facade: ingest, fill, transpose, persist, reload.
func TestObservationPipeline(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	idx, err := UniformIndex(start, time.Minute, 4)
	require.NoError(t, err)

	obs := []Observation{
		{Ts: idx.At(0), Key: "cpu", Value: 10},
		{Ts: idx.At(3), Key: "cpu", Value: 40},
		{Ts: idx.At(1), Key: "mem", Value: 2},
		{Ts: idx.At(2), Key: "mem", Value: 3},
	}

	c, err := FromObservations(idx, obs, frame.WithPartitions(2))
	require.NoError(t, err)

	filled := c.MapSeries(univariate.FillLinear)

	instants, err := filled.Instants(ctx)
	require.NoError(t, err)
	require.Len(t, instants, 4)

	keys, err := filled.Keys(ctx)
	require.NoError(t, err)

	byKey := make(map[string][]float64, len(keys))
	for k, key := range keys {
		vec := make([]float64, len(instants))
		for i, in := range instants {
			vec[i] = in.Values[k]
		}
		byKey[key] = vec
	}

	// cpu interpolates across the interior gap; mem keeps its edge gaps.
	require.Equal(t, []float64{10, 20, 30, 40}, byKey["cpu"])
	require.True(t, math.IsNaN(byKey["mem"][0]))
	require.Equal(t, 2.0, byKey["mem"][1])
	require.Equal(t, 3.0, byKey["mem"][2])
	require.True(t, math.IsNaN(byKey["mem"][3]))

	db, err := OpenStore("", store.WithInMemory())
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	require.NoError(t, db.Save(ctx, "host.metrics", filled))

	loaded, err := db.Load("host.metrics")
	require.NoError(t, err)

	loadedKeys, err := loaded.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, keys, loadedKeys)
}

func TestFromBuffers_Facade(t *testing.T) {
	idx, err := UniformIndex(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Minute, 2)
	require.NoError(t, err)

	buf, err := rawbin.EncodeAll([]rawbin.Record{{Key: "a", Values: []float64{1, 2}}})
	require.NoError(t, err)

	c, err := FromBuffers(idx, [][]byte{buf})
	require.NoError(t, err)

	s, ok, err := c.Get(context.Background(), "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{1, 2}, s.Data)
}
