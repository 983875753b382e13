package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineByteOrder(t *testing.T) {
	t.Run("LittleEndian", func(t *testing.T) {
		engine := GetLittleEndianEngine()
		require.Implements(t, (*EndianEngine)(nil), engine)
		require.Equal(t, binary.LittleEndian, engine)

		bytes := make([]byte, 2)
		engine.PutUint16(bytes, 0x0102)
		require.Equal(t, byte(0x02), bytes[0], "LSB first")
		require.Equal(t, byte(0x01), bytes[1])
		require.Equal(t, uint16(0x0102), engine.Uint16(bytes))
	})

	t.Run("BigEndian", func(t *testing.T) {
		engine := GetBigEndianEngine()
		require.Implements(t, (*EndianEngine)(nil), engine)
		require.Equal(t, binary.BigEndian, engine)

		bytes := make([]byte, 2)
		engine.PutUint16(bytes, 0x0102)
		require.Equal(t, byte(0x01), bytes[0], "MSB first")
		require.Equal(t, byte(0x02), bytes[1])
		require.Equal(t, uint16(0x0102), engine.Uint16(bytes))
	})
}

func TestEngineRoundTrip(t *testing.T) {
	engines := map[string]EndianEngine{
		"LittleEndian": GetLittleEndianEngine(),
		"BigEndian":    GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			var buf []byte
			buf = engine.AppendUint32(buf, 0x01020304)
			buf = engine.AppendUint64(buf, 0x0102030405060708)
			require.Len(t, buf, 12)
			require.Equal(t, uint32(0x01020304), engine.Uint32(buf[:4]))
			require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf[4:]))
		})
	}

	t.Run("Float64Bits", func(t *testing.T) {
		// Series payloads are float64 vectors, including the NaN sentinel.
		values := []float64{0, 1.5, -273.15, math.NaN(), math.Inf(1)}
		for _, engine := range engines {
			var buf []byte
			for _, v := range values {
				buf = engine.AppendUint64(buf, math.Float64bits(v))
			}
			for i, v := range values {
				got := math.Float64frombits(engine.Uint64(buf[i*8 : i*8+8]))
				if math.IsNaN(v) {
					require.True(t, math.IsNaN(got))
				} else {
					require.Equal(t, v, got)
				}
			}
		}
	})
}

func TestLittleBigRepresentationsDiffer(t *testing.T) {
	little := make([]byte, 8)
	big := make([]byte, 8)
	GetLittleEndianEngine().PutUint64(little, 0x0102030405060708)
	GetBigEndianEngine().PutUint64(big, 0x0102030405060708)
	require.NotEqual(t, little, big)
}
