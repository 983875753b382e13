// Package endian selects the byte order of binary payloads.
//
// EndianEngine merges the standard library's ByteOrder and AppendByteOrder
// interfaces so encoders can append multi-byte values without a scratch
// buffer and decoders can read them back with the same engine. Both
// binary.BigEndian and binary.LittleEndian satisfy the interface.
//
// The raw binary bridge defaults to GetBigEndianEngine, matching JVM
// runtimes which serialize multi-byte values big-endian:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint64(buf, math.Float64bits(v))
//	bits := engine.Uint64(buf[off:])
//
// Engines are stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine reads, writes and appends fixed-width integers in one byte
// order.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine, the interchange default.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
