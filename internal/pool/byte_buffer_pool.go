package pool

import (
	"io"
	"sync"
)

// Default sizes for the two pooled buffer classes: per-record buffers used when
// encoding a single series, and file buffers used when assembling a whole
// flat-file or compressed payload.
const (
	RecordBufferDefaultSize  = 1024 * 4        // 4KiB
	RecordBufferMaxThreshold = 1024 * 64       // 64KiB
	FileBufferDefaultSize    = 1024 * 256      // 256KiB
	FileBufferMaxThreshold   = 1024 * 1024 * 4 // 4MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without
// reallocating. If the buffer has sufficient capacity, Grow does nothing.
//
// Small buffers grow by RecordBufferDefaultSize, larger ones by 25% of current
// capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := RecordBufferDefaultSize
	if cap(bb.B) > 4*RecordBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// It implements io.Writer and never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s to the buffer.
func (bb *ByteBuffer) WriteString(s string) {
	bb.B = append(bb.B, s...)
}

// WriteByte appends a single byte to the buffer. The error is always nil.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	// Buffers that grew past the threshold are not retained.
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	recordDefaultPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
	fileDefaultPool   = NewByteBufferPool(FileBufferDefaultSize, FileBufferMaxThreshold)
)

// GetRecordBuffer retrieves a ByteBuffer sized for a single series record.
func GetRecordBuffer() *ByteBuffer {
	return recordDefaultPool.Get()
}

// PutRecordBuffer returns a ByteBuffer to the record pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordDefaultPool.Put(bb)
}

// GetFileBuffer retrieves a ByteBuffer sized for a whole file payload.
func GetFileBuffer() *ByteBuffer {
	return fileDefaultPool.Get()
}

// PutFileBuffer returns a ByteBuffer to the file pool.
func PutFileBuffer(bb *ByteBuffer) {
	fileDefaultPool.Put(bb)
}
