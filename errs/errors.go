// Package errs defines the sentinel errors shared across tsframe packages.
//
// All errors are wrapped with fmt.Errorf("%w: ...") at call sites, so callers
// can match them with errors.Is regardless of the added context.
package errs

import "errors"

// Time index errors.
var (
	// ErrInvalidTimeStep indicates a uniform index was constructed with a
	// non-positive step.
	ErrInvalidTimeStep = errors.New("invalid time step")

	// ErrUnorderedTimestamps indicates an irregular index was constructed from
	// timestamps that are not strictly increasing.
	ErrUnorderedTimestamps = errors.New("timestamps not strictly increasing")

	// ErrInvalidRange indicates a slice request with an inverted or
	// out-of-bounds range.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidIndexEncoding indicates an encoded time index string that
	// cannot be parsed.
	ErrInvalidIndexEncoding = errors.New("invalid index encoding")

	// ErrNonUniformIndex indicates an operation that requires a uniform time
	// index was applied to an irregular one.
	ErrNonUniformIndex = errors.New("index is not uniform")

	// ErrNilIndex indicates a collection operation received a nil time
	// index.
	ErrNilIndex = errors.New("nil time index")
)

// Collection and dataset errors.
var (
	// ErrLengthMismatch indicates a series vector whose length differs from
	// the size of the time index it is bound to.
	ErrLengthMismatch = errors.New("vector length mismatch")

	// ErrInvalidPartitionCount indicates a non-positive partition count.
	ErrInvalidPartitionCount = errors.New("invalid partition count")

	// ErrPartitionOutOfRange indicates a partition assignment outside
	// [0, numPartitions).
	ErrPartitionOutOfRange = errors.New("partition out of range")

	// ErrInvalidChunkSize indicates a non-positive transpose chunk size.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrIncompleteInstant indicates the transpose reassembly received a torn
	// fragment group: fewer fragments for one instant than the calibrated
	// fragments-per-instant count.
	ErrIncompleteInstant = errors.New("incomplete instant")

	// ErrInvalidLag indicates a non-positive lag passed to a lagged
	// transform.
	ErrInvalidLag = errors.New("invalid lag")
)

// Interchange and persistence errors.
var (
	// ErrInvalidKey indicates a series key that cannot be represented in the
	// target format, e.g. a key containing the flat-file delimiter.
	ErrInvalidKey = errors.New("invalid series key")

	// ErrBufferTooShort indicates a raw binary buffer that ends before the
	// record length it declares.
	ErrBufferTooShort = errors.New("buffer too short")

	// ErrCollectionNotFound indicates a load for a collection name that was
	// never saved.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidCompressionType indicates an unrecognized compression type.
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
