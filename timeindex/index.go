// Package timeindex implements the shared time axis of a series collection.
//
// An Index is an immutable, strictly increasing sequence of instants. Two
// implementations cover the data model: Uniform for evenly spaced instants
// described by (start, step, count), and Irregular for an explicit sorted
// sequence. Both are small value types that are cheap to copy and safe for
// concurrent use.
//
// Instants are int64 microseconds since the Unix epoch. time.Time values are
// accepted and returned at construction-level APIs; all internal arithmetic
// and comparisons use the microsecond representation.
//
// # Encoding
//
// Indexes round-trip through a compact string form used by the flat-file
// companion artifact and the store:
//
//	uniform,<startUs>,<stepUs>,<count>
//	irregular,<t0>,<t1>,...
//
// Parse restores either form.
package timeindex

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/tsframe/errs"
)

// Index is an ordered, fixed-size domain of instants.
//
// Offsets (locs) run from 0 to Size()-1. Instants are strictly increasing, so
// every instant appears at most once and lookups are unambiguous.
type Index interface {
	// Size returns the number of instants in the index.
	Size() int

	// At returns the instant at the given offset in microseconds.
	// The caller must ensure loc is in [0, Size()).
	At(loc int) int64

	// TimeAt returns the instant at the given offset as a UTC time.Time.
	// The caller must ensure loc is in [0, Size()).
	TimeAt(loc int) time.Time

	// Loc returns the offset holding the given instant. The second result
	// reports whether the instant is on the index.
	Loc(ts int64) (int, bool)

	// LowerBound returns the smallest offset whose instant is >= ts, or
	// Size() if every instant is earlier. This is the insertion point of ts.
	LowerBound(ts int64) int

	// All returns an iterator over (offset, instant) pairs in ascending
	// order.
	All() iter.Seq2[int, int64]

	// AllTimes returns an iterator over the instants as UTC time.Time values.
	AllTimes() iter.Seq[time.Time]

	// Slice returns the sub-index holding every instant in [from, to], both
	// ends inclusive. from > to is an error; an empty result is not.
	Slice(from, to int64) (Index, error)

	// SliceLoc returns the sub-index over the half-open offset range [i, j).
	// The range must satisfy 0 <= i <= j <= Size().
	SliceLoc(i, j int) (Index, error)

	// IsUniform reports whether the instants are evenly spaced by
	// construction. Operations that need constant-stride semantics, such as
	// the indexed matrix export, require a uniform index.
	IsUniform() bool

	// Encode returns the string form of the index. Parse restores it.
	Encode() string
}

const (
	uniformPrefix   = "uniform"
	irregularPrefix = "irregular"
)

// Parse restores an Index from its Encode form.
//
// Returns errs.ErrInvalidIndexEncoding for malformed input. Well-formed input
// carrying invalid values, such as a non-positive step, returns the
// constructor's error.
func Parse(encoded string) (Index, error) {
	kind, rest, hasFields := strings.Cut(encoded, ",")
	switch kind {
	case uniformPrefix:
		return parseUniform(rest)
	case irregularPrefix:
		// A bare "irregular" is the empty index; "irregular," carries an
		// empty instant field and is malformed.
		if !hasFields {
			return NewIrregularMicros(nil)
		}

		return parseIrregular(rest)
	default:
		return nil, fmt.Errorf("%w: unknown index kind %q", errs.ErrInvalidIndexEncoding, kind)
	}
}

func parseUniform(rest string) (Index, error) {
	fields := strings.Split(rest, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: uniform index needs 3 fields, got %d", errs.ErrInvalidIndexEncoding, len(fields))
	}

	startUs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start %q", errs.ErrInvalidIndexEncoding, fields[0])
	}
	stepUs, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad step %q", errs.ErrInvalidIndexEncoding, fields[1])
	}
	count, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad count %q", errs.ErrInvalidIndexEncoding, fields[2])
	}

	return NewUniformMicros(startUs, stepUs, count)
}

func parseIrregular(rest string) (Index, error) {
	fields := strings.Split(rest, ",")
	ts := make([]int64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad instant %q", errs.ErrInvalidIndexEncoding, field)
		}
		ts[i] = v
	}

	return NewIrregularMicros(ts)
}
