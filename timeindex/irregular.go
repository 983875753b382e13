package timeindex

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"time"

	"github.com/arloliu/tsframe/errs"
)

// Irregular is an index over an explicit strictly increasing sequence of
// instants. Lookups are O(log n) binary searches.
//
// Constructors copy the input, so the index never aliases caller-owned
// memory. Sub-indexes produced by Slice and SliceLoc share the backing array;
// that is safe because the sequence is never mutated after construction.
type Irregular struct {
	ts []int64
}

var _ Index = Irregular{}

// NewIrregular creates an irregular index from the given instants, which must
// be strictly increasing.
func NewIrregular(times []time.Time) (Irregular, error) {
	ts := make([]int64, len(times))
	for i, t := range times {
		ts[i] = t.UnixMicro()
	}

	return newIrregularOwned(ts)
}

// NewIrregularMicros creates an irregular index from microsecond instants,
// which must be strictly increasing.
func NewIrregularMicros(ts []int64) (Irregular, error) {
	return newIrregularOwned(slices.Clone(ts))
}

func newIrregularOwned(ts []int64) (Irregular, error) {
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return Irregular{}, fmt.Errorf("%w: %d followed by %d at offset %d",
				errs.ErrUnorderedTimestamps, ts[i-1], ts[i], i)
		}
	}

	return Irregular{ts: ts}, nil
}

func (r Irregular) Size() int {
	return len(r.ts)
}

func (r Irregular) At(loc int) int64 {
	return r.ts[loc]
}

func (r Irregular) TimeAt(loc int) time.Time {
	return time.UnixMicro(r.ts[loc]).UTC()
}

func (r Irregular) Loc(ts int64) (int, bool) {
	return slices.BinarySearch(r.ts, ts)
}

func (r Irregular) LowerBound(ts int64) int {
	loc, _ := slices.BinarySearch(r.ts, ts)
	return loc
}

func (r Irregular) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		for loc, ts := range r.ts {
			if !yield(loc, ts) {
				return
			}
		}
	}
}

func (r Irregular) AllTimes() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for _, ts := range r.ts {
			if !yield(time.UnixMicro(ts).UTC()) {
				return
			}
		}
	}
}

// Slice returns the irregular sub-index of instants within [from, to].
func (r Irregular) Slice(from, to int64) (Index, error) {
	if from > to {
		return nil, fmt.Errorf("%w: from %d after to %d", errs.ErrInvalidRange, from, to)
	}

	i := r.LowerBound(from)
	j, found := slices.BinarySearch(r.ts, to)
	if found {
		j++
	}

	return r.SliceLoc(i, j)
}

// SliceLoc returns the irregular sub-index over offsets [i, j).
func (r Irregular) SliceLoc(i, j int) (Index, error) {
	if i < 0 || j < i || j > len(r.ts) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", errs.ErrInvalidRange, i, j, len(r.ts))
	}

	return Irregular{ts: r.ts[i:j]}, nil
}

func (r Irregular) IsUniform() bool {
	return false
}

func (r Irregular) Encode() string {
	buf := make([]byte, 0, len(irregularPrefix)+20*len(r.ts))
	buf = append(buf, irregularPrefix...)
	for _, ts := range r.ts {
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, ts, 10)
	}

	return string(buf)
}

func (r Irregular) String() string {
	if len(r.ts) == 0 {
		return "irregular[empty]"
	}

	return fmt.Sprintf("irregular[first=%s last=%s count=%d]",
		r.TimeAt(0).Format(time.RFC3339Nano), r.TimeAt(len(r.ts)-1).Format(time.RFC3339Nano), len(r.ts))
}
