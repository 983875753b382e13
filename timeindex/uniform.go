package timeindex

import (
	"fmt"
	"iter"
	"time"

	"github.com/arloliu/tsframe/errs"
)

// Uniform is an evenly spaced index described by a start instant, a positive
// step, and a count. Lookups are O(1) arithmetic.
//
// The zero value is an empty index starting at the epoch.
type Uniform struct {
	startUs int64
	stepUs  int64
	count   int
}

var _ Index = Uniform{}

// NewUniform creates a uniform index of count instants spaced step apart,
// beginning at start.
//
// The step must be at least one microsecond; sub-microsecond durations
// truncate to zero and are rejected with errs.ErrInvalidTimeStep.
func NewUniform(start time.Time, step time.Duration, count int) (Uniform, error) {
	return NewUniformMicros(start.UnixMicro(), step.Microseconds(), count)
}

// NewUniformMicros creates a uniform index from microsecond values.
func NewUniformMicros(startUs, stepUs int64, count int) (Uniform, error) {
	if stepUs <= 0 {
		return Uniform{}, fmt.Errorf("%w: step %dus", errs.ErrInvalidTimeStep, stepUs)
	}
	if count < 0 {
		return Uniform{}, fmt.Errorf("%w: negative count %d", errs.ErrInvalidRange, count)
	}

	return Uniform{startUs: startUs, stepUs: stepUs, count: count}, nil
}

// Start returns the first instant of the index. For an empty index it is the
// construction start.
func (u Uniform) Start() time.Time {
	return time.UnixMicro(u.startUs).UTC()
}

// Step returns the spacing between adjacent instants.
func (u Uniform) Step() time.Duration {
	return time.Duration(u.stepUs) * time.Microsecond
}

func (u Uniform) Size() int {
	return u.count
}

func (u Uniform) At(loc int) int64 {
	return u.startUs + int64(loc)*u.stepUs
}

func (u Uniform) TimeAt(loc int) time.Time {
	return time.UnixMicro(u.At(loc)).UTC()
}

func (u Uniform) Loc(ts int64) (int, bool) {
	if u.count == 0 {
		return 0, false
	}

	delta := ts - u.startUs
	if delta < 0 || delta%u.stepUs != 0 {
		return 0, false
	}

	loc := delta / u.stepUs
	if loc >= int64(u.count) {
		return 0, false
	}

	return int(loc), true
}

func (u Uniform) LowerBound(ts int64) int {
	if u.count == 0 || ts <= u.startUs {
		return 0
	}

	delta := ts - u.startUs
	lb := (delta + u.stepUs - 1) / u.stepUs
	if lb > int64(u.count) {
		return u.count
	}

	return int(lb)
}

func (u Uniform) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		for loc := range u.count {
			if !yield(loc, u.At(loc)) {
				return
			}
		}
	}
}

func (u Uniform) AllTimes() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for loc := range u.count {
			if !yield(u.TimeAt(loc)) {
				return
			}
		}
	}
}

// Slice returns the uniform sub-index of instants within [from, to].
func (u Uniform) Slice(from, to int64) (Index, error) {
	if from > to {
		return nil, fmt.Errorf("%w: from %d after to %d", errs.ErrInvalidRange, from, to)
	}

	return u.SliceLoc(u.LowerBound(from), u.upperBound(to))
}

// SliceLoc returns the uniform sub-index over offsets [i, j).
func (u Uniform) SliceLoc(i, j int) (Index, error) {
	if i < 0 || j < i || j > u.count {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", errs.ErrInvalidRange, i, j, u.count)
	}

	return Uniform{startUs: u.At(i), stepUs: u.stepUs, count: j - i}, nil
}

// upperBound returns the smallest offset whose instant is > ts.
func (u Uniform) upperBound(ts int64) int {
	if u.count == 0 || ts < u.startUs {
		return 0
	}

	ub := (ts-u.startUs)/u.stepUs + 1
	if ub > int64(u.count) {
		return u.count
	}

	return int(ub)
}

func (u Uniform) IsUniform() bool {
	return true
}

func (u Uniform) Encode() string {
	return fmt.Sprintf("%s,%d,%d,%d", uniformPrefix, u.startUs, u.stepUs, u.count)
}

func (u Uniform) String() string {
	return fmt.Sprintf("uniform[start=%s step=%s count=%d]", u.Start().Format(time.RFC3339Nano), u.Step(), u.count)
}
