package univariate

import (
	"math"
	"slices"
)

// FillValue replaces every NaN with the given value.
func FillValue(v []float64, value float64) []float64 {
	out := slices.Clone(v)
	for i, entry := range out {
		if math.IsNaN(entry) {
			out[i] = value
		}
	}

	return out
}

// FillPrevious carries the most recent observation forward over NaN gaps.
// Leading NaNs have no predecessor and stay NaN.
func FillPrevious(v []float64) []float64 {
	out := slices.Clone(v)
	prev := math.NaN()
	for i, entry := range out {
		if math.IsNaN(entry) {
			out[i] = prev
		} else {
			prev = entry
		}
	}

	return out
}

// FillNext carries the next observation backward over NaN gaps. Trailing
// NaNs have no successor and stay NaN.
func FillNext(v []float64) []float64 {
	out := slices.Clone(v)
	next := math.NaN()
	for i := len(out) - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			out[i] = next
		} else {
			next = out[i]
		}
	}

	return out
}

// FillLinear interpolates interior NaN runs linearly between the observed
// neighbors on each side. Interpolation is positional, one equal increment
// per offset, so it assumes an evenly spaced index. Runs touching either
// edge have only one neighbor and stay NaN.
func FillLinear(v []float64) []float64 {
	out := slices.Clone(v)

	i := 0
	for i < len(out) {
		if !math.IsNaN(out[i]) {
			i++
			continue
		}

		runStart := i
		for i < len(out) && math.IsNaN(out[i]) {
			i++
		}
		if runStart == 0 || i == len(out) {
			continue
		}

		before := out[runStart-1]
		after := out[i]
		step := (after - before) / float64(i-runStart+1)
		for j := runStart; j < i; j++ {
			out[j] = out[j-1] + step
		}
	}

	return out
}
