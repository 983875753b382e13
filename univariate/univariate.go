// Package univariate provides pure transforms over single series vectors.
//
// Vectors use math.NaN() as the missing-observation sentinel, matching the
// frame package. Every function returns a fresh slice and never mutates its
// input, so results can feed Collection.MapSeries directly.
package univariate

import "math"

// FirstObserved returns the offset of the first non-NaN observation, or -1
// when every entry is missing.
func FirstObserved(v []float64) int {
	for i, value := range v {
		if !math.IsNaN(value) {
			return i
		}
	}

	return -1
}

// LastObserved returns the offset of the last non-NaN observation, or -1
// when every entry is missing.
func LastObserved(v []float64) int {
	for i := len(v) - 1; i >= 0; i-- {
		if !math.IsNaN(v[i]) {
			return i
		}
	}

	return -1
}
