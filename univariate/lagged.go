package univariate

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
)

// Differences returns the lagged differences v[i+lag] - v[i].
//
// The result holds len(v)-lag entries; a lag reaching past the vector yields
// an empty result. NaN operands propagate NaN. The lag must be positive.
func Differences(v []float64, lag int) ([]float64, error) {
	return lagged(v, lag, func(later, earlier float64) float64 {
		return later - earlier
	})
}

// Quotients returns the lagged quotients v[i+lag] / v[i].
//
// The result holds len(v)-lag entries; a lag reaching past the vector yields
// an empty result. NaN operands propagate NaN. The lag must be positive.
func Quotients(v []float64, lag int) ([]float64, error) {
	return lagged(v, lag, func(later, earlier float64) float64 {
		return later / earlier
	})
}

func lagged(v []float64, lag int, combine func(later, earlier float64) float64) ([]float64, error) {
	if lag <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidLag, lag)
	}

	if lag >= len(v) {
		return []float64{}, nil
	}

	out := make([]float64, len(v)-lag)
	for i := range out {
		out[i] = combine(v[i+lag], v[i])
	}

	return out, nil
}
