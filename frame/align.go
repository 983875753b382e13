package frame

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/timeindex"
)

// Align projects a vector observed on the src index onto the dst index.
//
// For every instant of dst that also exists in src, the aligned vector
// carries the corresponding src value. Instants of dst that src does not
// cover are filled with fill. Values of src at instants dst does not cover
// are dropped. Align never fails on missing instants, only on a vector whose
// length does not match src.
//
// The result is always a fresh slice of length dst.Size(), even when src and
// dst are identical.
//
// Parameters:
//   - src: index the input vector is aligned on
//   - dst: index to project onto
//   - vec: input vector, one value per instant of src
//   - fill: value used for instants of dst absent from src
//
// Returns:
//   - []float64: vector of length dst.Size() aligned on dst
//   - error: errs.ErrLengthMismatch if len(vec) != src.Size()
func Align(src, dst timeindex.Index, vec []float64, fill float64) ([]float64, error) {
	if len(vec) != src.Size() {
		return nil, fmt.Errorf("%w: vector has %d values, index has %d instants",
			errs.ErrLengthMismatch, len(vec), src.Size())
	}

	out := make([]float64, dst.Size())
	for j, ts := range dst.All() {
		if i, ok := src.Loc(ts); ok {
			out[j] = vec[i]
		} else {
			out[j] = fill
		}
	}

	return out, nil
}
