package frame

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
)

type reassembleState int

const (
	// awaitingFirstInstant buffers fragments until the first timestamp
	// change reveals how many fragments make up one instant.
	awaitingFirstInstant reassembleState = iota
	// reassembling consumes exactly fragsPerInstant fragments per instant.
	reassembling
)

// reassembler folds a fragment stream sorted by (timestamp, chunk) back into
// whole instants.
//
// How many fragments make up one instant depends on how many chunks the
// source partitions emitted, which the reassembly side does not know up
// front. The first instant calibrates it: fragments are buffered until the
// timestamp changes, and the buffered count becomes fragsPerInstant. After
// that each group of fragsPerInstant consecutive fragments must share one
// timestamp and concatenate to the calibrated width, otherwise the stream
// lost fragments and reassembly fails with errs.ErrIncompleteInstant.
type reassembler struct {
	state           reassembleState
	fragsPerInstant int
	width           int
	pending         []fragment
	out             []Instant
}

func (r *reassembler) push(f fragment) error {
	switch r.state {
	case awaitingFirstInstant:
		if len(r.pending) > 0 && f.ts != r.pending[0].ts {
			r.fragsPerInstant = len(r.pending)
			if err := r.emit(); err != nil {
				return err
			}
			r.state = reassembling

			return r.push(f)
		}
		r.pending = append(r.pending, f)

	case reassembling:
		if len(r.pending) > 0 && f.ts != r.pending[0].ts {
			return fmt.Errorf("%w: instant %d has %d of %d fragments",
				errs.ErrIncompleteInstant, r.pending[0].ts, len(r.pending), r.fragsPerInstant)
		}
		r.pending = append(r.pending, f)
		if len(r.pending) == r.fragsPerInstant {
			return r.emit()
		}
	}

	return nil
}

// emit concatenates the pending fragments into one instant. The fragments
// arrive chunk-ordered, so concatenation order matches key enumeration
// order.
func (r *reassembler) emit() error {
	width := 0
	for _, f := range r.pending {
		width += len(f.values)
	}

	if r.width == 0 {
		r.width = width
	} else if width != r.width {
		return fmt.Errorf("%w: instant %d has %d of %d values",
			errs.ErrIncompleteInstant, r.pending[0].ts, width, r.width)
	}

	values := make([]float64, 0, width)
	for _, f := range r.pending {
		values = append(values, f.values...)
	}

	r.out = append(r.out, Instant{Ts: r.pending[0].ts, Values: values})
	r.pending = r.pending[:0]

	return nil
}

func (r *reassembler) finish() ([]Instant, error) {
	if len(r.pending) == 0 {
		return r.out, nil
	}

	if r.state == reassembling {
		return nil, fmt.Errorf("%w: instant %d has %d of %d fragments",
			errs.ErrIncompleteInstant, r.pending[0].ts, len(r.pending), r.fragsPerInstant)
	}

	// The whole stream held a single instant; its fragment count is the
	// calibration.
	r.fragsPerInstant = len(r.pending)
	if err := r.emit(); err != nil {
		return nil, err
	}

	return r.out, nil
}

// reassemble folds fragments sorted by (timestamp, chunk) into instants.
func reassemble(frags []fragment) ([]Instant, error) {
	var r reassembler
	for _, f := range frags {
		if err := r.push(f); err != nil {
			return nil, err
		}
	}

	return r.finish()
}
