// Package frame provides keyed time series collections aligned on a shared
// time index.
//
// A Collection pairs a timeindex.Index with a lazy dataset of Series values.
// Every series in a collection holds exactly one float64 per index instant,
// with NaN marking a missing observation. Collections are immutable: every
// transform returns a new collection and leaves the receiver untouched, so a
// collection can be shared between goroutines and re-evaluated freely.
//
// Collections can be built from in-memory vectors, from irregular observation
// streams (which are grouped, deduplicated and aligned onto the index), or
// from raw binary buffers produced by the rawbin package. The instant-major
// view produced by InstantDataset and Instants transposes the series-major
// layout into per-instant cross sections without ever gathering the full
// collection onto a single partition.
package frame

import "time"

// Series is one named vector of a collection. Data holds exactly one value
// per instant of the owning collection's time index, with NaN marking gaps.
type Series struct {
	// Key identifies the series within its collection.
	Key string
	// Data holds the observed values in index order.
	Data []float64
}

// Observation is a single timestamped measurement of one series, the row
// format produced by event streams and log scrapes before alignment.
type Observation struct {
	// Ts is the observation timestamp in microseconds since the Unix epoch.
	Ts int64
	// Key identifies the series the observation belongs to.
	Key string
	// Value is the measured value.
	Value float64
}

// Time returns the observation timestamp as a time.Time in UTC.
func (o Observation) Time() time.Time {
	return time.UnixMicro(o.Ts).UTC()
}

// Instant is a cross section of a collection at a single time instant.
// Values holds one entry per series, in the collection's key enumeration
// order.
type Instant struct {
	// Ts is the instant timestamp in microseconds since the Unix epoch.
	Ts int64
	// Values holds one value per series of the collection.
	Values []float64
}

// Time returns the instant timestamp as a time.Time in UTC.
func (in Instant) Time() time.Time {
	return time.UnixMicro(in.Ts).UTC()
}
