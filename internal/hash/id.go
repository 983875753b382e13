// Package hash provides the key hashing used to route series between
// partitions. Routing must be deterministic so repeated evaluations of a lazy
// pipeline land every series in the same partition.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given series key.
func ID(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Partition maps a series key onto one of n partitions. n must be positive.
func Partition(key string, n int) int {
	return int(ID(key) % uint64(n))
}
