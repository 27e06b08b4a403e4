// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package traits supplies the per-type customization points consumed by the
// container packages: three-way comparison, seeded hashing, and optional
// destruction. Strategies are plain function values passed to a container
// config at construction time; there is no global registry and no run-time
// lookup. A container whose key type has no comparator (or, for hash
// containers, no hasher) simply cannot be constructed, so a missing binding
// is a compile-time fault rather than a run-time one.
//
// Built-in strategies cover the ordered primitive types and byte strings.
// HashString and HashBytes produce identical digests for equal byte
// sequences, which is what makes the hashmap package's borrowed-[]byte
// lookups sound.
package traits

import "golang.org/x/exp/constraints"

// CompareFn is a three-way comparison returning <0, 0, or >0 as a sorts
// before, equal to, or after b. It must define a strict weak ordering.
type CompareFn[T any] func(a, b T) int

// HashFn hashes k under the given seed. Two keys that compare equal must
// hash equally under the same seed.
type HashFn[K any] func(seed uint64, k K) uint64

// DestroyFn releases resources owned by a value that is being evicted from a
// container. Containers treat a nil DestroyFn as "no destructor".
type DestroyFn[T any] func(T)

// Compare is the built-in comparator for ordered primitive types.
func Compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareBytes is a three-way lexicographic comparison of a string against a
// borrowed byte slice. It allocates nothing.
func CompareBytes(s string, b []byte) int {
	n := len(s)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if s[i] != b[i] {
			if s[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(s) - len(b)
}

// Magic FNV base constant as suitable for a FNV-64 hash.
const fnvBase = uint64(14695981039346656037)
const fnvPrime = 1099511628211

// HashInt is the built-in hasher for integer key types: FNV-64 over the
// value's eight little-endian bytes, folded with the seed.
func HashInt[T constraints.Integer](seed uint64, k T) uint64 {
	h := fnvBase ^ seed
	v := uint64(k)
	for i := 0; i < 8; i++ {
		h *= fnvPrime
		h ^= v & 0xff
		v >>= 8
	}
	return h
}

// HashString is the built-in hasher for string keys.
func HashString(seed uint64, k string) uint64 {
	h := fnvBase ^ seed
	for i := 0; i < len(k); i++ {
		h *= fnvPrime
		h ^= uint64(k[i])
	}
	return h
}

// HashBytes hashes a byte slice. HashBytes(seed, b) == HashString(seed, s)
// whenever string(b) == s.
func HashBytes(seed uint64, k []byte) uint64 {
	h := fnvBase ^ seed
	for i := 0; i < len(k); i++ {
		h *= fnvPrime
		h ^= uint64(k[i])
	}
	return h
}
