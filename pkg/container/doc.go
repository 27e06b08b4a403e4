// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package container is the root of a family of generic containers sharing a
// common construction and cursor vocabulary:
//
//   - hashmap: unordered Map[K,V] and Set[K] over an open-addressing table
//     with Robin Hood probing.
//   - ordmap: ordered Map[K,V] and Set[K] over a red-black tree with
//     order-statistics navigation.
//   - vector: contiguous dynamic array Vector[T].
//   - list: doubly linked List[T] with constant-time splice.
//   - strbuf: dynamic byte string Buffer with positional insertion.
//   - traits: the comparison, hashing, and destruction function types the
//     keyed containers are configured with, plus defaults for common key
//     types.
//
// # Construction
//
// Keyed containers are built from a config value that carries their traits:
//
//	m := hashmap.NewMapConfig[string, int](traits.Compare[string], traits.HashString).MakeMap()
//
// Traits are ordinary function values supplied at construction, so a
// container over a key type with no obvious ordering or hash is a compile
// error at the call site rather than a runtime fault.
//
// # Cursors
//
// Lookup and insertion return cursors. A cursor addresses one entry and
// exposes Key, Value, and SetValue; containers navigate cursors with Next
// (and Prev, End, REnd where the container is bidirectional). Lookup misses
// return the null cursor, distinguishable via Null and Ok.
//
// Cursor validity differs by engine. Tree and list cursors are pinned to
// nodes: they survive unrelated mutations and go stale only when their own
// entry is erased. Hash cursors are positional: any operation that can move
// entries (growth, shrink, erasure, and insertion of a new key) invalidates
// them. Either way staleness is detected, never silent: dereferencing or
// navigating a stale cursor panics with the package's ErrStaleCursor, the
// cursor's Err method reports it without panicking, and DeleteCursor
// returns it as an error.
//
// # Ownership
//
// Containers may be configured with destructors that run when an entry is
// erased, replaced, or cleared. Clone produces shallow copies and shares
// the original's traits, so cloning a container whose destructor releases
// owned resources leads to double release; clone such containers only with
// deep-copied payloads. Containers are not goroutine-safe.
package container
