// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package ordmap

import (
	"github.com/JacksonAllan/CC-sub002/pkg/container/traits"
)

// SetConfig carries the traits for a Set.
type SetConfig[K any] struct {
	mc MapConfig[K, struct{}]
}

// NewSetConfig returns a config for sets ordered by cmp.
func NewSetConfig[K any](cmp traits.CompareFn[K]) SetConfig[K] {
	return SetConfig[K]{mc: NewMapConfig[K, struct{}](cmp)}
}

// WithDestructor installs a destructor run on erased elements.
func (c SetConfig[K]) WithDestructor(d traits.DestroyFn[K]) SetConfig[K] {
	c.mc = c.mc.WithKeyDestructor(d)
	return c
}

// MakeSet builds an empty set.
func (c SetConfig[K]) MakeSet() *Set[K] {
	return &Set[K]{m: c.mc.MakeMap()}
}

// Set is an ordered set of K, a thin wrapper over Map[K, struct{}].
type Set[K any] struct {
	m *Map[K, struct{}]
}

// Len returns the number of elements.
func (s *Set[K]) Len() int { return s.m.Len() }

// Cap returns the number of allocated nodes, which equals Len.
func (s *Set[K]) Cap() int { return s.m.Cap() }

// Add inserts key if absent and reports whether an insertion happened.
func (s *Set[K]) Add(key K) (Cursor[K, struct{}], bool) {
	return s.m.GetOrInsert(key, struct{}{})
}

// Contains reports whether key is an element.
func (s *Set[K]) Contains(key K) bool { return s.m.Get(key).Ok() }

// Get returns a cursor to key's element, or the null cursor if absent.
func (s *Set[K]) Get(key K) Cursor[K, struct{}] { return s.m.Get(key) }

// Remove erases key and reports whether it was present.
func (s *Set[K]) Remove(key K) bool { return s.m.Delete(key) }

// RemoveCursor erases the element addressed by c and returns a cursor to
// the in-order successor. See Map.DeleteCursor for the error contract.
func (s *Set[K]) RemoveCursor(c Cursor[K, struct{}]) (Cursor[K, struct{}], error) {
	return s.m.DeleteCursor(c)
}

// Clear removes every element, running the destructor.
func (s *Set[K]) Clear() { s.m.Clear() }

// Close is Clear.
func (s *Set[K]) Close() { s.m.Close() }

// Clone returns an independent copy of the set.
func (s *Set[K]) Clone() *Set[K] { return &Set[K]{m: s.m.Clone()} }

// First returns a cursor to the smallest element, or the end cursor.
func (s *Set[K]) First() Cursor[K, struct{}] { return s.m.First() }

// Last returns a cursor to the largest element, or the reverse-end cursor.
func (s *Set[K]) Last() Cursor[K, struct{}] { return s.m.Last() }

// Next returns the in-order successor cursor. See Map.Next for wrap rules.
func (s *Set[K]) Next(c Cursor[K, struct{}]) Cursor[K, struct{}] { return s.m.Next(c) }

// Prev returns the in-order predecessor cursor. See Map.Prev for wrap rules.
func (s *Set[K]) Prev(c Cursor[K, struct{}]) Cursor[K, struct{}] { return s.m.Prev(c) }

// End returns the end cursor.
func (s *Set[K]) End() Cursor[K, struct{}] { return s.m.End() }

// REnd returns the reverse-end cursor.
func (s *Set[K]) REnd() Cursor[K, struct{}] { return s.m.REnd() }

// SeekGE returns a cursor to the smallest element >= bound, or the end
// cursor.
func (s *Set[K]) SeekGE(bound K) Cursor[K, struct{}] { return s.m.SeekGE(bound) }

// SeekLE returns a cursor to the largest element <= bound, or the
// reverse-end cursor.
func (s *Set[K]) SeekLE(bound K) Cursor[K, struct{}] { return s.m.SeekLE(bound) }

// Nth returns a cursor to the element with exactly i smaller elements.
func (s *Set[K]) Nth(i int) Cursor[K, struct{}] { return s.m.Nth(i) }

// Rank returns the number of elements smaller than c's.
func (s *Set[K]) Rank(c Cursor[K, struct{}]) int { return s.m.Rank(c) }

// All calls yield for each element in ascending order until yield returns
// false.
func (s *Set[K]) All(yield func(key K) bool) {
	s.m.All(func(k K, _ struct{}) bool { return yield(k) })
}

// Backward calls yield for each element in descending order until yield
// returns false.
func (s *Set[K]) Backward(yield func(key K) bool) {
	s.m.Backward(func(k K, _ struct{}) bool { return yield(k) })
}
