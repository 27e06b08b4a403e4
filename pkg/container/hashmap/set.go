// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package hashmap

import "github.com/JacksonAllan/CC-sub002/pkg/container/traits"

// SetConfig carries the key traits for a Set. Construct with NewSetConfig.
type SetConfig[K any] struct {
	mc MapConfig[K, struct{}]
}

// NewSetConfig returns a config for sets keyed by cmp and hash.
func NewSetConfig[K any](cmp traits.CompareFn[K], hash traits.HashFn[K]) SetConfig[K] {
	return SetConfig[K]{mc: NewMapConfig[K, struct{}](cmp, hash)}
}

// WithMaxLoadFactor overrides the default maximum load factor.
func (c SetConfig[K]) WithMaxLoadFactor(f float64) SetConfig[K] {
	c.mc = c.mc.WithMaxLoadFactor(f)
	return c
}

// WithDestructor installs a destructor run on evicted elements.
func (c SetConfig[K]) WithDestructor(d traits.DestroyFn[K]) SetConfig[K] {
	c.mc = c.mc.WithKeyDestructor(d)
	return c
}

// MakeSet builds an empty set.
func (c SetConfig[K]) MakeSet() *Set[K] {
	return &Set[K]{m: c.mc.MakeMap()}
}

// Set is an unordered set of K built on Map with an empty value type. Its
// cursors are Map cursors whose Key is the element.
type Set[K any] struct {
	m *Map[K, struct{}]
}

// Len returns the number of elements.
func (s *Set[K]) Len() int { return s.m.Len() }

// Cap returns the current bucket array length.
func (s *Set[K]) Cap() int { return s.m.Cap() }

// Add inserts elem if absent and returns a cursor to it.
func (s *Set[K]) Add(elem K) Cursor[K, struct{}] {
	c, _ := s.m.GetOrInsert(elem, struct{}{})
	return c
}

// Contains reports whether elem is in the set.
func (s *Set[K]) Contains(elem K) bool {
	return s.m.Get(elem).Ok()
}

// Get returns a cursor to elem, or the null cursor if absent.
func (s *Set[K]) Get(elem K) Cursor[K, struct{}] {
	return s.m.Get(elem)
}

// Remove deletes elem and reports whether it was present.
func (s *Set[K]) Remove(elem K) bool {
	return s.m.Delete(elem)
}

// RemoveCursor deletes the element addressed by c and returns a cursor to
// the next element in bucket order.
func (s *Set[K]) RemoveCursor(c Cursor[K, struct{}]) (Cursor[K, struct{}], error) {
	return s.m.DeleteCursor(c)
}

// Reserve grows the set so that n elements fit without rehashing.
func (s *Set[K]) Reserve(n int) { s.m.Reserve(n) }

// Shrink reduces capacity to the minimum admitting the current size.
func (s *Set[K]) Shrink() { s.m.Shrink() }

// Clear removes every element without releasing the bucket array.
func (s *Set[K]) Clear() { s.m.Clear() }

// Close clears the set and releases the bucket array.
func (s *Set[K]) Close() { s.m.Close() }

// Clone returns a set with a freshly allocated bucket array holding shallow
// copies of the elements.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{m: s.m.Clone()}
}

// First returns a cursor to the first element in bucket order, or end.
func (s *Set[K]) First() Cursor[K, struct{}] { return s.m.First() }

// Next returns a cursor to the element following c in bucket order, or end.
func (s *Set[K]) Next(c Cursor[K, struct{}]) Cursor[K, struct{}] { return s.m.Next(c) }

// End returns the end cursor.
func (s *Set[K]) End() Cursor[K, struct{}] { return s.m.End() }

// All calls yield for each element in bucket order until yield returns
// false.
func (s *Set[K]) All(yield func(elem K) bool) {
	s.m.All(func(k K, _ struct{}) bool { return yield(k) })
}
