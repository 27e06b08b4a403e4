// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package vector provides a contiguous dynamic array with amortized-doubling
// growth and optional element destructors.
package vector

import (
	"github.com/JacksonAllan/CC-sub002/pkg/container/traits"
	"github.com/cockroachdb/errors"
)

// Config carries the traits for a Vector.
type Config[T any] struct {
	destroy traits.DestroyFn[T]
}

// NewConfig returns the default config.
func NewConfig[T any]() Config[T] { return Config[T]{} }

// WithDestructor installs a destructor run on elements evicted by Delete,
// Set, Resize shrinkage, and Clear.
func (c Config[T]) WithDestructor(d traits.DestroyFn[T]) Config[T] {
	c.destroy = d
	return c
}

// MakeVector builds an empty vector.
func (c Config[T]) MakeVector() *Vector[T] {
	return &Vector[T]{cfg: c}
}

// New builds an empty vector with no destructor, the common case.
func New[T any]() *Vector[T] { return NewConfig[T]().MakeVector() }

// Vector is a growable array of T. Elements are stored contiguously, so Get
// and Set are constant time while Insert and Delete at position i shift the
// trailing len-i elements. Indexing misuse panics.
type Vector[T any] struct {
	cfg   Config[T]
	elems []T
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return len(v.elems) }

// Cap returns the capacity of the underlying array.
func (v *Vector[T]) Cap() int { return cap(v.elems) }

// Push appends an element and returns its index.
func (v *Vector[T]) Push(elem T) int {
	v.elems = append(v.elems, elem)
	return len(v.elems) - 1
}

// Insert places elem at position i, shifting later elements up. i may equal
// Len, in which case Insert is Push.
func (v *Vector[T]) Insert(i int, elem T) {
	if i < 0 || i > len(v.elems) {
		panic(errors.AssertionFailedf("vector: insert index %d out of range [0, %d]", i, len(v.elems)))
	}
	var zero T
	v.elems = append(v.elems, zero)
	copy(v.elems[i+1:], v.elems[i:])
	v.elems[i] = elem
}

// Delete removes the element at position i, destroying it and shifting later
// elements down.
func (v *Vector[T]) Delete(i int) {
	v.checkIndex(i)
	if v.cfg.destroy != nil {
		v.cfg.destroy(v.elems[i])
	}
	copy(v.elems[i:], v.elems[i+1:])
	var zero T
	v.elems[len(v.elems)-1] = zero
	v.elems = v.elems[:len(v.elems)-1]
}

// Get returns the element at position i.
func (v *Vector[T]) Get(i int) T {
	v.checkIndex(i)
	return v.elems[i]
}

// Set replaces the element at position i, destroying the old element.
func (v *Vector[T]) Set(i int, elem T) {
	v.checkIndex(i)
	if v.cfg.destroy != nil {
		v.cfg.destroy(v.elems[i])
	}
	v.elems[i] = elem
}

// First returns the element at the front.
func (v *Vector[T]) First() T { return v.Get(0) }

// Last returns the element at the back.
func (v *Vector[T]) Last() T { return v.Get(len(v.elems) - 1) }

// Pop removes and returns the last element, without running the destructor:
// ownership transfers to the caller.
func (v *Vector[T]) Pop() T {
	v.checkIndex(len(v.elems) - 1)
	elem := v.elems[len(v.elems)-1]
	var zero T
	v.elems[len(v.elems)-1] = zero
	v.elems = v.elems[:len(v.elems)-1]
	return elem
}

// Resize sets the length to n. Growth appends zero values; shrinkage
// destroys the truncated elements.
func (v *Vector[T]) Resize(n int) {
	if n < 0 {
		panic(errors.AssertionFailedf("vector: resize to negative length %d", n))
	}
	switch {
	case n < len(v.elems):
		if v.cfg.destroy != nil {
			for _, e := range v.elems[n:] {
				v.cfg.destroy(e)
			}
		}
		var zero T
		for i := n; i < len(v.elems); i++ {
			v.elems[i] = zero
		}
		v.elems = v.elems[:n]
	case n > len(v.elems):
		v.Reserve(n)
		v.elems = v.elems[:n]
	}
}

// Reserve grows the capacity to at least n. It never shrinks.
func (v *Vector[T]) Reserve(n int) {
	if n <= cap(v.elems) {
		return
	}
	grown := make([]T, len(v.elems), n)
	copy(grown, v.elems)
	v.elems = grown
}

// Shrink reduces the capacity to the current length, releasing the backing
// array entirely when the vector is empty.
func (v *Vector[T]) Shrink() {
	if len(v.elems) == cap(v.elems) {
		return
	}
	if len(v.elems) == 0 {
		v.elems = nil
		return
	}
	shrunk := make([]T, len(v.elems))
	copy(shrunk, v.elems)
	v.elems = shrunk
}

// Clear removes every element, running destructors and keeping the capacity.
func (v *Vector[T]) Clear() {
	v.Resize(0)
}

// Close releases the backing array after destroying the elements.
func (v *Vector[T]) Close() {
	v.Resize(0)
	v.elems = nil
}

// Clone returns a vector with a freshly allocated array holding shallow
// copies of the elements. See the hashmap Clone caveat about destructors
// and owned resources.
func (v *Vector[T]) Clone() *Vector[T] {
	c := v.cfg.MakeVector()
	if len(v.elems) > 0 {
		c.elems = make([]T, len(v.elems))
		copy(c.elems, v.elems)
	}
	return c
}

// All calls yield for each element in index order until yield returns false.
func (v *Vector[T]) All(yield func(i int, elem T) bool) {
	for i, e := range v.elems {
		if !yield(i, e) {
			return
		}
	}
}

func (v *Vector[T]) checkIndex(i int) {
	if i < 0 || i >= len(v.elems) {
		panic(errors.AssertionFailedf("vector: index %d out of range [0, %d)", i, len(v.elems)))
	}
}
