// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package list provides a doubly linked list threaded through a sentinel
// ring, with cursor-based navigation and constant-time splicing.
package list

import (
	"github.com/JacksonAllan/CC-sub002/pkg/container/traits"
	"github.com/cockroachdb/errors"
)

// ErrStaleCursor is the panic value raised when a cursor is dereferenced or
// navigated after the element it addresses has been removed.
var ErrStaleCursor = errors.New("container: stale cursor")

// elem is a ring node. The list's sentinel is an elem whose next and prev
// close the ring; a removed elem is marked by a nil next pointer, which a
// linked elem never has.
type elem[T any] struct {
	next, prev *elem[T]
	val        T
}

// Config carries the traits for a List.
type Config[T any] struct {
	destroy traits.DestroyFn[T]
}

// NewConfig returns the default config.
func NewConfig[T any]() Config[T] { return Config[T]{} }

// WithDestructor installs a destructor run on elements evicted by Remove
// and Clear.
func (c Config[T]) WithDestructor(d traits.DestroyFn[T]) Config[T] {
	c.destroy = d
	return c
}

// MakeList builds an empty list.
func (c Config[T]) MakeList() *List[T] {
	l := &List[T]{cfg: c}
	l.sent.next = &l.sent
	l.sent.prev = &l.sent
	return l
}

// New builds an empty list with no destructor.
func New[T any]() *List[T] { return NewConfig[T]().MakeList() }

// List is a doubly linked list of T. A cursor to an element stays valid
// across unrelated insertions and removals and goes stale only when its own
// element is removed. A List must not be copied after first use; use Clone.
type List[T any] struct {
	cfg  Config[T]
	sent elem[T]
	size int
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// PushBack appends value and returns a cursor to the new element.
func (l *List[T]) PushBack(value T) Cursor[T] {
	return l.insertBetween(value, l.sent.prev, &l.sent)
}

// PushFront prepends value and returns a cursor to the new element.
func (l *List[T]) PushFront(value T) Cursor[T] {
	return l.insertBetween(value, &l.sent, l.sent.next)
}

// InsertBefore places value immediately before c's element. Inserting
// before the end cursor is PushBack; inserting before the reverse-end
// cursor panics.
func (l *List[T]) InsertBefore(c Cursor[T], value T) Cursor[T] {
	at := l.resolve(c, false)
	return l.insertBetween(value, at.prev, at)
}

// InsertAfter places value immediately after c's element. Inserting after
// the reverse-end cursor is PushFront; inserting after the end cursor
// panics.
func (l *List[T]) InsertAfter(c Cursor[T], value T) Cursor[T] {
	at := l.resolve(c, true)
	return l.insertBetween(value, at, at.next)
}

// Remove unlinks the element addressed by c, destroys it, and returns a
// cursor to the following element or the end cursor. It returns
// ErrStaleCursor if c's element has already been removed, and an assertion
// failure if c is a null or sentinel cursor. c may have been minted by a
// list whose elements were spliced into l; it must address an element
// currently linked into l's ring.
func (l *List[T]) Remove(c Cursor[T]) (Cursor[T], error) {
	if c.l == nil || c.n == nil || c.pos != posElem {
		return Cursor[T]{}, errors.AssertionFailedf("list: cannot remove through a null or sentinel cursor")
	}
	if c.n.next == nil {
		return Cursor[T]{}, ErrStaleCursor
	}
	n := c.n
	next := n.next
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil // stale marker
	n.prev = nil
	l.size--
	if l.cfg.destroy != nil {
		l.cfg.destroy(n.val)
	}
	if next == &l.sent {
		return l.End(), nil
	}
	return Cursor[T]{l: l, n: next}, nil
}

// Splice moves every element of other, in order, to the position before c,
// leaving other empty. The two lists must be distinct and should share a
// destructor config. Cursors into other remain valid and now address
// elements of l: pass them to l's methods, not other's.
func (l *List[T]) Splice(c Cursor[T], other *List[T]) {
	if other == l {
		panic(errors.AssertionFailedf("list: cannot splice a list into itself"))
	}
	if other.size == 0 {
		return
	}
	at := l.resolve(c, false)
	first, last := other.sent.next, other.sent.prev
	other.sent.next = &other.sent
	other.sent.prev = &other.sent

	first.prev = at.prev
	at.prev.next = first
	last.next = at
	at.prev = last
	l.size += other.size
	other.size = 0
}

// Clear removes every element, running destructors. Outstanding cursors
// become stale.
func (l *List[T]) Clear() {
	for n := l.sent.next; n != &l.sent; {
		next := n.next
		if l.cfg.destroy != nil {
			l.cfg.destroy(n.val)
		}
		n.next = nil
		n.prev = nil
		n = next
	}
	l.sent.next = &l.sent
	l.sent.prev = &l.sent
	l.size = 0
}

// Close is Clear.
func (l *List[T]) Close() { l.Clear() }

// Clone returns a list with freshly allocated elements holding shallow
// copies of the values. See the hashmap Clone caveat about destructors and
// owned resources.
func (l *List[T]) Clone() *List[T] {
	c := l.cfg.MakeList()
	for n := l.sent.next; n != &l.sent; n = n.next {
		c.PushBack(n.val)
	}
	return c
}

// First returns a cursor to the front element, or the end cursor if the
// list is empty.
func (l *List[T]) First() Cursor[T] {
	if l.size == 0 {
		return l.End()
	}
	return Cursor[T]{l: l, n: l.sent.next}
}

// Last returns a cursor to the back element, or the reverse-end cursor if
// the list is empty.
func (l *List[T]) Last() Cursor[T] {
	if l.size == 0 {
		return l.REnd()
	}
	return Cursor[T]{l: l, n: l.sent.prev}
}

// Next returns a cursor to the element after c's. Stepping past the back
// yields the end cursor; stepping forward from the reverse-end cursor
// yields the front element; the end cursor is a fixed point. Next panics
// with ErrStaleCursor if c's element has been removed.
func (l *List[T]) Next(c Cursor[T]) Cursor[T] {
	l.checkNav(c)
	switch c.pos {
	case posEnd:
		return c
	case posREnd:
		return l.First()
	}
	if c.n.next == &l.sent {
		return l.End()
	}
	return Cursor[T]{l: l, n: c.n.next}
}

// Prev returns a cursor to the element before c's. Stepping before the
// front yields the reverse-end cursor; stepping backward from the end
// cursor yields the back element; the reverse-end cursor is a fixed point.
// Prev panics with ErrStaleCursor if c's element has been removed.
func (l *List[T]) Prev(c Cursor[T]) Cursor[T] {
	l.checkNav(c)
	switch c.pos {
	case posREnd:
		return c
	case posEnd:
		return l.Last()
	}
	if c.n.prev == &l.sent {
		return l.REnd()
	}
	return Cursor[T]{l: l, n: c.n.prev}
}

// End returns the end cursor.
func (l *List[T]) End() Cursor[T] { return Cursor[T]{l: l, pos: posEnd} }

// REnd returns the reverse-end cursor.
func (l *List[T]) REnd() Cursor[T] { return Cursor[T]{l: l, pos: posREnd} }

// ForEach calls yield for each element from front to back until yield
// returns false. The list must not be mutated during the traversal.
func (l *List[T]) ForEach(yield func(value T) bool) {
	for n := l.sent.next; n != &l.sent; n = n.next {
		if !yield(n.val) {
			return
		}
	}
}

func (l *List[T]) insertBetween(value T, prev, next *elem[T]) Cursor[T] {
	n := &elem[T]{next: next, prev: prev, val: value}
	prev.next = n
	next.prev = n
	l.size++
	return Cursor[T]{l: l, n: n}
}

// resolve maps a cursor to the ring node an insertion anchors on. The end
// cursor resolves to the sentinel for before-insertions; the reverse-end
// cursor resolves to the sentinel for after-insertions.
func (l *List[T]) resolve(c Cursor[T], after bool) *elem[T] {
	l.checkNav(c)
	switch c.pos {
	case posEnd:
		if after {
			panic(errors.AssertionFailedf("list: cannot insert after the end cursor"))
		}
		return &l.sent
	case posREnd:
		if !after {
			panic(errors.AssertionFailedf("list: cannot insert before the reverse-end cursor"))
		}
		return &l.sent
	}
	return c.n
}

func (l *List[T]) checkNav(c Cursor[T]) {
	// Element cursors are identified by ring membership rather than by the
	// list they were minted from, so cursors migrated by Splice keep working
	// against the receiver. Sentinel cursors have no node and must match.
	if c.l == nil || (c.pos != posElem && c.l != l) {
		panic(errors.AssertionFailedf("list: cursor does not belong to this list"))
	}
	if c.pos == posElem && c.n.next == nil {
		panic(ErrStaleCursor)
	}
}

const (
	posElem int8 = iota
	posEnd
	posREnd
)

// Cursor addresses one element of a List, or one of its two sentinel
// positions. The zero Cursor is the null cursor.
type Cursor[T any] struct {
	l   *List[T]
	n   *elem[T]
	pos int8
}

// Ok reports whether the cursor addresses an element.
func (c Cursor[T]) Ok() bool { return c.l != nil && c.pos == posElem }

// End reports whether the cursor is the end sentinel.
func (c Cursor[T]) End() bool { return c.l != nil && c.pos == posEnd }

// REnd reports whether the cursor is the reverse-end sentinel.
func (c Cursor[T]) REnd() bool { return c.l != nil && c.pos == posREnd }

// Null reports whether the cursor is the null cursor.
func (c Cursor[T]) Null() bool { return c.l == nil }

// Err returns ErrStaleCursor if the cursor's element has been removed, and
// nil otherwise.
func (c Cursor[T]) Err() error {
	if c.pos == posElem && c.l != nil && c.n.next == nil {
		return ErrStaleCursor
	}
	return nil
}

// Value returns the value of the addressed element.
func (c Cursor[T]) Value() T { return c.deref().val }

// SetValue replaces the value of the addressed element, destroying the old
// value if the list has a destructor.
func (c Cursor[T]) SetValue(v T) {
	n := c.deref()
	if c.l.cfg.destroy != nil {
		c.l.cfg.destroy(n.val)
	}
	n.val = v
}

func (c Cursor[T]) deref() *elem[T] {
	if c.l == nil || c.pos != posElem {
		panic(errors.AssertionFailedf("list: cannot dereference a null or sentinel cursor"))
	}
	if c.n.next == nil {
		panic(ErrStaleCursor)
	}
	return c.n
}
