// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package ordmap

import (
	"github.com/cockroachdb/errors"
)

// ErrStaleCursor is the panic value raised when a cursor is dereferenced or
// navigated after the entry it addresses has been erased.
var ErrStaleCursor = errors.New("container: stale cursor")

const (
	posElem int8 = iota
	posEnd
	posREnd
)

// Cursor addresses one entry of a Map, or one of its two sentinel positions
// (end, reverse-end). The zero Cursor is the null cursor, distinct from
// both sentinels: it is what lookups return on a miss.
//
// Unlike hash-container cursors, a tree cursor is pinned to a node and
// survives unrelated insertions and erasures; it goes stale only when its
// own entry is erased or the map is cleared.
type Cursor[K, V any] struct {
	m   *Map[K, V]
	n   *node[K, V]
	pos int8
}

// Ok reports whether the cursor addresses an entry.
func (c Cursor[K, V]) Ok() bool { return c.m != nil && c.pos == posElem }

// End reports whether the cursor is the end sentinel.
func (c Cursor[K, V]) End() bool { return c.m != nil && c.pos == posEnd }

// REnd reports whether the cursor is the reverse-end sentinel.
func (c Cursor[K, V]) REnd() bool { return c.m != nil && c.pos == posREnd }

// Null reports whether the cursor is the null cursor.
func (c Cursor[K, V]) Null() bool { return c.m == nil }

// Err returns ErrStaleCursor if the cursor's entry has been erased, and nil
// otherwise. It allows checking a held cursor without risking the panic
// that Key, Value, and navigation raise.
func (c Cursor[K, V]) Err() error {
	if c.pos == posElem && c.m != nil && c.n.parent == c.n {
		return ErrStaleCursor
	}
	return nil
}

// Key returns the key of the addressed entry.
func (c Cursor[K, V]) Key() K { return c.deref().key }

// Value returns the value of the addressed entry.
func (c Cursor[K, V]) Value() V { return c.deref().val }

// SetValue replaces the value of the addressed entry, destroying the old
// value if the map has a value destructor.
func (c Cursor[K, V]) SetValue(v V) {
	n := c.deref()
	if c.m.cfg.destroyVal != nil {
		c.m.cfg.destroyVal(n.val)
	}
	n.val = v
}

func (c Cursor[K, V]) deref() *node[K, V] {
	if c.m == nil || c.pos != posElem {
		panic(errors.AssertionFailedf("ordmap: cannot dereference a null or sentinel cursor"))
	}
	if c.n.parent == c.n {
		panic(ErrStaleCursor)
	}
	return c.n
}
