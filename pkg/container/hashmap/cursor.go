// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package hashmap

import "github.com/cockroachdb/errors"

// ErrStaleCursor is reported when a cursor is used after an entry-moving
// operation invalidated it.
var ErrStaleCursor = errors.New("container: stale cursor")

// Cursor addresses a single entry in a Map, or the end position past the
// last entry. The zero value is the null cursor, returned by lookups that
// find nothing.
//
// A cursor is valid until the next entry-moving operation on its map: a grow
// or shrink of the bucket array, an insertion of a new key, or a deletion.
// Dereferencing an invalidated cursor panics with ErrStaleCursor; callers
// that hold cursors across mutations should consult Err first.
type Cursor[K, V any] struct {
	m   *Map[K, V]
	idx int
	gen uint64
	end bool
}

// Ok reports whether c addresses a live entry.
func (c Cursor[K, V]) Ok() bool {
	return c.m != nil && !c.end && c.gen == c.m.gen
}

// End reports whether c is the end cursor.
func (c Cursor[K, V]) End() bool { return c.end }

// Null reports whether c is the null cursor.
func (c Cursor[K, V]) Null() bool { return c.m == nil }

// Err returns ErrStaleCursor if c addressed an entry but has since been
// invalidated, and nil otherwise.
func (c Cursor[K, V]) Err() error {
	if c.m != nil && !c.end && c.gen != c.m.gen {
		return ErrStaleCursor
	}
	return nil
}

// Key returns the key of the addressed entry.
func (c Cursor[K, V]) Key() K {
	c.deref()
	return c.m.slots[c.idx].key
}

// Value returns the value of the addressed entry.
func (c Cursor[K, V]) Value() V {
	c.deref()
	return c.m.slots[c.idx].val
}

// SetValue replaces the value of the addressed entry, destroying the old
// value.
func (c Cursor[K, V]) SetValue(value V) {
	c.deref()
	if c.m.cfg.destroyVal != nil {
		c.m.cfg.destroyVal(c.m.slots[c.idx].val)
	}
	c.m.slots[c.idx].val = value
}

func (c Cursor[K, V]) deref() {
	if c.m == nil || c.end {
		panic(errors.AssertionFailedf("hashmap: dereference of null or end cursor"))
	}
	if c.gen != c.m.gen {
		panic(ErrStaleCursor)
	}
}
