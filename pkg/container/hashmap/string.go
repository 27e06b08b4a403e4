// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package hashmap

import "github.com/JacksonAllan/CC-sub002/pkg/container/traits"

// Heterogeneous key operations for string-keyed maps. A caller holding a
// borrowed []byte can probe the table without first materializing an owned
// string: the bytes are hashed and compared in place, and only the insertion
// paths copy them, and only once the key is confirmed new.
//
// These functions require the map to have been configured with
// traits.HashString (or any hasher that agrees with traits.HashBytes on
// equal byte sequences) and a comparator consistent with byte-wise ordering.

// GetBytes is Get for a borrowed byte-sequence key. It never allocates.
func GetBytes[V any](m *Map[string, V], key []byte) Cursor[string, V] {
	if m.size == 0 {
		return Cursor[string, V]{}
	}
	if i := findBytes(m, traits.HashBytes(m.seed, key), key); i >= 0 {
		return m.cursorAt(i)
	}
	return Cursor[string, V]{}
}

// DeleteBytes is Delete for a borrowed byte-sequence key. It never
// allocates.
func DeleteBytes[V any](m *Map[string, V], key []byte) bool {
	if m.size == 0 {
		return false
	}
	i := findBytes(m, traits.HashBytes(m.seed, key), key)
	if i < 0 {
		return false
	}
	m.deleteAt(i)
	return true
}

// UpsertBytes is Upsert for a borrowed byte-sequence key. The key is copied
// into an owned string only if it is not already present.
func UpsertBytes[V any](m *Map[string, V], key []byte, value V) Cursor[string, V] {
	m.ensureHeadroom(m.size + 1)
	h := traits.HashBytes(m.seed, key)
	if i := findBytes(m, h, key); i >= 0 {
		if m.cfg.destroyVal != nil {
			m.cfg.destroyVal(m.slots[i].val)
		}
		m.slots[i].val = value
		return m.cursorAt(i)
	}
	i := m.insertNew(h, string(key), value)
	m.size++
	return m.cursorAt(i)
}

// GetOrInsertBytes is GetOrInsert for a borrowed byte-sequence key. As with
// UpsertBytes, the key is only copied when an insertion happens.
func GetOrInsertBytes[V any](m *Map[string, V], key []byte, value V) (Cursor[string, V], bool) {
	m.ensureHeadroom(m.size + 1)
	h := traits.HashBytes(m.seed, key)
	if i := findBytes(m, h, key); i >= 0 {
		return m.cursorAt(i), false
	}
	i := m.insertNew(h, string(key), value)
	m.size++
	return m.cursorAt(i), true
}

// findBytes mirrors Map.find for a borrowed key.
func findBytes[V any](m *Map[string, V], h uint64, key []byte) int {
	if len(m.slots) == 0 {
		return -1
	}
	i := h & m.mask
	d := uint(1)
	for {
		s := &m.slots[i]
		if uint(s.dist) < d {
			return -1
		}
		if s.hash == h && traits.CompareBytes(s.key, key) == 0 {
			return int(i)
		}
		i = (i + 1) & m.mask
		d++
	}
}
