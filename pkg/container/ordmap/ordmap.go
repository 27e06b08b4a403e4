// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package ordmap provides an ordered map and set backed by a red-black tree
// keyed by an explicit comparator.
//
// Nodes carry parent pointers and subtree sizes, so the tree supports
// bidirectional in-order traversal, lower/upper bound seeks, and
// order-statistics queries (Nth, Rank) in O(log n). Deletion relinks nodes
// rather than copying entries between them, so a cursor stays valid until
// the entry it addresses is itself erased, regardless of unrelated
// insertions and erasures.
package ordmap

import (
	"github.com/JacksonAllan/CC-sub002/pkg/container/traits"
	"github.com/cockroachdb/errors"
)

const (
	red = iota
	black
)

// node is a tree node. The tree terminates in a single shared sentinel node
// (black, size zero) rather than nil pointers, which keeps the delete fixup
// free of nil checks. An erased node is marked by pointing its parent at
// itself, which live nodes never do.
type node[K, V any] struct {
	left, right, parent *node[K, V]
	size                int
	color               int8
	key                 K
	val                 V
}

// MapConfig carries the key traits for a Map. Construct with NewMapConfig,
// refine with the With* methods, then build maps with MakeMap.
type MapConfig[K, V any] struct {
	cmp        traits.CompareFn[K]
	destroyKey traits.DestroyFn[K]
	destroyVal traits.DestroyFn[V]
}

// NewMapConfig returns a config for maps ordered by cmp.
func NewMapConfig[K, V any](cmp traits.CompareFn[K]) MapConfig[K, V] {
	return MapConfig[K, V]{cmp: cmp}
}

// WithKeyDestructor installs a destructor run on keys evicted by Delete,
// DeleteCursor, and Clear.
func (c MapConfig[K, V]) WithKeyDestructor(d traits.DestroyFn[K]) MapConfig[K, V] {
	c.destroyKey = d
	return c
}

// WithValueDestructor installs a destructor run on values evicted by Delete,
// DeleteCursor, Clear, and value replacement in Upsert.
func (c MapConfig[K, V]) WithValueDestructor(d traits.DestroyFn[V]) MapConfig[K, V] {
	c.destroyVal = d
	return c
}

// MakeMap builds an empty map.
func (c MapConfig[K, V]) MakeMap() *Map[K, V] {
	if c.cmp == nil {
		panic(errors.AssertionFailedf("ordmap: config requires a comparator"))
	}
	m := &Map[K, V]{cfg: c}
	m.sent = &node[K, V]{color: black}
	m.sent.left = m.sent
	m.sent.right = m.sent
	m.sent.parent = m.sent
	m.root = m.sent
	return m
}

// Map is an ordered map from K to V. Use MapConfig.MakeMap to construct one;
// the zero value is not usable. A Map is not goroutine-safe, and its nodes
// are owned exclusively by the handle returned from MakeMap: use Clone for
// an independent copy rather than copying the struct.
type Map[K, V any] struct {
	cfg  MapConfig[K, V]
	root *node[K, V]
	sent *node[K, V]
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.root.size }

// Cap returns the number of allocated nodes. Nodes are allocated one per
// entry, so this always equals Len; it exists for surface symmetry with the
// hash containers.
func (m *Map[K, V]) Cap() int { return m.root.size }

// Reserve is a no-op: tree nodes are allocated individually on insertion.
func (m *Map[K, V]) Reserve(int) {}

// Shrink is a no-op: an erased node's memory is released immediately.
func (m *Map[K, V]) Shrink() {}

// Upsert inserts key with value, replacing (and destroying) the previous
// value if key is already present. It returns a cursor to the entry.
func (m *Map[K, V]) Upsert(key K, value V) Cursor[K, V] {
	n, inserted := m.getOrInsert(key, value)
	if !inserted {
		if m.cfg.destroyVal != nil {
			m.cfg.destroyVal(n.val)
		}
		n.val = value
	}
	return m.cursorAt(n)
}

// Get returns a cursor to the entry for key, or the null cursor if absent.
func (m *Map[K, V]) Get(key K) Cursor[K, V] {
	if n := m.findNode(key); n != m.sent {
		return m.cursorAt(n)
	}
	return Cursor[K, V]{}
}

// GetOrInsert returns the existing entry for key if present, otherwise
// inserts key with value. The boolean reports whether an insertion happened.
func (m *Map[K, V]) GetOrInsert(key K, value V) (Cursor[K, V], bool) {
	n, inserted := m.getOrInsert(key, value)
	return m.cursorAt(n), inserted
}

// Delete removes the entry for key, running the key and value destructors,
// and reports whether an entry was found.
func (m *Map[K, V]) Delete(key K) bool {
	n := m.findNode(key)
	if n == m.sent {
		return false
	}
	m.deleteNode(n)
	return true
}

// DeleteCursor removes the entry addressed by c and returns a cursor to the
// in-order successor, or the end cursor if none. It returns ErrStaleCursor
// if c's entry has already been erased, and an assertion failure if c is a
// null or sentinel cursor or belongs to another map.
func (m *Map[K, V]) DeleteCursor(c Cursor[K, V]) (Cursor[K, V], error) {
	if c.m != m || c.pos != posElem {
		return Cursor[K, V]{}, errors.AssertionFailedf("ordmap: cannot delete through a null or sentinel cursor")
	}
	if c.n.parent == c.n {
		return Cursor[K, V]{}, ErrStaleCursor
	}
	next := m.Next(c)
	m.deleteNode(c.n)
	return next, nil
}

// Clear removes every entry, running destructors. Outstanding cursors become
// stale.
func (m *Map[K, V]) Clear() {
	m.clearSubtree(m.root)
	m.root = m.sent
}

// Close is Clear: tree nodes are individually allocated, so a full teardown
// releases exactly what Clear releases.
func (m *Map[K, V]) Close() { m.Clear() }

// Clone returns a map with freshly allocated nodes holding shallow copies of
// the entries. The clone shares the original's traits; see the hashmap Clone
// caveat about destructors and owned resources.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := m.cfg.MakeMap()
	c.root = c.cloneSubtree(m, m.root, c.sent)
	return c
}

// First returns a cursor to the smallest entry, or the end cursor if the map
// is empty.
func (m *Map[K, V]) First() Cursor[K, V] {
	if m.root == m.sent {
		return m.End()
	}
	return m.cursorAt(m.minimum(m.root))
}

// Last returns a cursor to the largest entry, or the reverse-end cursor if
// the map is empty.
func (m *Map[K, V]) Last() Cursor[K, V] {
	if m.root == m.sent {
		return m.REnd()
	}
	return m.cursorAt(m.maximum(m.root))
}

// SeekGE returns a cursor to the smallest entry with key >= bound, or the
// end cursor if every key is smaller.
func (m *Map[K, V]) SeekGE(bound K) Cursor[K, V] {
	cand := m.sent
	for x := m.root; x != m.sent; {
		if m.cfg.cmp(x.key, bound) >= 0 {
			cand = x
			x = x.left
		} else {
			x = x.right
		}
	}
	if cand == m.sent {
		return m.End()
	}
	return m.cursorAt(cand)
}

// SeekLE returns a cursor to the largest entry with key <= bound, or the
// reverse-end cursor if every key is larger.
func (m *Map[K, V]) SeekLE(bound K) Cursor[K, V] {
	cand := m.sent
	for x := m.root; x != m.sent; {
		if m.cfg.cmp(x.key, bound) <= 0 {
			cand = x
			x = x.right
		} else {
			x = x.left
		}
	}
	if cand == m.sent {
		return m.REnd()
	}
	return m.cursorAt(cand)
}

// Next returns a cursor to the in-order successor of c. Stepping past the
// largest entry yields the end cursor; stepping forward from the reverse-end
// cursor yields the smallest entry (or the end cursor if the map is empty);
// the end cursor is a fixed point. Next panics with ErrStaleCursor if c's
// entry has been erased.
func (m *Map[K, V]) Next(c Cursor[K, V]) Cursor[K, V] {
	m.checkNav(c)
	switch c.pos {
	case posEnd:
		return c
	case posREnd:
		return m.First()
	}
	n := c.n
	if n.right != m.sent {
		return m.cursorAt(m.minimum(n.right))
	}
	for n.parent != m.sent && n == n.parent.right {
		n = n.parent
	}
	if n.parent == m.sent {
		return m.End()
	}
	return m.cursorAt(n.parent)
}

// Prev returns a cursor to the in-order predecessor of c. Stepping before
// the smallest entry yields the reverse-end cursor; stepping backward from
// the end cursor yields the largest entry (or the reverse-end cursor if the
// map is empty); the reverse-end cursor is a fixed point. Prev panics with
// ErrStaleCursor if c's entry has been erased.
func (m *Map[K, V]) Prev(c Cursor[K, V]) Cursor[K, V] {
	m.checkNav(c)
	switch c.pos {
	case posREnd:
		return c
	case posEnd:
		return m.Last()
	}
	n := c.n
	if n.left != m.sent {
		return m.cursorAt(m.maximum(n.left))
	}
	for n.parent != m.sent && n == n.parent.left {
		n = n.parent
	}
	if n.parent == m.sent {
		return m.REnd()
	}
	return m.cursorAt(n.parent)
}

// End returns the end cursor.
func (m *Map[K, V]) End() Cursor[K, V] { return Cursor[K, V]{m: m, pos: posEnd} }

// REnd returns the reverse-end cursor.
func (m *Map[K, V]) REnd() Cursor[K, V] { return Cursor[K, V]{m: m, pos: posREnd} }

// Nth returns a cursor to the entry with exactly i smaller keys, or the end
// cursor if i is out of range.
func (m *Map[K, V]) Nth(i int) Cursor[K, V] {
	if i < 0 || i >= m.root.size {
		return m.End()
	}
	x := m.root
	for {
		if l := x.left.size; i < l {
			x = x.left
		} else if i == l {
			return m.cursorAt(x)
		} else {
			i -= l + 1
			x = x.right
		}
	}
}

// Rank returns the number of entries with keys smaller than c's. It panics
// with ErrStaleCursor if c's entry has been erased, and reports Len for the
// end cursor and -1 for the reverse-end cursor.
func (m *Map[K, V]) Rank(c Cursor[K, V]) int {
	m.checkNav(c)
	switch c.pos {
	case posEnd:
		return m.root.size
	case posREnd:
		return -1
	}
	r := c.n.left.size
	for x := c.n; x.parent != m.sent; x = x.parent {
		if x == x.parent.right {
			r += x.parent.left.size + 1
		}
	}
	return r
}

// All calls yield for each entry in ascending key order until yield returns
// false. The map must not be mutated during the traversal.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for n := m.firstNode(); n != m.sent; n = m.nextNode(n) {
		if !yield(n.key, n.val) {
			return
		}
	}
}

// Backward calls yield for each entry in descending key order until yield
// returns false. The map must not be mutated during the traversal.
func (m *Map[K, V]) Backward(yield func(key K, value V) bool) {
	for n := m.lastNode(); n != m.sent; n = m.prevNode(n) {
		if !yield(n.key, n.val) {
			return
		}
	}
}

func (m *Map[K, V]) cursorAt(n *node[K, V]) Cursor[K, V] {
	return Cursor[K, V]{m: m, n: n}
}

func (m *Map[K, V]) checkNav(c Cursor[K, V]) {
	if c.m != m {
		panic(errors.AssertionFailedf("ordmap: cursor does not belong to this map"))
	}
	if c.pos == posElem && c.n.parent == c.n {
		panic(ErrStaleCursor)
	}
}

func (m *Map[K, V]) findNode(key K) *node[K, V] {
	x := m.root
	for x != m.sent {
		c := m.cfg.cmp(key, x.key)
		if c == 0 {
			return x
		}
		if c < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}
	return m.sent
}

// getOrInsert finds key's node or inserts a fresh one, reporting which.
func (m *Map[K, V]) getOrInsert(key K, value V) (*node[K, V], bool) {
	y := m.sent
	x := m.root
	less := false
	for x != m.sent {
		c := m.cfg.cmp(key, x.key)
		if c == 0 {
			return x, false
		}
		y = x
		less = c < 0
		if less {
			x = x.left
		} else {
			x = x.right
		}
	}
	z := &node[K, V]{
		left:   m.sent,
		right:  m.sent,
		parent: y,
		size:   1,
		color:  red,
		key:    key,
		val:    value,
	}
	if y == m.sent {
		m.root = z
	} else if less {
		y.left = z
	} else {
		y.right = z
	}
	for p := y; p != m.sent; p = p.parent {
		p.size++
	}
	m.insertFixup(z)
	return z, true
}

func (m *Map[K, V]) insertFixup(z *node[K, V]) {
	for z.parent.color == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right
			if y.color == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					m.rotateLeft(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				m.rotateRight(z.parent.parent)
			}
		} else {
			y := z.parent.parent.left
			if y.color == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					m.rotateRight(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				m.rotateLeft(z.parent.parent)
			}
		}
	}
	m.root.color = black
}

// deleteNode unlinks z, rebalances, destroys z's entry, and marks z stale.
func (m *Map[K, V]) deleteNode(z *node[K, V]) {
	y := z
	yColor := y.color
	var x *node[K, V]
	switch {
	case z.left == m.sent:
		for p := z.parent; p != m.sent; p = p.parent {
			p.size--
		}
		x = z.right
		m.transplant(z, z.right)
	case z.right == m.sent:
		for p := z.parent; p != m.sent; p = p.parent {
			p.size--
		}
		x = z.left
		m.transplant(z, z.left)
	default:
		// Two children: the in-order successor y is spliced out of its own
		// position and relinked into z's, preserving y's identity so cursors
		// addressing it stay valid.
		y = m.minimum(z.right)
		for p := y.parent; p != m.sent; p = p.parent {
			p.size--
		}
		yColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			m.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		m.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
		// z sat on the decrement path above, so its size already accounts
		// for the removal.
		y.size = z.size
	}
	if yColor == black {
		m.deleteFixup(x)
	}
	if m.cfg.destroyKey != nil {
		m.cfg.destroyKey(z.key)
	}
	if m.cfg.destroyVal != nil {
		m.cfg.destroyVal(z.val)
	}
	z.left = nil
	z.right = nil
	z.parent = z // stale marker
}

func (m *Map[K, V]) deleteFixup(x *node[K, V]) {
	for x != m.root && x.color == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color == red {
				w.color = black
				x.parent.color = red
				m.rotateLeft(x.parent)
				w = x.parent.right
			}
			if w.left.color == black && w.right.color == black {
				w.color = red
				x = x.parent
			} else {
				if w.right.color == black {
					w.left.color = black
					w.color = red
					m.rotateRight(w)
					w = x.parent.right
				}
				w.color = x.parent.color
				x.parent.color = black
				w.right.color = black
				m.rotateLeft(x.parent)
				x = m.root
			}
		} else {
			w := x.parent.left
			if w.color == red {
				w.color = black
				x.parent.color = red
				m.rotateRight(x.parent)
				w = x.parent.left
			}
			if w.right.color == black && w.left.color == black {
				w.color = red
				x = x.parent
			} else {
				if w.left.color == black {
					w.right.color = black
					w.color = red
					m.rotateLeft(w)
					w = x.parent.left
				}
				w.color = x.parent.color
				x.parent.color = black
				w.left.color = black
				m.rotateRight(x.parent)
				x = m.root
			}
		}
	}
	x.color = black
}

// transplant replaces the subtree rooted at u with the one rooted at v.
func (m *Map[K, V]) transplant(u, v *node[K, V]) {
	if u.parent == m.sent {
		m.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

// rotateLeft rotates the subtree rooted at x, turning (x a (y b c)) into
// (y (x a b) c), and refreshes the two affected subtree sizes.
func (m *Map[K, V]) rotateLeft(x *node[K, V]) {
	y := x.right
	x.right = y.left
	if y.left != m.sent {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == m.sent {
		m.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
	y.size = x.size
	x.size = x.left.size + x.right.size + 1
}

// rotateRight rotates the subtree rooted at y, turning (y (x a b) c) into
// (x a (y b c)), and refreshes the two affected subtree sizes.
func (m *Map[K, V]) rotateRight(y *node[K, V]) {
	x := y.left
	y.left = x.right
	if x.right != m.sent {
		x.right.parent = y
	}
	x.parent = y.parent
	if y.parent == m.sent {
		m.root = x
	} else if y == y.parent.right {
		y.parent.right = x
	} else {
		y.parent.left = x
	}
	x.right = y
	y.parent = x
	x.size = y.size
	y.size = y.left.size + y.right.size + 1
}

func (m *Map[K, V]) minimum(n *node[K, V]) *node[K, V] {
	for n.left != m.sent {
		n = n.left
	}
	return n
}

func (m *Map[K, V]) maximum(n *node[K, V]) *node[K, V] {
	for n.right != m.sent {
		n = n.right
	}
	return n
}

func (m *Map[K, V]) firstNode() *node[K, V] {
	if m.root == m.sent {
		return m.sent
	}
	return m.minimum(m.root)
}

func (m *Map[K, V]) lastNode() *node[K, V] {
	if m.root == m.sent {
		return m.sent
	}
	return m.maximum(m.root)
}

func (m *Map[K, V]) nextNode(n *node[K, V]) *node[K, V] {
	if n.right != m.sent {
		return m.minimum(n.right)
	}
	for n.parent != m.sent && n == n.parent.right {
		n = n.parent
	}
	return n.parent
}

func (m *Map[K, V]) prevNode(n *node[K, V]) *node[K, V] {
	if n.left != m.sent {
		return m.maximum(n.left)
	}
	for n.parent != m.sent && n == n.parent.left {
		n = n.parent
	}
	return n.parent
}

func (m *Map[K, V]) clearSubtree(n *node[K, V]) {
	if n == m.sent {
		return
	}
	m.clearSubtree(n.left)
	m.clearSubtree(n.right)
	if m.cfg.destroyKey != nil {
		m.cfg.destroyKey(n.key)
	}
	if m.cfg.destroyVal != nil {
		m.cfg.destroyVal(n.val)
	}
	n.left = nil
	n.right = nil
	n.parent = n
}

// cloneSubtree deep-copies src's subtree n into the clone c, attaching
// copied nodes to parent.
func (c *Map[K, V]) cloneSubtree(src *Map[K, V], n, parent *node[K, V]) *node[K, V] {
	if n == src.sent {
		return c.sent
	}
	d := &node[K, V]{
		parent: parent,
		size:   n.size,
		color:  n.color,
		key:    n.key,
		val:    n.val,
	}
	d.left = c.cloneSubtree(src, n.left, d)
	d.right = c.cloneSubtree(src, n.right, d)
	return d
}
