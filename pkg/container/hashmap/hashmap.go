// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package hashmap provides an unordered map and set keyed by an explicit
// comparator and hasher.
//
// The table is an open-addressing Robin Hood hash table over a power-of-two
// bucket array. Each occupied slot records its displacement from its home
// slot; lookups stop as soon as a resident's exactly-known displacement
// drops below the probe's, deletions repair the probe invariant by shifting
// displaced successors backward into the freed slot, and no tombstones are
// ever left behind. Displacements deeper than the metadata can record are
// saturated rather than forbidden, so pathological hash distributions slow
// probing down but never fail. Iteration visits slots in bucket-index order,
// which bears no relation to insertion order and is stable only between
// entry-moving operations.
//
// Because insertion can relocate residents (Robin Hood stealing) and
// deletion shifts them backward, any operation that adds or removes an entry
// may move other entries. The map therefore carries a generation counter:
// every entry-moving operation bumps it, outstanding cursors are stamped
// with it, and a cursor whose stamp no longer matches fails dereference with
// ErrStaleCursor rather than reading a relocated slot.
package hashmap

import (
	"math/rand"

	"github.com/JacksonAllan/CC-sub002/pkg/container/traits"
	"github.com/cockroachdb/errors"
)

const (
	// defaultMaxLoadFactor bounds size/capacity before a grow is forced.
	defaultMaxLoadFactor = 0.875
	// minCapacity is the smallest non-zero bucket array length.
	minCapacity = 8
	// maxDist is the largest displacement recorded exactly. A deeper
	// displacement is recorded as distSaturated: the exact value is lost, so
	// saturated slots are excluded from displacement comparisons and probes
	// never early-exit on them. Degenerate hash functions (many keys sharing
	// one hash) therefore stay correct, degrading to linear scans along the
	// saturated run instead of forcing unbounded growth.
	maxDist       = 254
	distSaturated = 255
)

// slot is a single bucket. dist is 0 for an empty slot, otherwise the
// displacement from the key's home slot plus one, so a home-positioned entry
// has dist 1.
type slot[K, V any] struct {
	dist uint8
	hash uint64
	key  K
	val  V
}

// MapConfig carries the key traits for a Map. Construct with NewMapConfig,
// refine with the With* methods, then build maps with MakeMap. A config is a
// value and may be reused to build any number of maps.
type MapConfig[K, V any] struct {
	cmp        traits.CompareFn[K]
	hash       traits.HashFn[K]
	destroyKey traits.DestroyFn[K]
	destroyVal traits.DestroyFn[V]
	maxLoad    float64
}

// NewMapConfig returns a config for maps keyed by cmp and hash.
func NewMapConfig[K, V any](cmp traits.CompareFn[K], hash traits.HashFn[K]) MapConfig[K, V] {
	return MapConfig[K, V]{cmp: cmp, hash: hash, maxLoad: defaultMaxLoadFactor}
}

// WithMaxLoadFactor overrides the default maximum load factor. f must be in
// (0, 1].
func (c MapConfig[K, V]) WithMaxLoadFactor(f float64) MapConfig[K, V] {
	c.maxLoad = f
	return c
}

// WithKeyDestructor installs a destructor run on keys evicted by Delete,
// DeleteCursor, Clear, and Close.
func (c MapConfig[K, V]) WithKeyDestructor(d traits.DestroyFn[K]) MapConfig[K, V] {
	c.destroyKey = d
	return c
}

// WithValueDestructor installs a destructor run on values evicted by Delete,
// DeleteCursor, Clear, Close, and value replacement in Upsert.
func (c MapConfig[K, V]) WithValueDestructor(d traits.DestroyFn[V]) MapConfig[K, V] {
	c.destroyVal = d
	return c
}

// MakeMap builds an empty map. No bucket array is allocated until the first
// insertion or reservation.
func (c MapConfig[K, V]) MakeMap() *Map[K, V] {
	if c.cmp == nil || c.hash == nil {
		panic(errors.AssertionFailedf("hashmap: config requires a comparator and a hasher"))
	}
	if c.maxLoad <= 0 || c.maxLoad > 1 {
		panic(errors.AssertionFailedf("hashmap: max load factor %f outside (0, 1]", c.maxLoad))
	}
	return &Map[K, V]{cfg: c, seed: rand.Uint64()}
}

// Map is an unordered map from K to V. Use MapConfig.MakeMap to construct
// one; the zero value is not usable. A Map is not goroutine-safe, and its
// backing storage is owned exclusively by the handle returned from MakeMap:
// use Clone for an independent copy rather than copying the struct.
type Map[K, V any] struct {
	cfg   MapConfig[K, V]
	slots []slot[K, V] // len is 0 or a power of two
	mask  uint64
	size  int
	seed  uint64
	gen   uint64
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.size }

// Cap returns the current bucket array length.
func (m *Map[K, V]) Cap() int { return len(m.slots) }

// threshold returns the largest size the current capacity admits.
func (m *Map[K, V]) threshold() int {
	return thresholdFor(len(m.slots), m.cfg.maxLoad)
}

func thresholdFor(capacity int, maxLoad float64) int {
	return int(float64(capacity) * maxLoad)
}

// Upsert inserts key with value, replacing (and destroying) the previous
// value if key is already present. It returns a cursor to the entry.
func (m *Map[K, V]) Upsert(key K, value V) Cursor[K, V] {
	m.ensureHeadroom(m.size + 1)
	h := m.cfg.hash(m.seed, key)
	if i := m.find(h, key); i >= 0 {
		if m.cfg.destroyVal != nil {
			m.cfg.destroyVal(m.slots[i].val)
		}
		m.slots[i].val = value
		return m.cursorAt(i)
	}
	i := m.insertNew(h, key, value)
	m.size++
	return m.cursorAt(i)
}

// Get returns a cursor to the entry for key, or the null cursor if absent.
// Get never allocates and never mutates the map.
func (m *Map[K, V]) Get(key K) Cursor[K, V] {
	if m.size == 0 {
		return Cursor[K, V]{}
	}
	if i := m.find(m.cfg.hash(m.seed, key), key); i >= 0 {
		return m.cursorAt(i)
	}
	return Cursor[K, V]{}
}

// GetOrInsert returns the existing entry for key if present, otherwise
// inserts key with value. The boolean reports whether an insertion happened.
// Capacity headroom for a hypothetical insert is restored before the lookup,
// so outstanding cursors may be invalidated even when the key is found.
func (m *Map[K, V]) GetOrInsert(key K, value V) (Cursor[K, V], bool) {
	m.ensureHeadroom(m.size + 1)
	h := m.cfg.hash(m.seed, key)
	if i := m.find(h, key); i >= 0 {
		return m.cursorAt(i), false
	}
	i := m.insertNew(h, key, value)
	m.size++
	return m.cursorAt(i), true
}

// Delete removes the entry for key, running the key and value destructors,
// and reports whether an entry was found.
func (m *Map[K, V]) Delete(key K) bool {
	if m.size == 0 {
		return false
	}
	i := m.find(m.cfg.hash(m.seed, key), key)
	if i < 0 {
		return false
	}
	m.deleteAt(i)
	return true
}

// DeleteCursor removes the entry addressed by c and returns a cursor to the
// next entry in bucket order, or the end cursor if none remain. It returns
// ErrStaleCursor if c has been invalidated, and an assertion failure if c is
// the null or end cursor or belongs to another map.
func (m *Map[K, V]) DeleteCursor(c Cursor[K, V]) (Cursor[K, V], error) {
	if c.m != m || c.end {
		return Cursor[K, V]{}, errors.AssertionFailedf("hashmap: cannot delete through a null or end cursor")
	}
	if c.gen != m.gen {
		return Cursor[K, V]{}, ErrStaleCursor
	}
	i := c.idx
	m.deleteAt(i)
	// Backward shifting pulls the erased entry's probe-chain successor into
	// slot i, so the logically next entry is the first occupied slot at or
	// after i.
	for ; i < len(m.slots); i++ {
		if m.slots[i].dist != 0 {
			return m.cursorAt(i), nil
		}
	}
	return m.End(), nil
}

// Reserve grows the bucket array, if necessary, so that n entries fit
// without further rehashing. It never shrinks.
func (m *Map[K, V]) Reserve(n int) {
	m.ensureHeadroom(n)
}

// Shrink reduces the bucket array to the smallest capacity that satisfies
// the load factor invariant for the current size. An empty map releases its
// bucket array entirely.
func (m *Map[K, V]) Shrink() {
	if m.size == 0 {
		if m.slots != nil {
			m.slots = nil
			m.mask = 0
			m.gen++
		}
		return
	}
	newCap := minCapacity
	for thresholdFor(newCap, m.cfg.maxLoad) < m.size {
		newCap <<= 1
	}
	if newCap != len(m.slots) {
		m.rehash(newCap)
	}
}

// Clear removes every entry, running destructors, without releasing the
// bucket array.
func (m *Map[K, V]) Clear() {
	for i := range m.slots {
		if m.slots[i].dist != 0 {
			if m.cfg.destroyKey != nil {
				m.cfg.destroyKey(m.slots[i].key)
			}
			if m.cfg.destroyVal != nil {
				m.cfg.destroyVal(m.slots[i].val)
			}
			m.slots[i] = slot[K, V]{}
		}
	}
	m.size = 0
	m.gen++
}

// Close clears the map and releases the bucket array, returning the map to
// its initial empty state. Close is idempotent, and a closed map remains
// usable.
func (m *Map[K, V]) Close() {
	m.Clear()
	m.slots = nil
	m.mask = 0
}

// Clone returns a map with a freshly allocated bucket array holding shallow
// copies of the entries. The clone shares the original's traits and seed;
// destructors will run in both the original and the clone, so cloned maps
// holding owned resources need value types that tolerate double destruction
// or a destructor-free config.
func (m *Map[K, V]) Clone() *Map[K, V] {
	// The generation stamp carries over so the counter means the same thing
	// on both handles; cursors still never transfer, being bound to the map
	// pointer they were minted from.
	c := &Map[K, V]{cfg: m.cfg, mask: m.mask, size: m.size, seed: m.seed, gen: m.gen}
	if m.slots != nil {
		c.slots = make([]slot[K, V], len(m.slots))
		copy(c.slots, m.slots)
	}
	return c
}

// First returns a cursor to the first entry in bucket order, or the end
// cursor if the map is empty.
func (m *Map[K, V]) First() Cursor[K, V] {
	for i := range m.slots {
		if m.slots[i].dist != 0 {
			return m.cursorAt(i)
		}
	}
	return m.End()
}

// Next returns a cursor to the entry following c in bucket order, or the end
// cursor. Next of the end cursor is the end cursor. Next panics with
// ErrStaleCursor if c has been invalidated.
func (m *Map[K, V]) Next(c Cursor[K, V]) Cursor[K, V] {
	if c.m != m {
		panic(errors.AssertionFailedf("hashmap: cursor does not belong to this map"))
	}
	if c.end {
		return c
	}
	if c.gen != m.gen {
		panic(ErrStaleCursor)
	}
	for i := c.idx + 1; i < len(m.slots); i++ {
		if m.slots[i].dist != 0 {
			return m.cursorAt(i)
		}
	}
	return m.End()
}

// End returns the end cursor.
func (m *Map[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{m: m, end: true}
}

// All calls yield for each entry in bucket order until yield returns false.
// The map must not be mutated during the traversal.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for i := range m.slots {
		if m.slots[i].dist != 0 {
			if !yield(m.slots[i].key, m.slots[i].val) {
				return
			}
		}
	}
}

// ensureHeadroom grows the bucket array so that n entries satisfy the load
// factor invariant.
func (m *Map[K, V]) ensureHeadroom(n int) {
	if n <= m.threshold() {
		return
	}
	newCap := minCapacity
	for thresholdFor(newCap, m.cfg.maxLoad) < n {
		newCap <<= 1
	}
	m.rehash(newCap)
}

// find returns the slot index of key, or -1.
func (m *Map[K, V]) find(h uint64, key K) int {
	if len(m.slots) == 0 {
		return -1
	}
	i := h & m.mask
	d := uint(1)
	// The probe count bound makes termination unconditional: a table at load
	// factor 1.0 can have no empty slot, and a fully saturated run offers no
	// early exit.
	for probes := 0; probes < len(m.slots); probes++ {
		s := &m.slots[i]
		if s.dist == 0 {
			return -1
		}
		if s.dist != distSaturated && uint(s.dist) < d {
			// A resident nearer its home than we are to ours: with Robin Hood
			// ordering the key cannot appear further along. A saturated slot
			// carries no exact displacement and never justifies stopping.
			return -1
		}
		if s.hash == h && m.cfg.cmp(s.key, key) == 0 {
			return int(i)
		}
		i = (i + 1) & m.mask
		d++
	}
	return -1
}

// insertNew places an entry known to be absent and returns its slot index.
// The bucket array must already have headroom.
func (m *Map[K, V]) insertNew(h uint64, key K, value V) int {
	m.gen++ // placement may relocate residents
	return m.place(h, key, value)
}

// place runs the Robin Hood insertion loop for an absent key and returns the
// index at which the new key landed. Displacements beyond maxDist are
// recorded as distSaturated and saturated residents are never stolen, so
// placement always terminates: the probe index advances one slot per
// iteration and headroom guarantees an empty slot on its path.
func (m *Map[K, V]) place(h uint64, key K, value V) int {
	e := slot[K, V]{hash: h, key: key, val: value}
	i := h & m.mask
	d := uint(1)
	idx := -1
	for {
		s := &m.slots[i]
		if s.dist == 0 {
			e.dist = distFor(d)
			*s = e
			if idx < 0 {
				idx = int(i)
			}
			return idx
		}
		if s.dist != distSaturated && uint(s.dist) < d {
			// Steal the slot: the resident is nearer its home than the entry
			// in hand, so the entry in hand takes the slot and the resident
			// continues probing.
			e.dist = distFor(d)
			e, *s = *s, e
			if idx < 0 {
				idx = int(i)
			}
			d = uint(e.dist)
		}
		i = (i + 1) & m.mask
		d++
	}
}

// distFor encodes a probe distance into a slot's dist byte.
func distFor(d uint) uint8 {
	if d > maxDist {
		return distSaturated
	}
	return uint8(d)
}

// deleteAt destroys the entry at slot i and repairs the probe invariant by
// shifting displaced successors backward into the freed slot.
func (m *Map[K, V]) deleteAt(i int) {
	s := &m.slots[i]
	if m.cfg.destroyKey != nil {
		m.cfg.destroyKey(s.key)
	}
	if m.cfg.destroyVal != nil {
		m.cfg.destroyVal(s.val)
	}
	j := uint64(i)
	for {
		n := (j + 1) & m.mask
		next := &m.slots[n]
		if next.dist <= 1 {
			// Empty or home-positioned: the chain of displaced entries ends.
			break
		}
		m.slots[j] = *next
		if next.dist != distSaturated {
			m.slots[j].dist = next.dist - 1
		}
		// A saturated displacement stays saturated: the exact value is lost,
		// and overestimating a displacement is always safe for probing.
		j = n
	}
	m.slots[j] = slot[K, V]{}
	m.size--
	m.gen++
}

// rehash redistributes every live entry into a bucket array of length
// newCap, which must be a power of two with headroom for the current size.
func (m *Map[K, V]) rehash(newCap int) {
	old := m.slots
	m.slots = make([]slot[K, V], newCap)
	m.mask = uint64(newCap - 1)
	for i := range old {
		if old[i].dist != 0 {
			m.place(old[i].hash, old[i].key, old[i].val)
		}
	}
	m.gen++
}

func (m *Map[K, V]) cursorAt(i int) Cursor[K, V] {
	return Cursor[K, V]{m: m, idx: i, gen: m.gen}
}
