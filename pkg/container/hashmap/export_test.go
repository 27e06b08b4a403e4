// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package hashmap

import (
	"math/bits"

	"github.com/cockroachdb/errors"
)

// CheckInvariants validates the table's internal invariants. Test use only.
func (m *Map[K, V]) CheckInvariants() error {
	n := len(m.slots)
	if n != 0 && bits.OnesCount(uint(n)) != 1 {
		return errors.Newf("capacity %d is not a power of two", n)
	}
	if n == 0 {
		if m.size != 0 {
			return errors.Newf("size %d with no bucket array", m.size)
		}
		return nil
	}
	if m.mask != uint64(n-1) {
		return errors.Newf("mask %d does not match capacity %d", m.mask, n)
	}
	if m.size > m.threshold() {
		return errors.Newf("size %d exceeds load factor threshold %d of capacity %d",
			m.size, m.threshold(), n)
	}
	occupied := 0
	for i := range m.slots {
		s := &m.slots[i]
		if s.dist == 0 {
			continue
		}
		occupied++
		h := m.cfg.hash(m.seed, s.key)
		if h != s.hash {
			return errors.Newf("slot %d: cached hash %x differs from recomputed %x", i, s.hash, h)
		}
		home := h & m.mask
		// A saturated dist byte is a sticky overestimate and implies nothing
		// about the slot's true distance; exact bytes must match it.
		if s.dist != distSaturated {
			if (home+uint64(s.dist)-1)&m.mask != uint64(i) {
				return errors.Newf("slot %d: displacement %d inconsistent with home %d", i, s.dist, home)
			}
		}
		if j := m.find(h, s.key); j != i {
			return errors.Newf("slot %d: key not reachable by probing (find returned %d)", i, j)
		}
	}
	if occupied != m.size {
		return errors.Newf("found %d occupied slots but size is %d", occupied, m.size)
	}
	return nil
}

// Generation exposes the cursor-invalidation counter. Test use only.
func (m *Map[K, V]) Generation() uint64 { return m.gen }
