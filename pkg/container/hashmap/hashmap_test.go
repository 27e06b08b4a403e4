// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package hashmap

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/JacksonAllan/CC-sub002/pkg/container/traits"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func intMapConfig() MapConfig[int, int] {
	return NewMapConfig[int, int](traits.Compare[int], traits.HashInt[int])
}

func TestMapUpsertGet(t *testing.T) {
	m := intMapConfig().MakeMap()
	if c := m.Get(1); !c.Null() {
		t.Fatal("expected null cursor from empty map")
	}
	c := m.Upsert(1, 10)
	if !c.Ok() || c.Key() != 1 || c.Value() != 10 {
		t.Fatalf("unexpected cursor after insert: key=%v value=%v", c.Key(), c.Value())
	}
	if m.Len() != 1 {
		t.Fatalf("expected size 1, got %d", m.Len())
	}
	// Replace semantics: same key keeps its slot and size.
	m.Upsert(1, 20)
	if m.Len() != 1 {
		t.Fatalf("expected size 1 after replacement, got %d", m.Len())
	}
	if got := m.Get(1).Value(); got != 20 {
		t.Fatalf("expected replaced value 20, got %d", got)
	}
	require.NoError(t, m.CheckInvariants())
}

func TestMapLoadFactorScenario(t *testing.T) {
	m := NewMapConfig[int, int](traits.Compare[int], traits.HashInt[int]).
		WithMaxLoadFactor(0.8).
		MakeMap()
	for i := 1; i <= 1000; i++ {
		m.Upsert(i, i*10)
		require.NoError(t, m.CheckInvariants())
	}
	require.Equal(t, 1000, m.Len())
	require.GreaterOrEqual(t, float64(m.Cap())*0.8, 1000.0)
	require.Equal(t, 5000, m.Get(500).Value())

	for i := 2; i <= 1000; i += 2 {
		require.True(t, m.Delete(i))
	}
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, 500, m.Len())
	require.True(t, m.Get(2).Null())
	require.True(t, m.Get(1).Ok())
}

func TestMapGetOrInsert(t *testing.T) {
	m := intMapConfig().MakeMap()
	c, inserted := m.GetOrInsert(7, 70)
	require.True(t, inserted)
	require.Equal(t, 70, c.Value())
	c, inserted = m.GetOrInsert(7, 700)
	require.False(t, inserted)
	require.Equal(t, 70, c.Value())
	require.Equal(t, 1, m.Len())
}

func TestMapRandomOps(t *testing.T) {
	const keyRange = 2048
	const ops = 20000
	rng := rand.New(rand.NewSource(2))
	m := intMapConfig().MakeMap()
	ref := map[int]int{}
	for i := 0; i < ops; i++ {
		k := rng.Intn(keyRange)
		switch rng.Intn(3) {
		case 0, 1:
			v := rng.Int()
			m.Upsert(k, v)
			ref[k] = v
		case 2:
			_, refOk := ref[k]
			require.Equal(t, refOk, m.Delete(k))
			delete(ref, k)
		}
		if i%1000 == 0 {
			require.NoError(t, m.CheckInvariants())
		}
	}
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, len(ref), m.Len())

	got := map[int]int{}
	m.All(func(k, v int) bool {
		got[k] = v
		return true
	})
	if diff := pretty.Diff(ref, got); len(diff) > 0 {
		t.Fatalf("contents diverge from reference:\n%v", diff)
	}
}

func TestMapDeleteCursorTraversal(t *testing.T) {
	m := intMapConfig().MakeMap()
	for i := 0; i < 100; i++ {
		m.Upsert(i, i)
	}
	seen := map[int]bool{}
	c := m.First()
	for !c.End() {
		k := c.Key()
		require.False(t, seen[k], "revisited erased key %d", k)
		seen[k] = true
		var err error
		c, err = m.DeleteCursor(c)
		require.NoError(t, err)
	}
	require.Equal(t, 100, len(seen))
	require.Zero(t, m.Len())
	require.NoError(t, m.CheckInvariants())
}

func TestMapCursorInvalidation(t *testing.T) {
	m := intMapConfig().MakeMap()
	c := m.Upsert(1, 10)
	require.True(t, c.Ok())
	require.NoError(t, c.Err())

	// Any entry-moving operation invalidates outstanding cursors.
	m.Reserve(1 << 10)
	require.False(t, c.Ok())
	require.ErrorIs(t, c.Err(), ErrStaleCursor)
	require.PanicsWithError(t, ErrStaleCursor.Error(), func() { _ = c.Value() })

	_, err := m.DeleteCursor(c)
	require.ErrorIs(t, err, ErrStaleCursor)

	// A value replacement moves nothing and preserves cursors.
	c = m.Get(1)
	m.Upsert(1, 20)
	require.True(t, c.Ok())
	require.Equal(t, 20, c.Value())
}

func TestMapReserveShrink(t *testing.T) {
	m := intMapConfig().MakeMap()
	m.Reserve(1000)
	capBefore := m.Cap()
	gen := m.Generation()
	for i := 0; i < 1000; i++ {
		m.Upsert(i, i)
	}
	require.Equal(t, capBefore, m.Cap(), "reserve should preempt rehashing")

	for i := 10; i < 1000; i++ {
		m.Delete(i)
	}
	m.Shrink()
	require.Less(t, m.Cap(), capBefore)
	require.Greater(t, m.Generation(), gen)
	require.NoError(t, m.CheckInvariants())
	for i := 0; i < 10; i++ {
		require.True(t, m.Get(i).Ok())
	}

	m.Clear()
	m.Shrink()
	require.Zero(t, m.Cap())
}

func TestMapDestructors(t *testing.T) {
	destroyedKeys := 0
	destroyedVals := 0
	m := NewMapConfig[int, int](traits.Compare[int], traits.HashInt[int]).
		WithKeyDestructor(func(int) { destroyedKeys++ }).
		WithValueDestructor(func(int) { destroyedVals++ }).
		MakeMap()

	m.Upsert(1, 10)
	m.Upsert(1, 20) // replacement destroys the old value only
	require.Equal(t, 0, destroyedKeys)
	require.Equal(t, 1, destroyedVals)

	m.Delete(1)
	require.Equal(t, 1, destroyedKeys)
	require.Equal(t, 2, destroyedVals)

	for i := 0; i < 10; i++ {
		m.Upsert(i, i)
	}
	m.Clear()
	require.Equal(t, 11, destroyedKeys)
	require.Equal(t, 12, destroyedVals)
	require.Zero(t, m.Len())
	require.NotZero(t, m.Cap(), "clear must keep the bucket array")

	m.Upsert(1, 1)
	m.Close()
	require.Zero(t, m.Cap())
	require.Equal(t, 12, destroyedKeys)
	m.Close() // idempotent
	require.Equal(t, 12, destroyedKeys)
}

func TestMapClone(t *testing.T) {
	m := intMapConfig().MakeMap()
	for i := 0; i < 100; i++ {
		m.Upsert(i, i)
	}
	clone := m.Clone()
	require.NoError(t, clone.CheckInvariants())
	require.Equal(t, m.Len(), clone.Len())
	require.Equal(t, m.Generation(), clone.Generation())

	clone.Delete(0)
	clone.Upsert(1000, 1000)
	require.True(t, m.Get(0).Ok(), "clone mutation must not affect the original")
	require.True(t, m.Get(1000).Null())
	require.NoError(t, m.CheckInvariants())
	require.NoError(t, clone.CheckInvariants())
}

func TestMapCollidingHasher(t *testing.T) {
	// A hasher may legally send every key to one bucket; once more than 254
	// keys share a home slot the displacement metadata saturates. The table
	// must keep working (linearly), not grow without bound.
	const n = 400
	m := NewMapConfig[int, int](traits.Compare[int], func(seed uint64, k int) uint64 {
		return seed
	}).MakeMap()
	for i := 0; i < n; i++ {
		m.Upsert(i, i*10)
	}
	require.Equal(t, n, m.Len())
	require.Equal(t, 512, m.Cap(), "growth must stay load-factor driven")
	require.NoError(t, m.CheckInvariants())
	for i := 0; i < n; i++ {
		c := m.Get(i)
		require.True(t, c.Ok(), "key %d unreachable", i)
		require.Equal(t, i*10, c.Value())
	}
	require.True(t, m.Get(n).Null())

	// Replacement and uniqueness hold through saturated runs.
	m.Upsert(300, -1)
	require.Equal(t, n, m.Len())
	require.Equal(t, -1, m.Get(300).Value())

	for i := 0; i < n; i += 2 {
		require.True(t, m.Delete(i))
	}
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, n/2, m.Len())
	for i := 0; i < n; i++ {
		require.Equal(t, i%2 == 1, m.Get(i).Ok(), "key %d after erasure", i)
	}

	// Cursor-driven erasure drains the rest without revisits.
	seen := map[int]bool{}
	c := m.First()
	for !c.End() {
		k := c.Key()
		require.False(t, seen[k])
		seen[k] = true
		var err error
		c, err = m.DeleteCursor(c)
		require.NoError(t, err)
	}
	require.Equal(t, n/2, len(seen))
	require.Zero(t, m.Len())
	require.NoError(t, m.CheckInvariants())
}

func TestMapFullTableMiss(t *testing.T) {
	// At max load factor 1.0 the table can hold no empty slot, so a lookup
	// for a missing key has neither an empty slot nor, under a constant
	// hasher, an early exit to stop at. Lookups must still terminate.
	m := NewMapConfig[int, int](traits.Compare[int], func(seed uint64, k int) uint64 {
		return seed
	}).WithMaxLoadFactor(1.0).MakeMap()
	m.Reserve(8)
	for i := 0; i < m.Cap(); i++ {
		m.Upsert(i, i)
	}
	require.Equal(t, m.Cap(), m.Len())
	require.True(t, m.Get(1000).Null())
	require.False(t, m.Delete(1000))
	require.NoError(t, m.CheckInvariants())
}

func TestStringMapHeterogeneousKeys(t *testing.T) {
	m := NewMapConfig[string, int](traits.Compare[string], traits.HashString).MakeMap()
	// Insert with a key built from one byte-sequence instance, look up with a
	// distinct but equal instance.
	one := []byte("apple")
	two := append([]byte(nil), "apple"...)
	c := UpsertBytes(m, one, 1)
	require.True(t, c.Ok())
	require.Equal(t, 1, m.Len())
	require.Equal(t, 1, GetBytes(m, two).Value())
	require.Equal(t, 1, m.Get("apple").Value())

	_, inserted := GetOrInsertBytes(m, two, 99)
	require.False(t, inserted)
	require.Equal(t, 1, m.Len())

	// The lookup path must not allocate.
	allocs := testing.AllocsPerRun(100, func() {
		if !GetBytes(m, two).Ok() {
			panic("lost key")
		}
	})
	require.Zero(t, allocs)

	require.True(t, DeleteBytes(m, two))
	require.True(t, m.Get("apple").Null())
	require.NoError(t, m.CheckInvariants())
}

func BenchmarkMapGet(b *testing.B) {
	const count = 1024
	m := intMapConfig().MakeMap()
	for i := 0; i < count; i++ {
		m.Upsert(i, i)
	}

	b.Run("hashmap", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if !m.Get(i % count).Ok() {
				b.Fatal("missing key")
			}
		}
	})

	b.Run("gomap", func(b *testing.B) {
		ref := make(map[int]int, count)
		for i := 0; i < count; i++ {
			ref[i] = i
		}
		for i := 0; i < b.N; i++ {
			if _, ok := ref[i%count]; !ok {
				b.Fatal("missing key")
			}
		}
	})
}

func BenchmarkMapUpsertDelete(b *testing.B) {
	for _, count := range []int{16, 1024, 65536} {
		b.Run(fmt.Sprint(count), func(b *testing.B) {
			m := intMapConfig().MakeMap()
			for i := 0; i < count; i++ {
				m.Upsert(i, i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				k := i % count
				m.Delete(k)
				m.Upsert(k, k)
			}
		})
	}
}
