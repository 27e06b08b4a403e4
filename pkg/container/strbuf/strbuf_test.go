// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package strbuf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferAppend(t *testing.T) {
	var b Buffer
	if b.Len() != 0 {
		t.Fatalf("zero buffer has Len %d", b.Len())
	}
	b.AppendString("hello")
	b.AppendByte(',')
	b.Append([]byte(" world"))
	b.AppendRune('!')
	b.AppendRune('é')
	if got := b.String(); got != "hello, world!é" {
		t.Fatalf("String() = %q", got)
	}
	if b.Len() != len("hello, world!é") {
		t.Fatalf("Len = %d", b.Len())
	}
}

func TestBufferAppendf(t *testing.T) {
	var b Buffer
	b.Appendf("%d-%s", 42, "x")
	b.Appendf("/%04x", 255)
	require.Equal(t, "42-x/00ff", b.String())
}

func TestBufferInsertDelete(t *testing.T) {
	var b Buffer
	b.AppendString("held")
	b.Insert(3, "lo wor")
	require.Equal(t, "hello word", b.String())
	b.Insert(9, "l")
	require.Equal(t, "hello world", b.String())
	b.Insert(0, ">")
	b.Insert(b.Len(), "<")
	require.Equal(t, ">hello world<", b.String())

	b.Delete(0, 1)
	b.Delete(b.Len()-1, 1)
	require.Equal(t, "hello world", b.String())
	b.Delete(5, 6)
	require.Equal(t, "hello", b.String())

	require.Panics(t, func() { b.Insert(6, "x") })
	require.Panics(t, func() { b.Insert(-1, "x") })
	require.Panics(t, func() { b.Delete(4, 2) })
	require.Panics(t, func() { b.Delete(-1, 1) })
}

func TestBufferInsertf(t *testing.T) {
	var b Buffer
	b.AppendString("ab")
	b.Insertf(1, "[%d]", 7)
	require.Equal(t, "a[7]b", b.String())
	b.Insertf(0, "%s", "x")
	b.Insertf(b.Len(), "%s", "y")
	require.Equal(t, "xa[7]by", b.String())
}

func TestBufferReserveShrinkClear(t *testing.T) {
	b := New(64)
	require.Zero(t, b.Len())
	require.GreaterOrEqual(t, b.Cap(), 64)

	b.AppendString("data")
	b.Reserve(256)
	require.Equal(t, "data", b.String())
	require.GreaterOrEqual(t, b.Cap(), 256)

	b.Shrink()
	require.Equal(t, 4, b.Cap())
	require.Equal(t, "data", b.String())

	b.Clear()
	require.Zero(t, b.Len())
	require.Equal(t, 4, b.Cap())
	b.Shrink()
	require.Zero(t, b.Cap())
}

func TestBufferClone(t *testing.T) {
	var b Buffer
	b.AppendString("original")
	c := b.Clone()
	b.AppendString(" changed")
	require.Equal(t, "original", c.String())

	// Bytes aliases the buffer, Clone does not.
	c.Bytes()[0] = 'O'
	require.Equal(t, "Original", c.String())
	require.True(t, strings.HasPrefix(b.String(), "original"))
}

func BenchmarkBufferAppend(b *testing.B) {
	const count = 1024
	vals := make([][]byte, count)
	for i := range vals {
		vals[i] = []byte(fmt.Sprint(i))
	}

	b.Run("buffer", func(b *testing.B) {
		var buf Buffer
		for i := 0; i < b.N; i++ {
			if buf.Len() > 1<<20 {
				buf.Clear()
			}
			buf.Append(vals[i%count])
		}
	})

	b.Run("builder", func(b *testing.B) {
		var sb strings.Builder
		for i := 0; i < b.N; i++ {
			if sb.Len() > 1<<20 {
				sb.Reset()
			}
			sb.Write(vals[i%count])
		}
	})
}
