// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

// Package strbuf provides a growable byte buffer with positional insertion
// and deletion, including fmt-style formatted variants.
package strbuf

import (
	"fmt"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Buffer is a dynamic byte string. The zero value is an empty buffer ready
// for use. Unlike strings.Builder, a Buffer supports insertion and deletion
// at arbitrary byte offsets, and Clear reuses the allocation.
type Buffer struct {
	buf []byte
}

// New returns an empty buffer with capacity for at least n bytes.
func New(n int) *Buffer {
	return &Buffer{buf: make([]byte, 0, n)}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the capacity of the underlying array.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Append appends raw bytes.
func (b *Buffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// AppendString appends s.
func (b *Buffer) AppendString(s string) {
	b.buf = append(b.buf, s...)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.buf = append(b.buf, c)
}

// AppendRune appends the UTF-8 encoding of r.
func (b *Buffer) AppendRune(r rune) {
	b.buf = utf8.AppendRune(b.buf, r)
}

// Appendf appends the fmt-formatted arguments.
func (b *Buffer) Appendf(format string, args ...interface{}) {
	b.buf = fmt.Appendf(b.buf, format, args...)
}

// Insert places s at byte offset i, shifting later bytes up. i may equal
// Len, in which case Insert is AppendString.
func (b *Buffer) Insert(i int, s string) {
	if i < 0 || i > len(b.buf) {
		panic(errors.AssertionFailedf("strbuf: insert offset %d out of range [0, %d]", i, len(b.buf)))
	}
	b.buf = append(b.buf, s...)
	copy(b.buf[i+len(s):], b.buf[i:])
	copy(b.buf[i:], s)
}

// Insertf places the fmt-formatted arguments at byte offset i.
func (b *Buffer) Insertf(i int, format string, args ...interface{}) {
	if i < 0 || i > len(b.buf) {
		panic(errors.AssertionFailedf("strbuf: insert offset %d out of range [0, %d]", i, len(b.buf)))
	}
	old := len(b.buf)
	b.buf = fmt.Appendf(b.buf, format, args...)
	rotate(b.buf[i:], old-i)
}

// Delete removes n bytes starting at offset i.
func (b *Buffer) Delete(i, n int) {
	if i < 0 || n < 0 || i+n > len(b.buf) {
		panic(errors.AssertionFailedf("strbuf: delete range [%d, %d) out of range [0, %d]", i, i+n, len(b.buf)))
	}
	b.buf = append(b.buf[:i], b.buf[i+n:]...)
}

// Reserve grows the capacity to at least n bytes. It never shrinks.
func (b *Buffer) Reserve(n int) {
	if n <= cap(b.buf) {
		return
	}
	grown := make([]byte, len(b.buf), n)
	copy(grown, b.buf)
	b.buf = grown
}

// Shrink reduces the capacity to the current length, releasing the backing
// array entirely when the buffer is empty.
func (b *Buffer) Shrink() {
	if len(b.buf) == cap(b.buf) {
		return
	}
	if len(b.buf) == 0 {
		b.buf = nil
		return
	}
	shrunk := make([]byte, len(b.buf))
	copy(shrunk, b.buf)
	b.buf = shrunk
}

// String returns a copy of the contents as a string.
func (b *Buffer) String() string { return string(b.buf) }

// Bytes returns the contents. The slice aliases the buffer's memory and is
// valid only until the next mutation.
func (b *Buffer) Bytes() []byte { return b.buf }

// Clear empties the buffer, keeping the capacity.
func (b *Buffer) Clear() { b.buf = b.buf[:0] }

// Close releases the backing array.
func (b *Buffer) Close() { b.buf = nil }

// Clone returns a buffer with a freshly allocated copy of the contents.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{}
	if len(b.buf) > 0 {
		c.buf = append([]byte(nil), b.buf...)
	}
	return c
}

// rotate moves the trailing len(p)-k bytes of p in front of the leading k
// bytes, preserving the order within each run.
func rotate(p []byte, k int) {
	reverse(p[:k])
	reverse(p[k:])
	reverse(p)
}

func reverse(p []byte) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
