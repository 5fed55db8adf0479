// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"encoding/binary"

	"github.com/cznic/mathutil"
)

// WordSize is the size, in bytes, of a machine word. Headers are exactly
// one word; word-view addresses must be a multiple of WordSize.
const WordSize = 4

// Heap is a flat, fixed-size byte buffer addressed by 32-bit virtual byte
// offsets. It is deliberately dumb: it knows nothing about objects, headers
// or free lists, only bytes and words. All structural discipline is the
// Allocator's job.
//
// A Heap is not safe for concurrent use; callers driving a MemoryManager
// from more than one goroutine must serialize access themselves.
type Heap struct {
	buf []byte
}

// NewHeap allocates a zero-initialized Heap of size bytes.
func NewHeap(size uint32) *Heap {
	return &Heap{buf: make([]byte, size)}
}

// Size returns the heap's size in bytes.
func (h *Heap) Size() uint32 { return uint32(len(h.buf)) }

// Reset zeroes the entire buffer. It does not reinstall any free-list
// bookkeeping; that is the Allocator's responsibility on its own Reset.
func (h *Heap) Reset() {
	for i := range h.buf {
		h.buf[i] = 0
	}
}

// ByteAt returns the byte at offset. Out-of-range offsets are the caller's
// responsibility: the heap performs no bounds checking beyond what the Go
// runtime does for a slice index (a panic on out-of-range access).
func (h *Heap) ByteAt(offset uint32) byte { return h.buf[offset] }

// SetByteAt writes a single byte at offset.
func (h *Heap) SetByteAt(offset uint32, v byte) { h.buf[offset] = v }

// ReadWord reads the little-endian machine word at addr. addr need not be
// word-aligned; unaligned reads are the caller's responsibility.
func (h *Heap) ReadWord(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(h.buf[addr : addr+4])
}

// WriteWord writes v as a little-endian machine word at addr.
func (h *Heap) WriteWord(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(h.buf[addr:addr+4], v)
}

// ToVirtual is the inverse of a host word pointer lookup. Go never exposes a
// host pointer distinct from a virtual address — there is no separate
// address space to translate out of — so this is the identity function,
// kept only so the Heap/Allocator contract described in the design mirrors
// the translate-host-pointer-to-virtual-address operation the original
// implementation needed.
func (h *Heap) ToVirtual(addr uint32) uint32 { return addr }

// Remaining returns the number of bytes between addr and the end of the
// heap, floored at 0 for an addr already past the end. Used by
// MarkCompactGC.relocate to compute the trailing free block's size without
// risking a uint32 underflow.
func (h *Heap) Remaining(addr uint32) uint32 {
	return uint32(mathutil.MaxInt64(int64(h.Size())-int64(addr), 0))
}

// Bytes exposes the underlying buffer directly. It exists for the Snapshot
// machinery and for tests asserting exact byte layout; ordinary mutators
// should go through ReadWord/WriteWord/ByteAt/SetByteAt instead.
func (h *Heap) Bytes() []byte { return h.buf }
