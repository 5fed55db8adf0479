// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// SingleFreeListAllocator: a single, insertion-ordered free list (a slice of
// free blocks' header addresses), first-fit search, and block splitting when a free block is
// larger than needed.
//
// Freed blocks are never coalesced with their neighbors. This is a
// deliberate simplification carried over from the design this was
// distilled from, not an oversight: a long-running heap under sustained
// alloc/free churn will fragment. Run MarkCompactGC to defragment instead
// of expecting Free to merge adjacent space.

package mmgc

import (
	"sort"

	"github.com/cznic/sortutil"
)

var _ Allocator = (*SingleFreeListAllocator)(nil)
var _ Resyncer = (*SingleFreeListAllocator)(nil)

// SingleFreeListAllocator is the one concrete Allocator implementation.
//
//	+----+-------+------++---------+
//	| GC | Used? | Size || Payload |
//	+----+-------+------++---------+
//	^                    ^
//	------ Header ------ returned pointer
type SingleFreeListAllocator struct {
	heap     *Heap
	freeList []uint32 // header addresses, insertion order
	count    uint32
}

// NewSingleFreeListAllocator returns an allocator over heap, already reset
// to a single free block spanning the whole heap.
func NewSingleFreeListAllocator(heap *Heap) *SingleFreeListAllocator {
	a := &SingleFreeListAllocator{heap: heap}
	a.Reset()
	return a
}

// align4 rounds n up to the next multiple of WordSize, yielding at least
// WordSize for any positive n.
func align4(n uint32) uint32 {
	return (((n - 1) >> 2) << 2) + WordSize
}

// Reset implements Allocator.
func (a *SingleFreeListAllocator) Reset() {
	a.heap.Reset()
	a.count = 0
	a._resetFreeList()
}

func (a *SingleFreeListAllocator) _resetFreeList() {
	a.freeList = a.freeList[:0]
	a.freeList = append(a.freeList, 0)
	hdr := headerAt(a.heap, 0)
	hdr.SetSize(uint16(a.heap.Size() - headerSize))
	hdr.SetUsed(false)
	hdr.SetGC(0)
}

// Allocate implements Allocator.
func (a *SingleFreeListAllocator) Allocate(n uint32) Value {
	n = align4(n)

	for i, f := range a.freeList {
		hdr := headerAt(a.heap, f)
		size := uint32(hdr.Size())
		if size < n {
			continue
		}

		hdr.SetUsed(true)
		a.freeList = append(a.freeList[:i], a.freeList[i+1:]...)
		payload := f + headerSize

		// Split only if there's room for a new header plus at least
		// one payload word; otherwise keep the block at its oversize.
		if size >= n+2*headerSize {
			hdr.SetSize(uint16(n))
			nextHeaderAddr := payload + n
			next := headerAt(a.heap, nextHeaderAddr)
			next.SetSize(uint16(size - n - headerSize))
			next.SetUsed(false)
			next.SetGC(0)
			a.freeList = append(a.freeList, nextHeaderAddr)
		}

		a.count++
		return PointerValue(payload)
	}

	return NullPointer()
}

// Free implements Allocator.
func (a *SingleFreeListAllocator) Free(addr uint32) {
	hdr := a.GetHeader(addr)
	if !hdr.Used() {
		return // double-free: silently ignored
	}

	hdr.SetUsed(false)
	a.freeList = append(a.freeList, hdr.Addr)
	a.count--
}

// GetHeader implements Allocator.
func (a *SingleFreeListAllocator) GetHeader(addr uint32) ObjectHeader {
	return headerAt(a.heap, addr-headerSize)
}

// ObjectCount implements Allocator.
func (a *SingleFreeListAllocator) ObjectCount() uint32 { return a.count }

// GetPointers implements Allocator.
func (a *SingleFreeListAllocator) GetPointers(addr uint32) []PointerRef {
	hdr := a.GetHeader(addr)
	words := uint32(hdr.Size()) / WordSize

	var out []PointerRef
	for i := uint32(0); i < words; i++ {
		wordAddr := addr + i*WordSize
		if Value(a.heap.ReadWord(wordAddr)).IsPointer() {
			out = append(out, PointerRef{heap: a.heap, Addr: wordAddr})
		}
	}
	return out
}

// Resync implements Resyncer, for MarkCompactGC's relocate phase: it
// discards whatever the free list currently thinks and replaces it with,
// at most, a single trailing free block.
func (a *SingleFreeListAllocator) Resync(objectCount uint32, freeHeaderAddr uint32, hasFree bool) {
	a.count = objectCount
	a.freeList = a.freeList[:0]
	if hasFree {
		a.freeList = append(a.freeList, freeHeaderAddr)
	}
}

// FreeListAddrs returns a sorted snapshot of the free list's header
// addresses. It is read-only diagnostics/test tooling, not part of the
// allocation path.
func (a *SingleFreeListAllocator) FreeListAddrs() []uint32 {
	keys := make(sortutil.Int64Slice, len(a.freeList))
	for i, addr := range a.freeList {
		keys[i] = int64(addr)
	}
	sort.Sort(keys)

	out := make([]uint32, len(keys))
	for i, k := range keys {
		out[i] = uint32(k)
	}
	return out
}
