// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

// PointerRef is a reference to one word of a block's payload, returned by
// GetPointers for each word whose Value tag is Pointer. It is a view, not a
// copy: Set writes straight through to the backing Heap, which is how a
// compacting collector rewrites child references in place during its
// update-references phase.
type PointerRef struct {
	heap *Heap
	Addr uint32
}

// Value returns the current word at Addr, as a Value.
func (p PointerRef) Value() Value { return Value(p.heap.ReadWord(p.Addr)) }

// Set overwrites the word at Addr.
func (p PointerRef) Set(v Value) { p.heap.WriteWord(p.Addr, uint32(v)) }

// Allocator is the abstract contract every concrete allocator must
// implement. It is used directly by MemoryManager for allocation, and by
// collectors for header lookup and pointer enumeration during tracing.
type Allocator interface {
	// Allocate returns a virtual Pointer to n (alignment-rounded) bytes
	// of payload, or the null-pointer Value on OOM.
	Allocate(n uint32) Value

	// Free returns the block at addr (a payload address) to the
	// allocator. Freeing an already-free block is a silent no-op.
	Free(addr uint32)

	// Reset drops all allocations and reinitializes the allocator's
	// bookkeeping over the whole heap.
	Reset()

	// GetHeader returns the header immediately preceding the payload at
	// addr.
	GetHeader(addr uint32) ObjectHeader

	// ObjectCount returns the number of currently live blocks.
	ObjectCount() uint32

	// GetPointers enumerates the payload words of the block at addr,
	// returning a PointerRef for each word whose Value tag is Pointer.
	GetPointers(addr uint32) []PointerRef
}

// Resyncer is implemented by allocators that can be told their free-list
// bookkeeping no longer matches the heap after an external party moved
// bytes around — specifically, MarkCompactGC's relocate phase. It is not
// part of the core Allocator contract: a non-compacting setup never needs
// it, and an allocator that can't support compaction simply doesn't
// implement it, which MarkCompactGC.relocate checks for via a type
// assertion.
type Resyncer interface {
	// Resync replaces the allocator's bookkeeping wholesale: objectCount
	// live blocks now exist, and if hasFree is true there is exactly one
	// free block left, a trailing one starting at freeHeaderAddr.
	Resync(objectCount uint32, freeHeaderAddr uint32, hasFree bool)
}
