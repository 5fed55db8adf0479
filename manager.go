// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// MemoryManager is the single façade a mutator talks to: it owns the Heap
// and Allocator, optionally a Collector, and dispatches the write barrier.
// No other type in this package is meant to be driven directly by ordinary
// client code.

package mmgc

// MemoryManager wires together a Heap, an Allocator, and an optional
// Collector, and is the only type client code is expected to hold onto.
type MemoryManager struct {
	heap      *Heap
	allocator Allocator
	collector Collector
	opts      Options
}

// New constructs a MemoryManager per opts. It returns ErrConfig if opts
// fails validation.
func New(opts Options) (*MemoryManager, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	heap := NewHeap(opts.HeapSize)
	allocator := NewSingleFreeListAllocator(heap)

	m := &MemoryManager{heap: heap, allocator: allocator, opts: opts}

	switch opts.Collector {
	case CollectorNone:
	case CollectorMarkSweep:
		m.collector = NewMarkSweepGC(heap, allocator)
	case CollectorMarkCompact:
		m.collector = NewMarkCompactGC(heap, allocator)
	}

	return m, nil
}

// Reset drops all allocations and GC state, reinitializing the heap and
// allocator from scratch.
func (m *MemoryManager) Reset() { m.allocator.Reset() }

// HeapSize returns the heap's size in bytes.
func (m *MemoryManager) HeapSize() uint32 { return m.heap.Size() }

// WordsCount returns the heap's size in machine words.
func (m *MemoryManager) WordsCount() uint32 { return m.heap.Size() / WordSize }

// WordSize returns the machine word size in bytes.
func (m *MemoryManager) WordSize() uint32 { return WordSize }

// ReadByte reads a single byte at addr.
func (m *MemoryManager) ReadByte(addr uint32) byte { return m.heap.ByteAt(addr) }

// WriteByte writes a single raw byte at addr. Never invokes the write
// barrier: only Value-typed stores do.
func (m *MemoryManager) WriteByte(addr uint32, v byte) { m.heap.SetByteAt(addr, v) }

// ReadWord reads the raw little-endian machine word at addr.
func (m *MemoryManager) ReadWord(addr uint32) uint32 { return m.heap.ReadWord(addr) }

// WriteWord writes a raw little-endian machine word at addr. Never invokes
// the write barrier.
func (m *MemoryManager) WriteWord(addr uint32, v uint32) { m.heap.WriteWord(addr, v) }

// ReadValue reads the word at addr as a Value.
func (m *MemoryManager) ReadValue(addr uint32) Value { return Value(m.heap.ReadWord(addr)) }

// WriteValue stores v at addr, invoking the configured write barrier (if
// any) first. This is the entry point a mutator is expected to use for
// every pointer-carrying store, so a compacting or generational collector
// always gets a chance to observe it.
func (m *MemoryManager) WriteValue(addr uint32, v Value) {
	if m.opts.WriteBarrier != nil {
		m.opts.WriteBarrier(addr, v)
	}
	m.heap.WriteWord(addr, uint32(v))
}

// WriteValueRaw stores v at addr without invoking the write barrier. This
// mirrors the design this was distilled from, where the raw overload is
// reserved for internal bookkeeping stores a barrier should never observe
// (the allocator writing its own header fields, for instance) — preserved
// here deliberately rather than folded into WriteValue.
func (m *MemoryManager) WriteValueRaw(addr uint32, v Value) { m.heap.WriteWord(addr, uint32(v)) }

// Allocate reserves n (alignment-rounded) bytes and returns a Pointer Value,
// or the null pointer on OOM.
func (m *MemoryManager) Allocate(n uint32) Value { return m.allocator.Allocate(n) }

// Free returns the block at addr to the allocator.
func (m *MemoryManager) Free(addr uint32) { m.allocator.Free(addr) }

// GetHeader returns the header for the block at payload address addr.
func (m *MemoryManager) GetHeader(addr uint32) ObjectHeader { return m.allocator.GetHeader(addr) }

// SizeOf returns the payload size, in bytes, of the block at addr.
func (m *MemoryManager) SizeOf(addr uint32) uint16 { return m.allocator.GetHeader(addr).Size() }

// GetPointers enumerates the pointer-tagged words of the block at addr.
func (m *MemoryManager) GetPointers(addr uint32) []PointerRef { return m.allocator.GetPointers(addr) }

// ObjectCount returns the number of currently live blocks.
func (m *MemoryManager) ObjectCount() uint32 { return m.allocator.ObjectCount() }

// Allocator exposes the underlying Allocator, primarily so tests and
// diagnostics (e.g. SingleFreeListAllocator.FreeListAddrs) can reach past
// the facade.
func (m *MemoryManager) Allocator() Allocator { return m.allocator }

// Heap exposes the underlying Heap, for Snapshot/SaveFile and tests.
func (m *MemoryManager) Heap() *Heap { return m.heap }

// SetRoots overrides the configured collector's root enumeration. It is a
// no-op if no collector is configured.
func (m *MemoryManager) SetRoots(fn RootsFunc) {
	type rootSetter interface{ SetRoots(RootsFunc) }
	if rs, ok := m.collector.(rootSetter); ok {
		rs.SetRoots(fn)
	}
}

// Collect runs one collection cycle. It returns ErrConfig if no collector
// was configured via Options.
func (m *MemoryManager) Collect() (Stats, error) {
	if m.collector == nil {
		return Stats{}, &ErrConfig{Msg: "mmgc: Collect called with no Collector configured"}
	}
	return m.collector.Collect(), nil
}
