// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// MarkCompactGC: a four-phase Lisp2-style compacting collector. Mark and
// compute-locations are the two phases the design this was distilled from
// specifies completely; update-references and relocate were left as
// outline-only stubs there and are filled in here per the standard Lisp2
// algorithm, as the design notes direct.

package mmgc

import (
	"sort"

	"github.com/cznic/sortutil"
)

var _ Collector = (*MarkCompactGC)(nil)

// MarkCompactGC slides live objects toward the low end of the heap,
// eliminating fragmentation the SingleFreeListAllocator's non-coalescing
// Free would otherwise accumulate.
type MarkCompactGC struct {
	baseCollector
	heap *Heap

	// forward maps each live block's old payload address to its new
	// payload address, populated by computeLocations and consumed by
	// updateReferences and relocate. It is not part of the on-heap
	// header layout: the header's spare gc byte stays reserved for the
	// mark bit in both collectors, so a compacting cycle's forwarding
	// table lives here instead, scoped to a single Collect call.
	forward map[uint32]uint32
}

// NewMarkCompactGC returns a MarkCompactGC over heap and allocator. If
// allocator also implements Resyncer, relocate will resync its free-list
// bookkeeping after sliding blocks; otherwise the allocator's free list is
// left stale (a plain Allocator has no contract for accepting that).
func NewMarkCompactGC(heap *Heap, allocator Allocator) *MarkCompactGC {
	return &MarkCompactGC{baseCollector: baseCollector{allocator: allocator}, heap: heap}
}

// Collect implements Collector.
func (gc *MarkCompactGC) Collect() Stats {
	gc.Init()
	gc.mark()
	gc.computeLocations()
	gc.updateReferences()
	gc.relocate()
	return gc.stats
}

// mark is the trace phase: see traceMark.
func (gc *MarkCompactGC) mark() {
	gc.stats.Alive = traceMark(gc.allocator, gc.Roots())
}

// computeLocations is the Lisp2 sliding phase: two cursors, scan and free,
// both starting at the first payload address. Every marked block's mark
// bit is cleared and its forwarding address recorded; an unmarked block
// that was actually in use counts toward Reclaimed (a block already sitting
// on the free list when the cycle started is neither marked nor in use, and
// must not inflate Reclaimed — same distinction sweep draws). Both cursors
// only ever move forward by a whole block, so the recorded mapping is
// monotonic (new <= old for every block), which is what makes relocate's
// left-to-right copy safe.
func (gc *MarkCompactGC) computeLocations() {
	gc.forward = make(map[uint32]uint32)

	scan := uint32(headerSize)
	free := scan
	heapSize := gc.heap.Size()

	for scan < heapSize {
		hdr := gc.allocator.GetHeader(scan)
		size := uint32(hdr.Size())

		if hdr.Mark() {
			hdr.SetMark(false)
			gc.forward[scan] = free
			free += size + headerSize
		} else if hdr.Used() {
			gc.stats.Reclaimed++
		}

		scan += size + headerSize
	}
}

// updateReferences walks every surviving block's pointer words and rewrites
// each to the target's forwarded address. Null pointers are left alone —
// address 0 never appears as a key in forward, since it is never a valid
// payload address (see traceMark's doc comment) — and a pointer into a
// block that did not survive tracing (not present in forward) is left
// untouched too: that can only happen if the mutator never established
// reachability to it in the first place, which is the mutator's bug, not
// the collector's to silently paper over.
func (gc *MarkCompactGC) updateReferences() {
	for _, oldAddr := range gc.liveAddrsSorted() {
		for _, p := range gc.allocator.GetPointers(oldAddr) {
			val := p.Value()
			if val.IsNullPointer() {
				continue
			}
			target, err := val.Decode()
			if err != nil {
				continue
			}
			if newAddr, ok := gc.forward[target]; ok {
				p.Set(PointerValue(newAddr))
			}
		}
	}
}

// relocate performs the sliding copy: live blocks, in increasing old-address
// order, are memmoved (header and payload together) to their forwarded
// address. Processing in increasing order is safe even though moves
// overlap, because every block only ever slides toward a lower or equal
// address (computeLocations guarantees free <= scan at every step) and Go's
// built-in copy is overlap-safe regardless of direction.
func (gc *MarkCompactGC) relocate() {
	live := gc.liveAddrsSorted()
	buf := gc.heap.Bytes()

	cursor := uint32(0) // next header address, not a payload address
	for _, oldAddr := range live {
		newAddr := gc.forward[oldAddr]
		size := uint32(gc.allocator.GetHeader(oldAddr).Size())

		if newAddr != oldAddr {
			srcStart := oldAddr - headerSize
			dstStart := newAddr - headerSize
			copy(buf[dstStart:dstStart+headerSize+size], buf[srcStart:srcStart+headerSize+size])
		}

		newHdr := headerAt(gc.heap, newAddr-headerSize)
		newHdr.SetUsed(true)
		newHdr.SetGC(0)
		cursor = newAddr + size
	}

	hasFree := cursor < gc.heap.Size()
	var tailHeaderAddr uint32
	if hasFree {
		tailHeaderAddr = cursor
		tail := headerAt(gc.heap, tailHeaderAddr)
		tail.SetSize(uint16(gc.heap.Remaining(cursor) - headerSize))
		tail.SetUsed(false)
		tail.SetGC(0)
	}

	if r, ok := gc.allocator.(Resyncer); ok {
		r.Resync(uint32(len(live)), tailHeaderAddr, hasFree)
	}
}

func (gc *MarkCompactGC) liveAddrsSorted() []uint32 {
	keys := make(sortutil.Int64Slice, 0, len(gc.forward))
	for k := range gc.forward {
		keys = append(keys, int64(k))
	}
	sort.Sort(keys)

	out := make([]uint32, len(keys))
	for i, k := range keys {
		out[i] = uint32(k)
	}
	return out
}
