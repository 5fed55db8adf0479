// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

var _ Collector = (*MarkSweepGC)(nil)

// MarkSweepGC is a two-phase tracing collector: mark walks the reachable
// graph from the roots, setting each live header's mark bit; sweep then
// walks the whole heap left to right, clearing mark bits on survivors and
// freeing anything left unmarked.
type MarkSweepGC struct {
	baseCollector
	heap *Heap
}

// NewMarkSweepGC returns a MarkSweepGC over heap and allocator. Both must
// belong to the same MemoryManager.
func NewMarkSweepGC(heap *Heap, allocator Allocator) *MarkSweepGC {
	return &MarkSweepGC{baseCollector: baseCollector{allocator: allocator}, heap: heap}
}

// Collect implements Collector.
func (gc *MarkSweepGC) Collect() Stats {
	gc.Init()
	gc.mark()
	gc.sweep()
	return gc.stats
}

// mark is the trace phase: see traceMark.
func (gc *MarkSweepGC) mark() {
	gc.stats.Alive = traceMark(gc.allocator, gc.Roots())
}

// sweep walks the heap left to right starting at the first payload address.
// A still-marked header survived tracing and has its mark cleared for the
// next cycle; an unmarked-but-used header is garbage and gets freed.
func (gc *MarkSweepGC) sweep() {
	scan := uint32(headerSize)
	heapSize := gc.heap.Size()

	for scan < heapSize {
		hdr := gc.allocator.GetHeader(scan)

		if hdr.Mark() {
			hdr.SetMark(false)
		} else if hdr.Used() {
			gc.allocator.Free(scan)
			gc.stats.Reclaimed++
		}

		scan += uint32(hdr.Size()) + headerSize
	}
}
