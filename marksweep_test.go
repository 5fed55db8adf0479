// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkSweepCollectReclaimsUnreachable(t *testing.T) {
	heap := NewHeap(32)
	alloc := NewSingleFreeListAllocator(heap)
	gc := NewMarkSweepGC(heap, alloc)

	p1, _ := alloc.Allocate(4).Decode()
	p2, _ := alloc.Allocate(4).Decode()
	p3, _ := alloc.Allocate(4).Decode()
	p4, _ := alloc.Allocate(4).Decode()
	_, _ = p3, p4

	require.EqualValues(t, 4, p1)
	require.EqualValues(t, 4, alloc.ObjectCount())

	// p1 -> p2 is the only live edge; the stub root is p1 itself.
	heap.WriteWord(p1, uint32(PointerValue(p2)))

	stats := gc.Collect()
	require.EqualValues(t, 4, stats.Total)
	require.EqualValues(t, 2, stats.Alive)
	require.EqualValues(t, 2, stats.Reclaimed)
	require.EqualValues(t, 2, alloc.ObjectCount())
}

func TestMarkSweepClearsMarkBitsForNextCycle(t *testing.T) {
	heap := NewHeap(32)
	alloc := NewSingleFreeListAllocator(heap)
	gc := NewMarkSweepGC(heap, alloc)

	p1, _ := alloc.Allocate(4).Decode()
	_ = p1

	first := gc.Collect()
	require.EqualValues(t, 1, first.Alive)

	second := gc.Collect()
	require.EqualValues(t, 1, second.Alive)
	require.EqualValues(t, 0, second.Reclaimed)
}

func TestMarkSweepWithCustomRoots(t *testing.T) {
	heap := NewHeap(32)
	alloc := NewSingleFreeListAllocator(heap)
	gc := NewMarkSweepGC(heap, alloc)

	p1, _ := alloc.Allocate(4).Decode()
	p2, _ := alloc.Allocate(4).Decode()

	// Roots explicitly name p2 only; p1 is unreachable even though it
	// was allocated first.
	gc.SetRoots(func() []uint32 { return []uint32{p2} })

	stats := gc.Collect()
	require.EqualValues(t, 1, stats.Alive)
	require.EqualValues(t, 1, stats.Reclaimed)
}
