// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package mmgc implements a simulated virtual heap, a pluggable object
allocator, a tagged 32-bit value encoding, and a pluggable tracing garbage
collector — a small, self-contained memory-management substrate intended
for studying how allocators and collectors cooperate over a shared heap.

Heap

A Heap is a flat, fixed-size byte buffer addressed by 32-bit virtual byte
offsets. It has no notion of objects; all structural discipline (headers,
free lists, block boundaries) lives in the Allocator.

Allocator

SingleFreeListAllocator is the one concrete Allocator: a single,
insertion-ordered free list of header addresses, first-fit search, and block splitting when a
free block is larger than needed. It does not coalesce adjacent free
blocks on Free; this is a deliberate simplification, not an oversight,
and the heap will fragment under sustained alloc/free churn. Callers
wanting defragmentation should run a MarkCompactGC cycle instead.

Value

Value is a 32-bit tagged word distinguishing Number, Pointer, and Boolean
payloads by their low bits. Collectors rely on Value's type discrimination
to tell pointer words from non-pointer payload when scanning a block.

MemoryManager and collectors

MemoryManager is the facade: it owns a Heap, an Allocator, and optionally
a Collector, and exposes typed reads/writes with an optional write-barrier
hook invoked before Value-typed stores. MarkSweepGC and MarkCompactGC are
the two Collector implementations; MarkSweepGC reclaims in place, while
MarkCompactGC additionally slides live objects together to defragment the
heap (Lisp2-style sliding compaction).

Experimental release notes

This is a teaching substrate, not a production allocator: the root set is
a documented stub (see Collector.Roots), the heap is capped at 64KiB by
the header's 16-bit size field, and there is no multi-threading story
whatsoever — a MemoryManager, its Allocator and its Collector must all be
driven from a single goroutine.

*/
package mmgc
