// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

// headerSize is the size, in bytes, of an ObjectHeader: exactly one machine
// word, stored immediately before each allocated block's payload.
const headerSize = WordSize

// ObjectHeader is a handle onto the one-word block header stored at Addr in
// heap. It is a view, not a copy: every accessor reads or writes straight
// through to the backing Heap, so two ObjectHeader values for the same Addr
// always agree.
//
// Byte layout (little-endian word view), and this layout is part of the
// external contract (it is what Heap.Dump and Heap.Snapshot expose):
//
//	byte 0-1: size (uint16, payload size in bytes, a multiple of 4)
//	byte 2:   used (0 or 1)
//	byte 3:   gc   (mark bit for a tracing collector, or a refcount byte;
//	                only one interpretation is active per heap lifetime)
type ObjectHeader struct {
	heap *Heap
	Addr uint32
}

func headerAt(h *Heap, addr uint32) ObjectHeader {
	return ObjectHeader{heap: h, Addr: addr}
}

// Size returns the block's payload size in bytes.
func (h ObjectHeader) Size() uint16 {
	return uint16(h.heap.ByteAt(h.Addr)) | uint16(h.heap.ByteAt(h.Addr+1))<<8
}

// SetSize sets the block's payload size in bytes.
func (h ObjectHeader) SetSize(v uint16) {
	h.heap.SetByteAt(h.Addr, byte(v))
	h.heap.SetByteAt(h.Addr+1, byte(v>>8))
}

// Used reports whether the block is currently live.
func (h ObjectHeader) Used() bool { return h.heap.ByteAt(h.Addr+2) != 0 }

// SetUsed sets the block's used flag.
func (h ObjectHeader) SetUsed(v bool) {
	if v {
		h.heap.SetByteAt(h.Addr+2, 1)
	} else {
		h.heap.SetByteAt(h.Addr+2, 0)
	}
}

// GC returns the raw gc byte, interpreted either as a mark bit or as a
// refcount depending on which collector is active.
func (h ObjectHeader) GC() byte { return h.heap.ByteAt(h.Addr + 3) }

// SetGC sets the raw gc byte.
func (h ObjectHeader) SetGC(v byte) { h.heap.SetByteAt(h.Addr+3, v) }

// Mark reports the header's gc byte as a tracing-collector mark bit.
func (h ObjectHeader) Mark() bool { return h.GC() != 0 }

// SetMark sets the header's gc byte as a tracing-collector mark bit.
func (h ObjectHeader) SetMark(v bool) {
	if v {
		h.SetGC(1)
	} else {
		h.SetGC(0)
	}
}

// Payload returns the address of the block's payload, i.e. Addr+headerSize.
func (h ObjectHeader) Payload() uint32 { return h.Addr + headerSize }

// Word returns the header's raw 32-bit little-endian word.
func (h ObjectHeader) Word() uint32 { return h.heap.ReadWord(h.Addr) }
