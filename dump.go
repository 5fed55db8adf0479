// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"fmt"
	"io"
)

// Dump writes the heap to w as 4-byte words in hex, one word per line
// prefixed by its address: "0xAAAAAAAA : BB BB BB BB\n", bytes in the order
// they sit in memory (little-endian: byte 0 first). A single trailing blank
// line follows the last row.
func (m *MemoryManager) Dump(w io.Writer) error {
	return m.heap.Dump(w)
}

// Dump implements the same row format directly on Heap, so standalone tests
// and tooling can dump a Heap without a MemoryManager.
func (h *Heap) Dump(w io.Writer) error {
	size := h.Size()
	for addr := uint32(0); addr+WordSize <= size; addr += WordSize {
		b0, b1, b2, b3 := h.ByteAt(addr), h.ByteAt(addr+1), h.ByteAt(addr+2), h.ByteAt(addr+3)
		if _, err := fmt.Fprintf(w, "0x%08X : %02X %02X %02X %02X\n", addr, b0, b1, b2, b3); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
