// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Snapshot serializes and restores a Heap's raw bytes, for checkpointing and
// crash-test fixtures. It is debug/tooling surface: it never participates in
// allocate/free/collect semantics and never touches real OS virtual memory.

package mmgc

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/cznic/fileutil"
	"github.com/golang/snappy"
)

// snapshotHeaderSize is the fixed prefix: 4 bytes raw size, 1 byte
// compressed flag, 3 bytes reserved/zero.
const snapshotHeaderSize = 8

// Snapshot writes h's contents to w as a self-describing stream: an 8-byte
// header (little-endian raw size, then a compressed flag byte) followed by
// the payload, Snappy-compressed when compress is true.
func (h *Heap) Snapshot(w io.Writer, compress bool) error {
	raw := h.Bytes()
	payload := raw
	var flag byte
	if compress {
		payload = snappy.Encode(nil, raw)
		flag = 1
	}

	header := make([]byte, snapshotHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(raw)))
	header[4] = flag

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// Restore reads a stream written by Snapshot back into h. The stream's
// recorded raw size must equal h.Size() exactly: Restore never resizes the
// heap it's given.
func (h *Heap) Restore(r io.Reader) error {
	header := make([]byte, snapshotHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return err
	}
	rawSize := binary.LittleEndian.Uint32(header[0:4])
	compressed := header[4] != 0

	payload, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if compressed {
		payload, err = snappy.Decode(nil, payload)
		if err != nil {
			return err
		}
	}

	if uint32(len(payload)) != rawSize {
		return &ErrILSEQ{Type: ErrBadSnapshot, Off: 0, Arg: int64(len(payload))}
	}
	if rawSize != h.Size() {
		return &ErrILSEQ{Type: ErrBadSnapshot, Off: 0, Arg: int64(rawSize)}
	}

	copy(h.buf, payload)
	return nil
}

// SaveFile atomically writes a snapshot of m's heap to path: the payload is
// built in a temp file alongside path, any unused tail left over from the
// temp file's pre-allocation is punched out, and the temp file is renamed
// into place last — the same write-then-rename discipline the allocator's
// on-disk Filer counterparts use to avoid ever leaving a half-written file
// at path. The snapshot is compressed when compress is true or m was built
// with Options.Compress set.
func (m *MemoryManager) SaveFile(path string, compress bool) error {
	compress = compress || m.opts.Compress
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	preallocated := int64(m.heap.Size()) + snapshotHeaderSize
	if err := tmp.Truncate(preallocated); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return err
	}

	if err := m.heap.Snapshot(tmp, compress); err != nil {
		tmp.Close()
		return err
	}

	written, err := tmp.Seek(0, io.SeekCurrent)
	if err != nil {
		tmp.Close()
		return err
	}
	if written < preallocated {
		if err := fileutil.PunchHole(tmp, written, preallocated-written); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Truncate(written); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// LoadFile restores m's heap from a file written by SaveFile.
func (m *MemoryManager) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.heap.Restore(f)
}
