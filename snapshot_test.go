// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapSnapshotRestoreRoundTripUncompressed(t *testing.T) {
	h := NewHeap(32)
	NewSingleFreeListAllocator(h).Allocate(8)

	var buf bytes.Buffer
	require.NoError(t, h.Snapshot(&buf, false))

	restored := NewHeap(32)
	require.NoError(t, restored.Restore(&buf))
	require.Equal(t, h.Bytes(), restored.Bytes())
}

func TestHeapSnapshotRestoreRoundTripCompressed(t *testing.T) {
	h := NewHeap(64)
	a := NewSingleFreeListAllocator(h)
	a.Allocate(8)
	a.Allocate(16)

	var buf bytes.Buffer
	require.NoError(t, h.Snapshot(&buf, true))

	restored := NewHeap(64)
	require.NoError(t, restored.Restore(&buf))
	require.Equal(t, h.Bytes(), restored.Bytes())
}

func TestHeapRestoreRejectsSizeMismatch(t *testing.T) {
	h := NewHeap(32)
	var buf bytes.Buffer
	require.NoError(t, h.Snapshot(&buf, false))

	restored := NewHeap(16) // wrong size on purpose
	err := restored.Restore(&buf)
	require.Error(t, err)
	var ilseqErr *ErrILSEQ
	require.ErrorAs(t, err, &ilseqErr)
	require.Equal(t, ErrBadSnapshot, ilseqErr.Type)
}

func TestManagerSaveLoadFileRoundTrip(t *testing.T) {
	mgr, err := New(Options{HeapSize: 32})
	require.NoError(t, err)
	mgr.Allocate(8)

	path := filepath.Join(t.TempDir(), "heap.snap")
	require.NoError(t, mgr.SaveFile(path, true))

	restored, err := New(Options{HeapSize: 32})
	require.NoError(t, err)
	require.NoError(t, restored.LoadFile(path))

	require.Equal(t, mgr.Heap().Bytes(), restored.Heap().Bytes())
}
