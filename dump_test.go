// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapDumpFormat(t *testing.T) {
	h := NewHeap(8)
	h.WriteWord(0, 0xAABBCCDD)

	var buf bytes.Buffer
	require.NoError(t, h.Dump(&buf))

	want := "0x00000000 : DD CC BB AA\n" +
		"0x00000004 : 00 00 00 00\n" +
		"\n"
	require.Equal(t, want, buf.String())
}

func TestManagerDumpDelegates(t *testing.T) {
	mgr, err := New(Options{HeapSize: 8})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, mgr.Dump(&buf))
	require.Contains(t, buf.String(), "0x00000000 :")
}
