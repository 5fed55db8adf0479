// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsValidateZeroHeapSize(t *testing.T) {
	o := Options{}
	err := o.Validate()
	require.Error(t, err)
	var cfgErr *ErrConfig
	require.ErrorAs(t, err, &cfgErr)
}

func TestOptionsValidateUnalignedHeapSize(t *testing.T) {
	o := Options{HeapSize: 15}
	require.Error(t, o.Validate())
}

func TestOptionsValidateTooSmallHeapSize(t *testing.T) {
	o := Options{HeapSize: 4} // equals headerSize, no room for a payload word
	require.Error(t, o.Validate())
}

func TestOptionsValidateUnknownCollector(t *testing.T) {
	o := Options{HeapSize: 32, Collector: CollectorKind(99)}
	require.Error(t, o.Validate())
}

func TestOptionsValidateOK(t *testing.T) {
	o := Options{HeapSize: 32, Collector: CollectorMarkSweep}
	require.NoError(t, o.Validate())
}

func TestOptionsValidateIsMemoized(t *testing.T) {
	o := Options{HeapSize: 0}
	first := o.Validate()
	require.True(t, o.checked)

	o.HeapSize = 32 // mutating after the first check must not matter
	second := o.Validate()
	require.Equal(t, first, second)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}
