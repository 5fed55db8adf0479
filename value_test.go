// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEncodeNumber(t *testing.T) {
	v, err := Encode(0b10100, TypeNumber)
	require.NoError(t, err)
	require.EqualValues(t, 0b101001, v.ToInt())
	require.True(t, v.IsNumber())
}

func TestValueDecodeNumber(t *testing.T) {
	v := Value(0b111)
	raw, err := v.Decode()
	require.NoError(t, err)
	require.EqualValues(t, 0b11, raw)
}

func TestValueNullPointer(t *testing.T) {
	v := NullPointer()
	require.Zero(t, v.ToInt())
	require.True(t, v.IsNullPointer())
	require.True(t, v.IsPointer())
}

func TestValueBoolean(t *testing.T) {
	require.Equal(t, True, BoolValue(true).ToInt())
	require.Equal(t, False, BoolValue(false).ToInt())
	require.True(t, BoolValue(true).IsBoolean())
	require.True(t, BoolValue(false).IsBoolean())

	raw, err := BoolValue(true).Decode()
	require.NoError(t, err)
	require.EqualValues(t, 1, raw)

	raw, err = BoolValue(false).Decode()
	require.NoError(t, err)
	require.EqualValues(t, 0, raw)
}

func TestValueTypeDiscrimination(t *testing.T) {
	require.Equal(t, TypeNumber, NumberValue(7).Type())
	require.Equal(t, TypePointer, PointerValue(100).Type())
	require.Equal(t, TypeBoolean, BoolValue(true).Type())
	require.Equal(t, TypePointer, Value(0).Type()) // null is a pointer
}

func TestValueEncodeUnknownType(t *testing.T) {
	_, err := Encode(0, Type(99))
	require.Error(t, err)
	var invalErr *ErrINVAL
	require.ErrorAs(t, err, &invalErr)
}

func TestValuePointerArithmetic(t *testing.T) {
	p := PointerValue(8)

	next, err := p.Add(1)
	require.NoError(t, err)
	require.EqualValues(t, 8+WordSize, next.ToInt())

	prev, err := p.Sub(1)
	require.NoError(t, err)
	require.EqualValues(t, 8-WordSize, prev.ToInt())

	_, err = NumberValue(5).Add(1)
	require.Error(t, err)
	var typeErr *ErrTypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestValueIncDecMutateInPlace(t *testing.T) {
	p := PointerValue(8)

	nv, err := p.Inc()
	require.NoError(t, err)
	require.EqualValues(t, 8+WordSize, nv.ToInt())
	require.EqualValues(t, 8+WordSize, p.ToInt())

	nv, err = p.Dec()
	require.NoError(t, err)
	require.EqualValues(t, 8, nv.ToInt())
	require.EqualValues(t, 8, p.ToInt())
}

func TestValuePostIncPostDec(t *testing.T) {
	p := PointerValue(8)

	old, err := p.PostInc()
	require.NoError(t, err)
	require.EqualValues(t, 8, old.ToInt())
	require.EqualValues(t, 8+WordSize, p.ToInt())

	old, err = p.PostDec()
	require.NoError(t, err)
	require.EqualValues(t, 8+WordSize, old.ToInt())
	require.EqualValues(t, 8, p.ToInt())
}

func TestValueEqual(t *testing.T) {
	v := PointerValue(16)
	require.True(t, v.Equal(16))
	require.False(t, v.Equal(17))
}
