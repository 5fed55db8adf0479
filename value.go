// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

// Type is the discriminant of a tagged Value.
type Type int

const (
	// TypeNumber values carry an unsigned 31-bit integer payload.
	TypeNumber Type = iota
	// TypePointer values are a virtual byte address into a Heap.
	TypePointer
	// TypeBoolean values are one of the two boolean constants below.
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypePointer:
		return "Pointer"
	case TypeBoolean:
		return "Boolean"
	default:
		return "Unknown"
	}
}

// Encoded boolean constants: a 5-bit mask 0bx0110 where bit 4 carries the
// boolean value.
const (
	True  uint32 = 0b10110
	False uint32 = 0b00110
)

// Value is a single 32-bit tagged word: a Number (LSB set), a Pointer (low
// two bits clear, and not one of the boolean constants), or a Boolean (the
// word equals True or False exactly).
//
// Type discrimination, in order: LSB set -> Number; word == True or
// word == False -> Boolean; otherwise -> Pointer. Consequently any word
// whose LSB is clear and which isn't literally True or False is a pointer,
// including the null encoding 0 and any stray bit pattern a collector
// might trace into — this is intentional, see the package's tracing notes.
type Value uint32

// Encode bit-packs raw according to valueType. Returns ErrINVAL for an
// unrecognized Type.
func Encode(raw uint32, valueType Type) (Value, error) {
	switch valueType {
	case TypeNumber:
		return Value((raw << 1) | 1), nil
	case TypeBoolean:
		if raw == 1 {
			return Value(True), nil
		}
		return Value(False), nil
	case TypePointer:
		return Value(raw), nil
	default:
		return 0, &ErrINVAL{Src: "Encode", Arg: valueType}
	}
}

// NumberValue encodes raw as a Number. raw must fit in 31 bits for the
// round-trip through Decode to be lossless.
func NumberValue(raw uint32) Value {
	v, _ := Encode(raw, TypeNumber)
	return v
}

// PointerValue encodes addr as a Pointer.
func PointerValue(addr uint32) Value {
	v, _ := Encode(addr, TypePointer)
	return v
}

// NullPointer returns the null-pointer encoding (the word 0).
func NullPointer() Value { return PointerValue(0) }

// BoolValue encodes b as a Boolean.
func BoolValue(b bool) Value {
	if b {
		v, _ := Encode(1, TypeBoolean)
		return v
	}
	v, _ := Encode(0, TypeBoolean)
	return v
}

// Type returns the value's discriminant.
func (v Value) Type() Type {
	if uint32(v)&1 == 1 {
		return TypeNumber
	}
	if uint32(v) == True || uint32(v) == False {
		return TypeBoolean
	}
	return TypePointer
}

// IsNumber reports whether v is a Number.
func (v Value) IsNumber() bool { return v.Type() == TypeNumber }

// IsPointer reports whether v is a Pointer.
func (v Value) IsPointer() bool { return v.Type() == TypePointer }

// IsBoolean reports whether v is a Boolean.
func (v Value) IsBoolean() bool { return v.Type() == TypeBoolean }

// IsNullPointer reports whether v is the null-pointer encoding.
func (v Value) IsNullPointer() bool { return v.IsPointer() && uint32(v) == 0 }

// Decode extracts v's payload: a right-shifted integer for Number, bit 4
// for Boolean, or the word itself for Pointer. Decode never fails since
// Type always resolves to one of the three cases.
func (v Value) Decode() (uint32, error) {
	switch v.Type() {
	case TypeNumber:
		return uint32(v) >> 1, nil
	case TypeBoolean:
		return (uint32(v) >> 4) & 1, nil
	case TypePointer:
		return uint32(v), nil
	default:
		return 0, &ErrINVAL{Src: "Value.Decode", Arg: uint32(v)}
	}
}

// ToInt returns the raw 32-bit encoded word.
func (v Value) ToInt() uint32 { return uint32(v) }

// Equal compares v's raw encoded word against i.
func (v Value) Equal(i uint32) bool { return uint32(v) == i }

// Add performs word-aligned pointer arithmetic: the result address is
// v's address plus i machine words (i*WordSize bytes). Add fails with
// ErrTypeError unless v is a Pointer.
func (v Value) Add(i int) (Value, error) {
	if !v.IsPointer() {
		return 0, &ErrTypeError{Op: "Value.Add", Value: v}
	}
	return Value(uint32(int64(uint32(v)) + int64(i)*WordSize)), nil
}

// Sub is Add(-i).
func (v Value) Sub(i int) (Value, error) { return v.Add(-i) }

// Inc advances v by one machine word in place and returns the new value.
func (v *Value) Inc() (Value, error) {
	nv, err := v.Add(1)
	if err != nil {
		return 0, err
	}
	*v = nv
	return *v, nil
}

// Dec retreats v by one machine word in place and returns the new value.
func (v *Value) Dec() (Value, error) {
	nv, err := v.Sub(1)
	if err != nil {
		return 0, err
	}
	*v = nv
	return *v, nil
}

// PostInc advances v by one machine word in place and returns the
// pre-increment value.
func (v *Value) PostInc() (Value, error) {
	old := *v
	if _, err := v.Inc(); err != nil {
		return 0, err
	}
	return old, nil
}

// PostDec retreats v by one machine word in place and returns the
// pre-decrement value.
func (v *Value) PostDec() (Value, error) {
	old := *v
	if _, err := v.Dec(); err != nil {
		return 0, err
	}
	return old, nil
}
