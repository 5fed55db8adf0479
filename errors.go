// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

import "fmt"

// ErrINVAL reports an invalid argument passed to an API that must reject
// it outright rather than produce undefined behavior (Encode/Decode with
// an unrecognized Type). Invalid Options are reported as ErrConfig.
type ErrINVAL struct {
	Src string
	Arg interface{}
}

func (e *ErrINVAL) Error() string {
	return fmt.Sprintf("%s: invalid argument: %v", e.Src, e.Arg)
}

// ErrTypeError reports pointer arithmetic attempted on a non-pointer Value.
type ErrTypeError struct {
	Op    string
	Value Value
}

func (e *ErrTypeError) Error() string {
	return fmt.Sprintf("%s: value %#08x is not a Pointer (type %s)", e.Op, uint32(e.Value), e.Value.Type())
}

// ErrConfig reports a MemoryManager or Options misconfiguration: Collect
// without a configured Collector, or an invalid Options value.
type ErrConfig struct {
	Msg string
}

func (e *ErrConfig) Error() string { return e.Msg }

// ErrILSEQType classifies an ErrILSEQ.
type ErrILSEQType int

const (
	// ErrOutOfRange classifies an address past the end of the heap. No
	// function in this package returns it: out-of-range heap access
	// panics on the slice index (see Heap.ByteAt).
	ErrOutOfRange ErrILSEQType = iota
	// ErrBadSnapshot is returned by Heap.Restore when the decompressed
	// or raw payload length disagrees with the recorded heap size.
	ErrBadSnapshot
)

// ErrILSEQ reports a heap consistency violation. The core does not validate
// heap state — out-of-bounds heap access is documented as the caller's
// responsibility — and the only call site returning ErrILSEQ is
// Heap.Restore, for a snapshot whose size does not match (ErrBadSnapshot).
type ErrILSEQ struct {
	Type ErrILSEQType
	Off  uint32
	Arg  int64
}

func (e *ErrILSEQ) Error() string {
	return fmt.Sprintf("inconsistent heap state at offset %#08x (type %d, arg %d)", e.Off, e.Type, e.Arg)
}
