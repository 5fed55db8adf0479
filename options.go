// Copyright 2024 The mmgc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmgc

// CollectorKind selects which Collector, if any, New wires into a
// MemoryManager.
type CollectorKind int

const (
	// CollectorNone configures a MemoryManager with no collector. Calling
	// Collect on it returns ErrConfig.
	CollectorNone CollectorKind = iota
	// CollectorMarkSweep wires a MarkSweepGC.
	CollectorMarkSweep
	// CollectorMarkCompact wires a MarkCompactGC.
	CollectorMarkCompact
)

func (k CollectorKind) String() string {
	switch k {
	case CollectorNone:
		return "none"
	case CollectorMarkSweep:
		return "mark-sweep"
	case CollectorMarkCompact:
		return "mark-compact"
	default:
		return "unknown"
	}
}

// WriteBarrierFunc is invoked by MemoryManager.WriteValue immediately before
// the store it guards, receiving the destination address and the Value about
// to be written.
type WriteBarrierFunc func(addr uint32, v Value)

// Options configures a MemoryManager at construction time. The zero value is
// not valid: HeapSize must be set.
//
// Options follows the same memoized-validation shape as dbm.Options.check:
// Validate is idempotent and cheap to call more than once.
type Options struct {
	// HeapSize is the Heap's size in bytes. Must be greater than headerSize
	// and a multiple of WordSize.
	HeapSize uint32

	// Collector selects the wired Collector, if any.
	Collector CollectorKind

	// Compress makes MemoryManager.SaveFile always write a Snappy-compressed
	// snapshot. Heap.Snapshot takes its own compress argument instead.
	Compress bool

	// WriteBarrier, if non-nil, is invoked by WriteValue before every
	// Value-typed store. It is never invoked by WriteValueRaw.
	WriteBarrier WriteBarrierFunc

	checked bool
	err     error
}

// Validate checks Options for internal consistency, memoizing the result so
// repeated calls (New calls it, and a caller may call it again beforehand)
// do the work once.
func (o *Options) Validate() error {
	if o.checked {
		return o.err
	}
	o.checked = true

	switch {
	case o.HeapSize == 0:
		o.err = &ErrConfig{Msg: "mmgc: Options.HeapSize must be non-zero"}
	case o.HeapSize%WordSize != 0:
		o.err = &ErrConfig{Msg: "mmgc: Options.HeapSize must be a multiple of WordSize"}
	case o.HeapSize <= headerSize:
		o.err = &ErrConfig{Msg: "mmgc: Options.HeapSize must hold at least one header and one payload word"}
	case o.Collector < CollectorNone || o.Collector > CollectorMarkCompact:
		o.err = &ErrConfig{Msg: "mmgc: Options.Collector is not a recognized CollectorKind"}
	}
	return o.err
}
