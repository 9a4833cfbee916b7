// Package ring implements a fixed-capacity, lock-free, single-producer
// multiple-consumer ring buffer built on a per-slot seqlock discipline.
//
// A single writer publishes fixed-shape messages without blocking; any
// number of readers observe the stream concurrently. Readers sharing a
// ReaderState cooperate so that each message is claimed by at most one of
// them; readers holding independent ReaderStates each see the full stream,
// subject to overrun by a fast writer.
package ring

import "sync/atomic"

// cacheLinePad is sized to push the field that follows it onto its own
// cache line on every architecture this repo targets. 64 bytes covers the
// common x86-64/arm64 line size; it is deliberately oversized on 32-bit
// targets rather than tuned per-arch.
type cacheLinePad [64]byte

// slot holds one ring entry: a seqlock version counter and a payload.
//
// version is even when the payload is a valid, fully published message (or
// the initial zero state); it is odd while a publish is in progress.
// Readers must reject a slot observed with an odd version.
type slot[T any] struct {
	version atomic.Uint64
	_       cacheLinePad
	payload T
}

// Buffer is the fixed-capacity ring shared by one writer and any number of
// readers. The zero value is not usable; construct with NewBuffer.
type Buffer[T any] struct {
	writeIndex uint64 // mutated only by the writer; plain field is fine
	_          cacheLinePad

	globalVersion atomic.Uint64
	_             cacheLinePad

	writeClaimed atomic.Bool
	_            cacheLinePad

	slots []slot[T]
	n     uint64
}

// NewBuffer returns a zero-initialized Buffer with the given slot count.
// slots must be positive; NewBuffer panics otherwise, mirroring the
// invariant that write_index always lies in [0, N).
func NewBuffer[T any](slots int) *Buffer[T] {
	if slots <= 0 {
		panic("ring: slot count must be positive")
	}
	return &Buffer[T]{
		slots: make([]slot[T], slots),
		n:     uint64(slots),
	}
}

// Slots returns the buffer's fixed slot count (N).
func (b *Buffer[T]) Slots() int {
	return int(b.n)
}

// Reader returns a fresh ReaderState positioned at the start of the
// buffer's stream (index=0, version=0). A brand-new reader's first Pop
// reports nothing-new until slot 0 holds a published message, per the
// admissibility predicate in reader.go.
func (b *Buffer[T]) Reader() *ReaderState[T] {
	return &ReaderState[T]{buf: b}
}
