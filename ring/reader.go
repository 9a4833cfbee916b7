package ring

import "sync/atomic"

// ReaderState is a cursor into a Buffer's stream: index is the slot the
// reader next intends to consume, version is the largest per-slot version
// the reader has definitively consumed. The zero value is not usable on
// its own; obtain one from Buffer.Reader or ReaderState.Clone.
//
// A ReaderState may be shared across goroutines (its Pop method is safe
// for concurrent use, and cooperating callers race to claim each message
// so no message is delivered twice), or it may be Cloned to produce an
// independent cursor that observes the full stream on its own.
type ReaderState[T any] struct {
	index   atomic.Uint64
	_       cacheLinePad
	version atomic.Uint64
	_       cacheLinePad
	buf     *Buffer[T]
}

// Clone returns a new ReaderState starting from r's current position. The
// clone progresses independently of r from the moment it is created.
func (r *ReaderState[T]) Clone() *ReaderState[T] {
	c := &ReaderState[T]{buf: r.buf}
	c.index.Store(r.index.Load())
	c.version.Store(r.version.Load())
	return c
}

// admissible implements the seqlock admissibility predicate verbatim,
// including the i==0 && seq==ver special case that distinguishes "never
// read anything" from "read exactly one full lap and there is nothing
// new." Do not simplify this away: it is load-bearing for correctness on
// wrap-around, and is the reason a freshly constructed ReaderState
// correctly reports Empty rather than replaying slot 0's zero state.
func admissible(seq, ver uint64, i uint64) bool {
	if seq%2 != 0 {
		return false // write in progress
	}
	if i == 0 && seq == ver {
		return false // already consumed this lap's slot 0
	}
	if seq < ver {
		return false // stale relative to this reader's progress
	}
	return true
}

// Pop claims and returns the next message for this ReaderState, or
// reports false if there is nothing new to claim right now. Pop never
// blocks; callers that want to wait for new data must poll at their own
// discretion.
func (r *ReaderState[T]) Pop() (T, bool) {
	var zero T
	b := r.buf
	i := r.index.Load()

	for {
		ver := r.version.Load()
		s := &b.slots[i]

		seq1 := s.version.Load()
		if !admissible(seq1, ver, i) {
			return zero, false
		}

		// Hazard: this copies payload bytes that may be concurrently
		// overwritten by a publisher between seq1 and seq2. That is the
		// seqlock's whole point — the copy is validated, not prevented.
		// A torn or partially-written T is always discarded below before
		// it escapes this function.
		payload := s.payload

		seq2 := s.version.Load()
		if seq1 != seq2 {
			continue // torn read: the writer touched this slot mid-copy, retry same i
		}

		if !r.version.CompareAndSwap(ver, seq2) {
			// Another cooperating consumer already advanced the shared
			// cursor's version past this slot; the message is claimed.
			return zero, false
		}

		if !r.index.CompareAndSwap(i, (i+1)%b.n) {
			// Another consumer advanced the index first. Our claim on
			// state.version may still be valid for the new slot, so
			// restart there instead of giving up.
			i = r.index.Load()
			continue
		}

		return payload, true
	}
}
