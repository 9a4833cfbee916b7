package ring

// WriteHandle is the scoped, single-writer capability for a Buffer. At
// most one WriteHandle exists per Buffer at any moment; obtain one with
// Buffer.TryAcquireWriter and give it back with Release.
type WriteHandle[T any] struct {
	buf *Buffer[T]
}

// TryAcquireWriter attempts to claim exclusive write access to b. It
// never blocks: on contention it returns ErrClaimFailed immediately.
func (b *Buffer[T]) TryAcquireWriter() (*WriteHandle[T], error) {
	if !b.writeClaimed.CompareAndSwap(false, true) {
		return nil, ErrClaimFailed
	}
	return &WriteHandle[T]{buf: b}, nil
}

// Publish writes payload into the next slot and advances the write
// cursor. It never blocks and cannot fail; it silently overwrites
// whatever message previously occupied the target slot, so readers that
// have fallen behind by a full lap will detect an overrun on their next
// Pop rather than see stale data.
func (h *WriteHandle[T]) Publish(payload T) {
	b := h.buf
	i := b.writeIndex // relaxed: only the writer ever touches this field

	s := &b.slots[i]
	seq := s.version.Load() // plain load is sufficient; writer is sole mutator

	s.version.Store(seq + 1) // odd: write in progress

	// Advance the global counter to this slot's next published version.
	// The counter is advisory: Pop never reads it, and readers detect slot
	// reuse from the slot's own version.
	b.globalVersion.Store(seq + 2)

	s.payload = payload

	s.version.Store(seq + 2) // even: published; release-orders the payload write above

	b.writeIndex = (i + 1) % b.n
}

// Release gives up the writer claim, making the buffer available to the
// next caller of TryAcquireWriter. Releasing an already-released handle,
// or a nil handle, is a no-op.
func (h *WriteHandle[T]) Release() {
	if h == nil || h.buf == nil {
		return
	}
	h.buf.writeClaimed.Store(false)
	h.buf = nil
}
