package mmap

import (
	"fmt"
	"sync/atomic"
)

// Reservation is a range of address space reserved without access rights.
//
// Only the sub-ranges passed to Commit may be read or written. Touching any
// other byte of Bytes() faults.
type Reservation struct {
	data      []byte
	committed int // bytes committed from the start, informational only
	closed    atomic.Bool
	release   func([]byte) error
}

// Reserve reserves size bytes of address space with no access rights.
func Reserve(size int) (*Reservation, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, release, err := osReserve(size)
	if err != nil {
		return nil, fmt.Errorf("mmap: reserve %d bytes: %w", size, err)
	}

	return &Reservation{
		data:    data,
		release: release,
	}, nil
}

// Commit grants read/write access to [off, off+n).
//
// off should be page aligned; the arena only ever commits whole 64 KiB chunks,
// which satisfies every supported page size.
func (r *Reservation) Commit(off, n int) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if n == 0 {
		return nil
	}
	if off < 0 || n < 0 || off > len(r.data)-n {
		return ErrOutOfBounds
	}
	if err := osCommit(r.data[off : off+n]); err != nil {
		return fmt.Errorf("mmap: commit %d bytes at %d: %w", n, off, err)
	}
	r.committed = max(r.committed, off+n)
	return nil
}

// Bytes returns the whole reserved range.
// Warning: only committed sub-ranges are accessible, and the slice is invalid
// after Close.
func (r *Reservation) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Size returns the number of reserved bytes.
func (r *Reservation) Size() int {
	return len(r.data)
}

// Committed returns the highest committed end offset seen so far.
func (r *Reservation) Committed() int {
	return r.committed
}

// Close releases the whole reservation. It is idempotent.
func (r *Reservation) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	if r.release != nil && r.data != nil {
		return r.release(r.data)
	}
	return nil
}
