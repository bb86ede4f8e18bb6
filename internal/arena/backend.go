package arena

import (
	"github.com/hupe1980/whitedew/internal/mem"
	"github.com/hupe1980/whitedew/internal/mmap"
)

// Backend hands out address space for an arena.
type Backend interface {
	// Reserve returns a region of exactly size bytes. size is always a
	// positive multiple of ChunkSize.
	Reserve(size int) (Region, error)
}

// Region is one reservation obtained from a Backend.
type Region interface {
	// Bytes returns the whole region; only committed bytes may be touched.
	Bytes() []byte
	// Commit makes [off, off+n) readable and writable.
	Commit(off, n int) error
	// Close releases the region.
	Close() error
}

// VirtualBackend reserves address space with no access rights and commits
// pages on demand (mmap/mprotect on unix, VirtualAlloc on windows).
type VirtualBackend struct{}

// Reserve implements Backend.
func (VirtualBackend) Reserve(size int) (Region, error) {
	r, err := mmap.Reserve(size)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// HeapBackend allocates the full capacity eagerly from the Go heap. Commit
// only validates bounds. It serves platforms without virtual memory
// primitives and tests; addresses stay stable because the buffer never moves.
type HeapBackend struct{}

// heapAlign keeps offset alignment equal to address alignment for any
// alignment up to a page.
const heapAlign = 4096

// Reserve implements Backend.
func (HeapBackend) Reserve(size int) (Region, error) {
	if size <= 0 {
		return nil, mmap.ErrInvalidSize
	}
	return &heapRegion{buf: mem.AllocAligned(size, heapAlign)}, nil
}

type heapRegion struct {
	buf []byte
}

func (r *heapRegion) Bytes() []byte {
	return r.buf
}

func (r *heapRegion) Commit(off, n int) error {
	if r.buf == nil {
		return mmap.ErrClosed
	}
	if off < 0 || n < 0 || off > len(r.buf)-n {
		return mmap.ErrOutOfBounds
	}
	return nil
}

func (r *heapRegion) Close() error {
	r.buf = nil
	return nil
}
