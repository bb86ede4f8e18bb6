package arena

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"
)

const (
	// ChunkSize is the reservation and commit granularity (64 KiB).
	ChunkSize = 64 * 1024

	// PoisonAlloc fills freshly allocated bytes.
	PoisonAlloc byte = 0xCD
	// PoisonFree fills bytes released by Reset.
	PoisonFree byte = 0xDD
	// PoisonLookahead is how far past the touched range poisoning extends.
	PoisonLookahead = 128
)

// ErrAllocationFailed is returned when an allocation would exceed the arena's
// capacity or the backend refuses to commit more memory.
var ErrAllocationFailed = errors.New("arena: allocation failed")

// MemoryAcquirer is an interface for budgeting committed memory.
type MemoryAcquirer interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Arena is a bump allocator over a single reservation.
//
// The zero value is a valid empty arena: it has no capacity, so every
// allocation of more than zero bytes fails.
type Arena struct {
	region    Region
	mem       []byte
	capacity  int
	committed int
	offset    int
	borrows   int // live delegated handles; see Handle

	poison   bool
	acquirer MemoryAcquirer
	acquired int64
	logger   *slog.Logger

	stats Stats
}

type config struct {
	backend  Backend
	poison   bool
	acquirer MemoryAcquirer
	logger   *slog.Logger
}

// Option is a configuration option for Arena.
type Option func(*config)

// WithBackend sets the address-space backend.
func WithBackend(b Backend) Option {
	return func(c *config) {
		if b != nil {
			c.backend = b
		}
	}
}

// WithPoison enables or disables allocation and reset poisoning.
// Poisoning is on by default.
func WithPoison(enabled bool) Option {
	return func(c *config) {
		c.poison = enabled
	}
}

// WithMemoryAcquirer charges every committed chunk against acquirer.
// A refused acquisition fails the allocation that needed the chunk.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(c *config) {
		c.acquirer = acquirer
	}
}

// WithLogger sets the logger for commit growth and allocation failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// New reserves capacity bytes, rounded up to a multiple of ChunkSize with a
// minimum of one chunk. No memory is committed until the first allocation.
func New(capacity int, opts ...Option) (*Arena, error) {
	cfg := config{
		backend: defaultBackend(),
		poison:  true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	capacity = max(capacity, 1)
	if capacity > maxCapacity {
		return nil, fmt.Errorf("%w: capacity %d too large", ErrAllocationFailed, capacity)
	}
	capacity = alignUp(capacity, ChunkSize)

	region, err := cfg.backend.Reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: reserve %d bytes: %w", ErrAllocationFailed, capacity, err)
	}

	a := &Arena{
		region:   region,
		mem:      region.Bytes()[:capacity:capacity],
		capacity: capacity,
		poison:   cfg.poison,
		acquirer: cfg.acquirer,
		logger:   cfg.logger,
	}
	a.stats.Capacity = capacity
	return a, nil
}

// Alloc returns size bytes aligned to align, which must be a power of two
// (0 means 1). The slice has len and cap equal to size, so appending to it
// always reallocates rather than spilling into the next allocation.
//
// On failure the arena is unchanged and the error wraps ErrAllocationFailed.
func (a *Arena) Alloc(size, align int) ([]byte, error) {
	if size < 0 {
		panic("arena: negative allocation size")
	}
	if align <= 0 {
		align = 1
	} else if align&(align-1) != 0 {
		panic("arena: alignment must be a power of two")
	}

	beg := alignUp(a.offset, align)
	if beg > a.committed || size > a.committed-beg {
		if err := a.grow(beg, size); err != nil {
			a.stats.Failures++
			if a.logger != nil {
				a.logger.Warn("arena allocation failed", "size", size, "align", align, "offset", a.offset, "capacity", a.capacity, "error", err)
			}
			return nil, err
		}
	}
	end := beg + size

	if a.poison {
		a.fill(a.offset, min(end+PoisonLookahead, a.committed), PoisonAlloc)
	}

	a.offset = end
	a.stats.Allocs++
	a.stats.Peak = max(a.stats.Peak, end)
	return a.mem[beg:end:end], nil
}

// grow is the cold path: commit enough whole chunks to hold [beg, beg+size).
func (a *Arena) grow(beg, size int) error {
	if beg > a.capacity || size > a.capacity-beg {
		return fmt.Errorf("%w: %d bytes at offset %d exceed capacity %d", ErrAllocationFailed, size, beg, a.capacity)
	}

	commit := alignUp(beg+size, ChunkSize)
	delta := commit - a.committed

	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(int64(delta)); err != nil {
			return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		}
	}
	if err := a.region.Commit(a.committed, delta); err != nil {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(int64(delta))
		}
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	if a.acquirer != nil {
		a.acquired += int64(delta)
	}

	a.committed = commit
	a.stats.Commits++
	if a.logger != nil {
		a.logger.Debug("arena committed", "committed", commit, "capacity", a.capacity)
	}
	return nil
}

// Reset moves the offset to a value previously returned by Offset, freeing
// everything allocated since. Freed bytes (plus a short lookahead) are
// poisoned. Reset never decommits.
func (a *Arena) Reset(to int) {
	if to < 0 || to > a.committed {
		panic(fmt.Sprintf("arena: reset to %d outside committed range [0, %d]", to, a.committed))
	}
	if a.poison && a.offset > to {
		a.fill(to, min(a.offset+PoisonLookahead, a.committed), PoisonFree)
	}
	a.offset = to
	a.stats.Resets++
}

// fill writes b into mem[from:to] by doubling copies.
func (a *Arena) fill(from, to int, b byte) {
	if from >= to {
		return
	}
	s := a.mem[from:to]
	s[0] = b
	for n := 1; n < len(s); n *= 2 {
		copy(s[n:], s[:n])
	}
}

// Offset returns the number of bytes in use.
func (a *Arena) Offset() int {
	return a.offset
}

// Committed returns the committed watermark in bytes.
func (a *Arena) Committed() int {
	return a.committed
}

// Capacity returns the reserved capacity in bytes.
func (a *Arena) Capacity() int {
	return a.capacity
}

// OffsetOf reports the arena offset of the first byte of b, if b was carved
// out of this arena's committed memory.
func (a *Arena) OffsetOf(b []byte) (int, bool) {
	if cap(b) == 0 || a.committed == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.mem))) //nolint:gosec // address comparison only
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))        //nolint:gosec // address comparison only
	if p < base || p >= base+uintptr(a.committed) {
		return 0, false
	}
	return int(p - base), true
}

// Target returns a itself; it lets *Arena stand in wherever an Allocator is
// expected.
func (a *Arena) Target() *Arena {
	return a
}

func (a *Arena) identity() *Arena {
	return a
}

// Close releases the reservation and any memory budget it holds. Every
// slice handed out by the arena becomes invalid. The arena reverts to the
// empty state. Close is idempotent.
func (a *Arena) Close() error {
	var err error
	if a.region != nil {
		err = a.region.Close()
	}
	if a.acquirer != nil && a.acquired > 0 {
		a.acquirer.ReleaseMemory(a.acquired)
	}

	a.region = nil
	a.mem = nil
	a.capacity, a.committed, a.offset, a.acquired = 0, 0, 0, 0
	a.stats.Capacity = 0
	return err
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	s := a.stats
	s.Committed = a.committed
	s.Offset = a.offset
	return s
}

func (a *Arena) String() string {
	return fmt.Sprintf(
		"Arena{capacity: %.2f MB, committed: %.2f MB, offset: %d, peak: %d, allocs: %d, failures: %d}",
		float64(a.capacity)/(1024*1024),
		float64(a.committed)/(1024*1024),
		a.offset,
		a.stats.Peak,
		a.stats.Allocs,
		a.stats.Failures,
	)
}

// maxCapacity keeps alignUp(capacity, ChunkSize) from overflowing.
const maxCapacity = int(^uint(0)>>1) - ChunkSize

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
