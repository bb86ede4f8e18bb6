// Package arena provides a reserve-then-commit bump allocator, a checked
// handle layer that enforces LIFO borrowing, and an arena-backed UTF-8 string.
//
// # Features
//
//   - One contiguous reservation per arena; pages committed in 64 KiB chunks
//   - O(1) hot path: align, bump, return
//   - Release only by resetting to an earlier offset (stack, not heap)
//   - Allocation and reset poisoning (0xCD / 0xDD) to expose stale reads
//   - Borrow generations that catch out-of-order scratch release
//
// # Memory Model
//
// New reserves the full capacity up front without access rights. Allocation
// advances an offset; when the offset crosses the committed watermark the
// next 64 KiB chunks are committed. Capacity is a hard ceiling: an arena never
// grows its reservation.
//
//	a, _ := arena.New(1 << 20)
//	defer a.Close()
//
//	mark := a.Offset()
//	buf, err := a.Alloc(100, 8)
//	...
//	a.Reset(mark) // frees buf and everything allocated after it
//
// On platforms without virtual memory primitives the HeapBackend allocates
// the whole capacity eagerly. Addresses stay stable either way.
//
// # Safety
//
// Allocation failure (capacity exhausted, commit refused) is the only error.
// Misuse is a programming error and panics: a stale or out-of-order handle,
// a non power-of-two alignment, a string range that splits a code point.
// Build with the arena_unchecked tag to drop the borrow assertions.
//
// Memory returned by an arena must not be used after the offset it was
// allocated at has been reset, or after Close. Nothing checks this.
//
// # Concurrency
//
// None. An arena, its handles and its strings belong to one goroutine.
package arena
