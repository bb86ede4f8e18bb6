// Package scratch provides a pool of two scratch arenas for temporary
// allocations with strictly nested lifetimes.
//
// # Usage
//
//	pool, err := scratch.NewPool(128 << 20)
//	...
//	s := pool.Acquire(nil)
//	defer s.Release()
//
//	tmp, err := arena.Sprintf(s, "%d;%d", w, h)
//
// A function that receives an arena from its caller and needs its own
// temporary memory passes that arena as the conflict, so the two never
// share a slot:
//
//	func render(out arena.Allocator, pool *scratch.Pool) error {
//		s := pool.Acquire(out)
//		defer s.Release()
//		...
//	}
//
// # Concurrency
//
// A Pool belongs to one goroutine. Give each worker its own pool.
package scratch
