// Package resource implements the process-wide budgets the arenas and the
// output sink draw from.
//
//   - Memory: every chunk an arena commits is charged here (non-blocking, fail-fast)
//   - IO: token bucket on bytes written to the terminal
//
// # Architecture
//
//	┌───────────────────────────────────────────┐
//	│              Controller                   │
//	├─────────────────────┬─────────────────────┤
//	│  Memory Limit       │  IO Rate Limiter    │
//	│  (fail-fast)        │  (token bucket)     │
//	├─────────────────────┼─────────────────────┤
//	│  AcquireMemory      │  AcquireIO          │
//	│  ReleaseMemory      │  TryAcquireIO       │
//	│  MemoryUsage/Peak   │  RateLimitedWriter  │
//	└─────────────────────┴─────────────────────┘
//
// # Memory
//
// A Controller satisfies arena.MemoryAcquirer, so it plugs straight into
// arena construction:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 256 << 20})
//	a, err := arena.New(128<<20, arena.WithMemoryAcquirer(rc))
//
// Capacity is only address space; the budget is charged as chunks are
// committed. A refused charge fails the allocation that needed it with an
// error wrapping both arena.ErrAllocationFailed and ErrMemoryLimitExceeded.
//
// # IO
//
//	w := resource.NewRateLimitedWriter(ctx, os.Stdout, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
