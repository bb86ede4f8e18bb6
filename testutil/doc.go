// Package testutil provides testing utilities for whitedew.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for allocation patterns and text.
//
// # Allocation Patterns
//
//	rng := testutil.NewRNG(seed)
//	for _, req := range rng.Allocs(1000, 256, 64) {
//		buf, err := a.Alloc(req.Size, req.Align)
//		...
//	}
//
// # Text
//
//	s := rng.Text(16)         // 16 runes of valid UTF-8
//	b := rng.MixedBytes(32)   // valid fragments mixed with ill-formed ones
package testutil
