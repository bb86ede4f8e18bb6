// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent overflow when converting
// between signed/unsigned and different bit-width integer types.
//
// Use cases:
//   - File sizes reported as int64 that must become arena lengths
//   - Document byte offsets stored in 32-bit line indexes
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
