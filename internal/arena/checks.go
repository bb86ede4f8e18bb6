//go:build !arena_unchecked

package arena

// ChecksEnabled reports whether borrow assertions are compiled in.
// Build with -tags arena_unchecked to turn them off.
const ChecksEnabled = true
