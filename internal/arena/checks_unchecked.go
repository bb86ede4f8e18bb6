//go:build arena_unchecked

package arena

// ChecksEnabled reports whether borrow assertions are compiled in.
const ChecksEnabled = false
