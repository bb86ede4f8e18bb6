// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the default base alignment (one cache line, AVX-512 friendly).
const Alignment = 64

// AllocAligned allocates a heap byte slice of the given size whose first byte
// sits at an address divisible by align. align must be a power of two; values
// below Alignment are raised to Alignment.
//
// The slice is carved out of a slightly larger allocation; the returned slice
// keeps the whole backing array alive. Its capacity equals its length.
func AllocAligned(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align < Alignment {
		align = Alignment
	}
	if align&(align-1) != 0 {
		panic("mem: alignment must be a power of two")
	}

	buf := make([]byte, size+align)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf))) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := int((uintptr(align) - (addr & mask)) & mask)

	return buf[offset : offset+size : offset+size]
}
