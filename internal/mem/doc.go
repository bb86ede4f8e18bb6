// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// AllocAligned returns heap buffers whose base address is aligned to at least
// 64 bytes. The arena's heap backend uses it so that offset alignment inside
// the arena translates into address alignment.
package mem
