// Package mmap provides the virtual-memory primitives the arena allocator is
// built on, plus read-only file mappings.
//
// # Reserve / Commit
//
// A Reservation is a range of address space obtained without access rights.
// Sub-ranges become readable and writable only after Commit:
//
//	r, err := mmap.Reserve(128 << 20) // 128 MiB of address space, no pages
//	if err != nil { ... }
//	defer r.Close()
//
//	// Grant read/write access to the first 64 KiB.
//	if err := r.Commit(0, 64<<10); err != nil { ... }
//	buf := r.Bytes()[:64<<10]
//
// There is no decommit. Committed pages stay committed until the whole
// reservation is released by Close.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with PROT_NONE, then mprotect(2)
//   - Windows: VirtualAlloc with MEM_RESERVE, then MEM_COMMIT
//   - Other platforms: Reserve returns ErrUnsupported and callers fall back to
//     heap memory
//
// # File Mappings
//
// Open maps a file read-only for zero-copy access. Advise passes access
// pattern hints to the kernel (a no-op on Windows).
//
// # Thread Safety
//
// Close is idempotent and safe to call from any goroutine. Everything else
// assumes a single owner; callers must not touch Bytes() after Close returns.
package mmap
