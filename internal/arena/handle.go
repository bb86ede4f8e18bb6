package arena

// Allocator is anything that hands out arena memory: an *Arena, a *Handle,
// or a type embedding *Handle such as a scratch arena.
//
// The interface is sealed; implementations outside this package must embed
// one of the above.
type Allocator interface {
	// Alloc returns size bytes aligned to align. See Arena.Alloc.
	Alloc(size, align int) ([]byte, error)
	// Target returns the underlying arena, asserting the caller is not stale.
	Target() *Arena

	identity() *Arena
}

// Identity returns the arena behind a without any borrow assertion, or nil.
// It is meant for identity comparisons only.
func Identity(a Allocator) *Arena {
	if a == nil {
		return nil
	}
	return a.identity()
}

const (
	msgStale    = "arena: already borrowed by a newer scratch arena"
	msgOrder    = "arena: scratch arenas released out of order"
	msgReleased = "arena: use of a closed handle"
)

// Handle wraps an arena either by owning it or by delegating to a shared one.
//
// A delegating handle records the arena's borrow generation at creation.
// Every access asserts that no newer delegate has been created since, and
// Close asserts it is the most recent delegate still alive. Together these
// force delegates of one arena to be released in exact reverse order.
type Handle struct {
	arena     *Arena
	borrow    int
	delegated bool
	closed    bool
}

// Own wraps a privately owned arena. Closing the handle closes the arena.
func Own(a *Arena) *Handle {
	return &Handle{arena: a}
}

// NewOwned reserves a new arena and wraps it in an owning handle.
func NewOwned(capacity int, opts ...Option) (*Handle, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return Own(a), nil
}

// Delegate borrows a shared arena and bumps its borrow generation.
func Delegate(a *Arena) *Handle {
	a.borrows++
	return &Handle{
		arena:     a,
		borrow:    a.borrows,
		delegated: true,
	}
}

func (h *Handle) target() *Arena {
	if ChecksEnabled {
		if h.closed {
			panic(msgReleased)
		}
		if h.delegated && h.borrow != h.arena.borrows {
			panic(msgStale)
		}
	}
	return h.arena
}

// Target returns the wrapped arena.
func (h *Handle) Target() *Arena {
	return h.target()
}

func (h *Handle) identity() *Arena {
	if h == nil {
		return nil
	}
	return h.arena
}

// Alloc allocates from the wrapped arena.
func (h *Handle) Alloc(size, align int) ([]byte, error) {
	return h.target().Alloc(size, align)
}

// AllocBytes allocates size bytes with no alignment requirement.
func (h *Handle) AllocBytes(size int) ([]byte, error) {
	return h.target().Alloc(size, 1)
}

// Offset returns the wrapped arena's offset.
func (h *Handle) Offset() int {
	return h.target().Offset()
}

// Reset resets the wrapped arena. See Arena.Reset.
func (h *Handle) Reset(to int) {
	h.target().Reset(to)
}

// Delegated reports whether h borrows a shared arena.
func (h *Handle) Delegated() bool {
	return h.delegated
}

// Close ends the handle. A delegating handle gives its borrow back; an
// owning handle closes its arena. Closing twice is a no-op.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	if !h.delegated {
		h.closed = true
		return h.arena.Close()
	}

	if ChecksEnabled && h.borrow != h.arena.borrows {
		panic(msgOrder)
	}
	h.arena.borrows--
	h.closed = true
	return nil
}

// Trim gives the unused capacity of b back to a's arena when b is the most
// recent allocation there, and returns b with capacity equal to length.
// Otherwise b is returned unchanged.
func Trim(a Allocator, b []byte) []byte {
	if cap(b) == len(b) {
		return b
	}
	t := a.Target()
	off, ok := t.OffsetOf(b[:cap(b)])
	if !ok || off+cap(b) != t.Offset() {
		return b
	}
	t.Reset(off + len(b))
	return b[:len(b):len(b)]
}
