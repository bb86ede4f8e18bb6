package scratch

import (
	"github.com/hupe1980/whitedew/internal/arena"
)

// Scratch is a borrowed scratch arena. Release rewinds the arena to where it
// was at acquisition, freeing everything allocated through s.
//
// Scratch satisfies arena.Allocator, so it can back arena.String values and
// be passed as the conflict to a nested Acquire.
type Scratch struct {
	*arena.Handle

	mark     int
	released bool
}

func newScratch(a *arena.Arena) *Scratch {
	h := arena.Delegate(a)
	return &Scratch{
		Handle: h,
		mark:   a.Offset(),
	}
}

// Mark returns the arena offset recorded at acquisition.
func (s *Scratch) Mark() int {
	return s.mark
}

// Release returns the borrow and resets the arena to Mark. Scratch arenas of
// one slot must be released in reverse acquisition order; violating that
// panics when borrow checks are enabled. Calling Release again is a no-op.
func (s *Scratch) Release() {
	if s.released {
		return
	}
	a := arena.Identity(s.Handle)
	_ = s.Handle.Close()
	s.released = true
	a.Reset(s.mark)
}
