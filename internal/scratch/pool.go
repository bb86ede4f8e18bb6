package scratch

import (
	"errors"

	"github.com/hupe1980/whitedew/internal/arena"
)

// Pool holds two scratch arenas. A caller that already holds one can always
// get the other by naming it as the conflict.
//
// The zero value is usable: both slots are empty arenas, so any allocation
// larger than zero bytes fails until Init succeeds.
type Pool struct {
	slots [2]*arena.Arena
}

// NewPool creates a pool whose two arenas each reserve capacity bytes.
func NewPool(capacity int, opts ...arena.Option) (*Pool, error) {
	p := &Pool{}
	if err := p.Init(capacity, opts...); err != nil {
		return nil, err
	}
	return p, nil
}

// Init reserves both arenas. It must not be called while scratch arenas from
// p are live. On failure p is left as it was.
func (p *Pool) Init(capacity int, opts ...arena.Option) error {
	var fresh [2]*arena.Arena
	for i := range fresh {
		a, err := arena.New(capacity, opts...)
		if err != nil {
			for _, prev := range fresh[:i] {
				_ = prev.Close()
			}
			return err
		}
		fresh[i] = a
	}

	old := p.slots
	p.slots = fresh
	for _, a := range old {
		if a != nil {
			_ = a.Close()
		}
	}
	return nil
}

func (p *Pool) slot(i int) *arena.Arena {
	if p.slots[i] == nil {
		p.slots[i] = new(arena.Arena)
	}
	return p.slots[i]
}

// Acquire borrows a scratch arena. If conflict is one of the pool's arenas
// (or a handle to one), the other arena is returned; otherwise slot 0.
//
// The result must be released, normally with defer s.Release(), before any
// scratch arena acquired earlier from the same slot is used again.
func (p *Pool) Acquire(conflict arena.Allocator) *Scratch {
	a := p.slot(0)
	if id := arena.Identity(conflict); id != nil && id == a {
		a = p.slot(1)
	}
	return newScratch(a)
}

// With runs fn with a scratch arena and releases it on every exit path,
// including a panic in fn.
func (p *Pool) With(conflict arena.Allocator, fn func(s *Scratch) error) error {
	s := p.Acquire(conflict)
	defer s.Release()
	return fn(s)
}

// Stats returns the statistics of both slots.
func (p *Pool) Stats() [2]arena.Stats {
	return [2]arena.Stats{p.slot(0).Stats(), p.slot(1).Stats()}
}

// Close releases both reservations. The pool reverts to its zero state.
func (p *Pool) Close() error {
	var errs []error
	for i, a := range p.slots {
		if a == nil {
			continue
		}
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
		p.slots[i] = nil
	}
	return errors.Join(errs...)
}
