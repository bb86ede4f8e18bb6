package vt

import (
	"encoding/base64"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/scratch"
)

const (
	osc52Prefix = "\x1b]52;c;"
	bel         = "\a"
)

// ResizeSequence formats the window size report ESC [ 8 ; h ; w t.
func ResizeSequence(a arena.Allocator, width, height int) (*arena.String, error) {
	return arena.Sprintf(a, "\x1b[8;%d;%dt", height, width)
}

// InjectResize prepends a window size report to result, so an input parser
// sees the new size before any key that arrived with it. The sequence is
// built in a scratch arena distinct from result's. Non-positive sizes are
// ignored.
func InjectResize(pool *scratch.Pool, result *arena.String, width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	s := pool.Acquire(result.Allocator())
	defer s.Release()

	seq, err := ResizeSequence(s, width, height)
	if err != nil {
		return err
	}
	if err := result.ReplaceRange(0, 0, seq.String()); err != nil {
		return err
	}
	result.ShrinkToFit()
	return nil
}

// Clipboard builds an OSC 52 sequence that asks the terminal to put data on
// the system clipboard.
func Clipboard(a arena.Allocator, data []byte) (*arena.String, error) {
	s := arena.NewString(a)
	if err := s.Reserve(len(osc52Prefix) + base64.StdEncoding.EncodedLen(len(data)) + len(bel)); err != nil {
		return nil, err
	}
	if err := s.PushString(osc52Prefix); err != nil {
		return nil, err
	}

	enc := base64.NewEncoder(base64.StdEncoding, s)
	if _, err := enc.Write(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	if err := s.PushString(bel); err != nil {
		return nil, err
	}
	return s, nil
}
