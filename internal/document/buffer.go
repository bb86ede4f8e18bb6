package document

import (
	"github.com/hupe1980/whitedew/internal/arena"
)

// arenaWriter is an io.Writer that collects raw bytes in an arena. Growing
// abandons the old block, so writers should be the only user of their arena
// while filling.
type arenaWriter struct {
	a   arena.Allocator
	buf []byte
}

func (w *arenaWriter) Write(p []byte) (int, error) {
	if need := len(w.buf) + len(p); need > cap(w.buf) {
		b, err := w.a.Alloc(max(2*cap(w.buf), need, arena.ChunkSize), 1)
		if err != nil {
			return 0, err
		}
		w.buf = b[:copy(b, w.buf)]
	}
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Bytes returns the collected bytes with unused capacity given back to the
// arena.
func (w *arenaWriter) Bytes() []byte {
	w.buf = arena.Trim(w.a, w.buf)
	return w.buf
}
