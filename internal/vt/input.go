package vt

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/hupe1980/whitedew/internal/arena"
)

// ReadChunkSize is how much ReadInput asks the reader for at once.
const ReadChunkSize = 4 * 1024

// Carry holds the tail of a UTF-8 sequence that a read split in half.
// The zero value is empty.
type Carry struct {
	buf [utf8.UTFMax - 1]byte
	n   int
}

// Len returns the number of carried bytes.
func (c *Carry) Len() int {
	return c.n
}

// ReadInput performs one read from r into a and returns the data as text.
//
// Bytes carried over from the previous call are prepended. If the data ends
// in the middle of a multi-byte sequence, that tail is stored in carry
// instead of being replaced. Anything else that is not valid UTF-8 becomes
// U+FFFD. Unused buffer space is handed back to the arena.
//
// At end of input ReadInput returns io.EOF. A carried tail that never got
// completed is dropped at that point.
func ReadInput(a arena.Allocator, r io.Reader, carry *Carry) (*arena.String, error) {
	buf, err := a.Alloc(ReadChunkSize, 1)
	if err != nil {
		return nil, err
	}
	n := copy(buf, carry.buf[:carry.n])
	carry.n = 0

	for {
		m, err := r.Read(buf[n:])
		n += m
		if m > 0 {
			break
		}
		if errors.Is(err, io.EOF) {
			arena.Trim(a, buf[:0])
			return nil, io.EOF
		}
		if err != nil {
			arena.Trim(a, buf[:0])
			return nil, err
		}
	}

	n = splitIncomplete(buf[:n], carry)
	return arena.StringFromUTF8Lossy(a, arena.Trim(a, buf[:n]))
}

// splitIncomplete moves a trailing incomplete UTF-8 sequence of p into
// carry and returns the length of what remains. Only the last three bytes
// are inspected; a four byte sequence is always complete.
func splitIncomplete(p []byte, carry *Carry) int {
	if len(p) == 0 {
		return 0
	}

	lim := max(len(p)-(utf8.UTFMax-1), 0)
	off := len(p) - 1
	for off > lim && p[off]&0xC0 == 0x80 {
		off--
	}

	var seqLen int
	switch b := p[off]; {
	case b&0x80 == 0:
		seqLen = 1
	case b&0xE0 == 0xC0:
		seqLen = 2
	case b&0xF0 == 0xE0:
		seqLen = 3
	case b&0xF8 == 0xF0:
		seqLen = 4
	}

	if seqLen == 0 || off+seqLen <= len(p) {
		return len(p)
	}
	carry.n = copy(carry.buf[:], p[off:])
	return off
}
