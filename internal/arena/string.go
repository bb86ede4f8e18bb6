package arena

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// minStringCap is the smallest buffer a growing String asks for.
const minStringCap = 8

// String is a growable UTF-8 buffer whose storage comes from an arena.
//
// Growing requests a larger block from the same allocator and copies; the old
// block stays behind as dead space until the arena is reset. The contents are
// always valid UTF-8: every write path either verifies its input or replaces
// ill-formed subsequences with U+FFFD.
//
// A String must not outlive the scope of its allocator.
type String struct {
	alloc Allocator
	buf   []byte

	// borrowed is set while buf is the caller's slice from
	// StringFromUTF8Lossy. Such a buffer is read-only; the first edit moves
	// the contents into alloc.
	borrowed bool
}

// NewString returns an empty string that allocates from a.
func NewString(a Allocator) *String {
	return &String{alloc: a}
}

// StringFromUTF8Lossy turns text into a String, replacing each maximal
// ill-formed subsequence with U+FFFD.
//
// If text is entirely valid, the result reuses text's bytes without copying
// or allocating. text is never written through the result: the first edit
// copies the contents into a. Otherwise a repaired copy is built in a.
func StringFromUTF8Lossy(a Allocator, text []byte) (*String, error) {
	if utf8.Valid(text) {
		return &String{alloc: a, buf: text[:len(text):len(text)], borrowed: len(text) > 0}, nil
	}

	s := NewString(a)
	if err := s.Reserve(len(text)); err != nil {
		return nil, err
	}
	if err := s.writeLossy(text); err != nil {
		return nil, err
	}
	return s, nil
}

// Sprintf formats into a new String allocated from a.
func Sprintf(a Allocator, format string, args ...any) (*String, error) {
	s := NewString(a)
	if _, err := fmt.Fprintf(s, format, args...); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the length in bytes.
func (s *String) Len() int {
	return len(s.buf)
}

// Cap returns the capacity of the current block in bytes.
func (s *String) Cap() int {
	return cap(s.buf)
}

// Bytes returns the contents. The slice aliases arena memory; writing
// invalid UTF-8 into it breaks the String's invariant.
func (s *String) Bytes() []byte {
	return s.buf
}

// String returns the contents without copying. The result is only valid
// while the arena memory behind s is.
func (s *String) String() string {
	if len(s.buf) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(s.buf), len(s.buf)) //nolint:gosec // zero-copy view of arena memory
}

// Reserve makes room for at least additional more bytes.
func (s *String) Reserve(additional int) error {
	if additional <= cap(s.buf)-len(s.buf) {
		return nil
	}
	return s.realloc(len(s.buf) + additional)
}

// realloc moves the contents into a fresh block holding at least need bytes.
func (s *String) realloc(need int) error {
	b, err := s.alloc.Alloc(max(2*cap(s.buf), need, minStringCap), 1)
	if err != nil {
		return err
	}
	n := copy(b, s.buf)
	s.buf = b[:n]
	s.borrowed = false
	return nil
}

// PushString appends str. Invalid UTF-8 in str is repaired.
func (s *String) PushString(str string) error {
	if !utf8.ValidString(str) {
		return s.writeLossy(unsafe.Slice(unsafe.StringData(str), len(str))) //nolint:gosec // read-only view
	}
	if err := s.Reserve(len(str)); err != nil {
		return err
	}
	s.buf = append(s.buf, str...)
	return nil
}

// PushRune appends the UTF-8 encoding of r. Invalid runes become U+FFFD.
func (s *String) PushRune(r rune) error {
	if err := s.Reserve(utf8.UTFMax); err != nil {
		return err
	}
	s.buf = utf8.AppendRune(s.buf, r)
	return nil
}

// Write appends p, repairing invalid UTF-8. It implements io.Writer so the
// String can be the target of fmt.Fprintf.
func (s *String) Write(p []byte) (int, error) {
	if err := s.writeLossy(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (s *String) WriteString(str string) (int, error) {
	if err := s.PushString(str); err != nil {
		return 0, err
	}
	return len(str), nil
}

func (s *String) writeLossy(p []byte) error {
	for len(p) > 0 {
		i := validPrefixLen(p)
		if err := s.Reserve(i); err != nil {
			return err
		}
		s.buf = append(s.buf, p[:i]...)
		p = p[i:]
		if len(p) == 0 {
			break
		}

		if err := s.Reserve(len(replacement)); err != nil {
			return err
		}
		s.buf = append(s.buf, replacement...)
		p = p[invalidPrefixLen(p):]
	}
	return nil
}

// IsCharBoundary reports whether i is 0, Len(), or the first byte of an
// encoded rune.
func (s *String) IsCharBoundary(i int) bool {
	if i == 0 || i == len(s.buf) {
		return true
	}
	return i > 0 && i < len(s.buf) && utf8.RuneStart(s.buf[i])
}

// ReplaceRange replaces bytes [start, end) with text.
//
// Both ends must lie on character boundaries; anything else panics. The tail
// is shifted in place when the current block is large enough, otherwise the
// result is assembled once in a new block. text must not alias s.
func (s *String) ReplaceRange(start, end int, text string) error {
	if start < 0 || start > end || end > len(s.buf) {
		panic(fmt.Sprintf("arena: replace range [%d:%d] out of bounds for length %d", start, end, len(s.buf)))
	}
	if !s.IsCharBoundary(start) || !s.IsCharBoundary(end) {
		panic(fmt.Sprintf("arena: replace range [%d:%d] is not on a char boundary", start, end))
	}
	if !utf8.ValidString(text) {
		text = string(appendValidUTF8(nil, []byte(text)))
	}

	oldLen := len(s.buf)
	newLen := oldLen - (end - start) + len(text)

	if s.borrowed || newLen > cap(s.buf) {
		b, err := s.alloc.Alloc(max(2*cap(s.buf), newLen, minStringCap), 1)
		if err != nil {
			return err
		}
		copy(b, s.buf[:start])
		copy(b[start:], text)
		copy(b[start+len(text):], s.buf[end:])
		s.buf = b[:newLen]
		s.borrowed = false
		return nil
	}

	full := s.buf[:max(oldLen, newLen)]
	copy(full[start+len(text):], full[end:oldLen])
	copy(full[start:], text)
	s.buf = full[:newLen]
	return nil
}

// Truncate shortens the string to n bytes. n must be a char boundary.
func (s *String) Truncate(n int) {
	if n < 0 || n > len(s.buf) || !s.IsCharBoundary(n) {
		panic(fmt.Sprintf("arena: truncate to %d is not a char boundary of a %d byte string", n, len(s.buf)))
	}
	if s.borrowed {
		// Clipping the capacity makes the next append reallocate.
		s.buf = s.buf[:n:n]
		return
	}
	s.buf = s.buf[:n]
}

// Clear empties the string, keeping its capacity. A string still viewing
// the caller's bytes from StringFromUTF8Lossy lets go of them instead.
func (s *String) Clear() {
	if s.borrowed {
		s.buf, s.borrowed = nil, false
		return
	}
	s.buf = s.buf[:0]
}

// ShrinkToFit gives unused capacity back to the arena.
//
// Arenas are stacks and cannot free from the middle, so this only has an
// effect when the string's block is the most recent allocation in its arena.
// In every other case it does nothing.
func (s *String) ShrinkToFit() {
	s.buf = Trim(s.alloc, s.buf)
}

// Allocator returns the allocator s grows from.
func (s *String) Allocator() Allocator {
	return s.alloc
}
