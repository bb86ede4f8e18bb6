package arena

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/whitedew/testutil"
)

func TestStringFromUTF8Lossy(t *testing.T) {
	t.Run("valid input is reused", func(t *testing.T) {
		a := newArena(t, ChunkSize)
		input := []byte("grüße, 世界")

		s, err := StringFromUTF8Lossy(a, input)
		require.NoError(t, err)

		assert.Equal(t, "grüße, 世界", s.String())
		assert.Equal(t, addr(input), addr(s.Bytes()))
		assert.Equal(t, 0, a.Offset())
		assert.Equal(t, uint64(0), a.Stats().Allocs)
	})

	t.Run("edits never write into the input", func(t *testing.T) {
		tests := []struct {
			name string
			edit func(s *String) error
			want string
		}{
			{"replace shrinking", func(s *String) error { return s.ReplaceRange(0, 5, "bye") }, "bye world"},
			{"replace same length", func(s *String) error { return s.ReplaceRange(6, 11, "there") }, "hello there"},
			{"truncate then push", func(s *String) error { s.Truncate(0); return s.PushString("xy") }, "xy"},
			{"truncate then rune", func(s *String) error { s.Truncate(5); return s.PushRune('!') }, "hello!"},
			{"clear then write", func(s *String) error {
				s.Clear()
				_, err := s.Write([]byte("ab"))
				return err
			}, "ab"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				a := newArena(t, ChunkSize)
				input := []byte("hello world")

				s, err := StringFromUTF8Lossy(a, input)
				require.NoError(t, err)
				require.NoError(t, tt.edit(s))

				assert.Equal(t, tt.want, s.String())
				assert.Equal(t, "hello world", string(input))
				_, inArena := a.OffsetOf(s.Bytes())
				assert.True(t, inArena, "edited contents live in the arena")
			})
		}
	})

	t.Run("single invalid byte", func(t *testing.T) {
		a := newArena(t, ChunkSize)

		s, err := StringFromUTF8Lossy(a, []byte("abc\xffdef"))
		require.NoError(t, err)

		assert.Equal(t, "abc�def", s.String())
		assert.Equal(t, 1, strings.Count(s.String(), "�"))
		_, ok := a.OffsetOf(s.Bytes())
		assert.True(t, ok)
	})

	t.Run("maximal subparts", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"\x80", "�"},
			{"a\x80\x80b", "a��b"},
			{"\xC0\xAF", "��"},
			{"\xC2", "�"},
			{"\xC2a", "�a"},
			{"\xE2\x82a", "�a"},
			{"\xE2\x82", "�"},
			{"\xE0\x80\x80", "���"},
			{"\xE0\xA0", "�"},
			{"\xED\xA0\x80", "���"},
			{"\xF0\x9F\x98", "�"},
			{"\xF0\x9F\x98a", "�a"},
			{"\xF0\x80\x80\x80", "����"},
			{"\xF4\x90\x80\x80", "����"},
			{"\xF4\x8F\xBF", "�"},
			{"\xF5\x80", "��"},
			{"\xFF\xFE", "��"},
			{"x\xF0\x9F\x98\x80y", "x😀y"},
		}

		a := newArena(t, ChunkSize)
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
				s, err := StringFromUTF8Lossy(a, []byte(tt.in))
				require.NoError(t, err)
				assert.Equal(t, tt.want, s.String())
			})
		}
	})

	t.Run("output is always valid", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		a := newArena(t, 1<<20)

		for range 100 {
			s, err := StringFromUTF8Lossy(a, rng.MixedBytes(16))
			require.NoError(t, err)
			assert.True(t, utf8.Valid(s.Bytes()))
		}
	})

	t.Run("allocation failure", func(t *testing.T) {
		a := newArena(t, ChunkSize)
		_, err := a.Alloc(ChunkSize, 1)
		require.NoError(t, err)

		_, err = StringFromUTF8Lossy(a, []byte("\xff"))
		assert.ErrorIs(t, err, ErrAllocationFailed)
	})
}

func TestString_Push(t *testing.T) {
	a := newArena(t, ChunkSize)
	s := NewString(a)

	require.NoError(t, s.PushString("hello"))
	assert.Equal(t, 8, s.Cap())
	require.NoError(t, s.PushRune(' '))
	require.NoError(t, s.PushRune('世'))
	require.NoError(t, s.PushString("!\xff"))
	require.NoError(t, s.PushRune(utf8.MaxRune+1))

	assert.Equal(t, "hello 世!��", s.String())
	assert.True(t, utf8.Valid(s.Bytes()))
}

func TestString_Growth(t *testing.T) {
	a := newArena(t, ChunkSize)
	s := NewString(a)

	caps := []int{}
	for range 40 {
		require.NoError(t, s.PushRune('x'))
		if len(caps) == 0 || caps[len(caps)-1] != s.Cap() {
			caps = append(caps, s.Cap())
		}
	}

	assert.Equal(t, []int{8, 16, 32, 64}, caps)
	assert.Equal(t, strings.Repeat("x", 40), s.String())
}

func TestString_Writer(t *testing.T) {
	a := newArena(t, ChunkSize)
	s := NewString(a)

	n, err := s.Write([]byte("a\xffb"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.WriteString("cd")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = fmt.Fprintf(s, "-%d", 7)
	require.NoError(t, err)

	assert.Equal(t, "a�bcd-7", s.String())
}

func TestSprintf(t *testing.T) {
	a := newArena(t, ChunkSize)

	s, err := Sprintf(a, "%s=%d", "answer", 42)
	require.NoError(t, err)
	assert.Equal(t, "answer=42", s.String())

	full := newArena(t, ChunkSize)
	_, err = full.Alloc(ChunkSize, 1)
	require.NoError(t, err)

	_, err = Sprintf(full, "%d", 1)
	assert.ErrorIs(t, err, ErrAllocationFailed)
}

func TestString_ReplaceRange(t *testing.T) {
	newString := func(t *testing.T, text string, capacity int) *String {
		a := newArena(t, ChunkSize)
		s := NewString(a)
		require.NoError(t, s.Reserve(capacity))
		require.NoError(t, s.PushString(text))
		return s
	}

	tests := []struct {
		name       string
		text       string
		start, end int
		repl       string
		want       string
	}{
		{"insert at front", "world", 0, 0, "hello ", "hello world"},
		{"append", "hello", 5, 5, "!", "hello!"},
		{"shrink middle", "abcdef", 1, 5, "X", "aXf"},
		{"grow middle", "abcdef", 2, 3, "XYZ", "abXYZdef"},
		{"delete", "abcdef", 0, 6, "", ""},
		{"multibyte", "héllo", 1, 3, "e", "hello"},
		{"invalid replacement", "ab", 1, 1, "\xff", "a�b"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/in place", func(t *testing.T) {
			s := newString(t, tt.text, 64)
			before := addr(s.Bytes()[:s.Cap()])

			require.NoError(t, s.ReplaceRange(tt.start, tt.end, tt.repl))
			assert.Equal(t, tt.want, s.String())
			assert.Equal(t, before, addr(s.Bytes()[:s.Cap()]))
		})

		t.Run(tt.name+"/realloc", func(t *testing.T) {
			s := newString(t, tt.text, len(tt.text))

			require.NoError(t, s.ReplaceRange(tt.start, tt.end, tt.repl))
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestString_ReplaceRangePanics(t *testing.T) {
	a := newArena(t, ChunkSize)
	s, err := StringFromUTF8Lossy(a, []byte("héllo"))
	require.NoError(t, err)

	assert.Panics(t, func() { _ = s.ReplaceRange(2, 2, "x") }, "start inside é")
	assert.Panics(t, func() { _ = s.ReplaceRange(0, 2, "x") }, "end inside é")
	assert.Panics(t, func() { _ = s.ReplaceRange(3, 1, "") })
	assert.Panics(t, func() { _ = s.ReplaceRange(0, 7, "") })
	assert.Equal(t, "héllo", s.String())
}

func TestString_Truncate(t *testing.T) {
	a := newArena(t, ChunkSize)
	s := NewString(a)
	require.NoError(t, s.PushString("añb"))

	assert.Panics(t, func() { s.Truncate(2) })

	s.Truncate(3)
	assert.Equal(t, "añ", s.String())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
	assert.Equal(t, 8, s.Cap())
}

func TestString_ShrinkToFit(t *testing.T) {
	t.Run("top of stack", func(t *testing.T) {
		a := newArena(t, ChunkSize)
		s := NewString(a)
		require.NoError(t, s.PushString("hello"))
		require.Equal(t, 8, a.Offset())

		s.ShrinkToFit()
		assert.Equal(t, 5, a.Offset())
		assert.Equal(t, 5, s.Cap())
		assert.Equal(t, "hello", s.String())
	})

	t.Run("not top of stack", func(t *testing.T) {
		a := newArena(t, ChunkSize)
		s := NewString(a)
		require.NoError(t, s.PushString("hello"))
		_, err := a.Alloc(4, 1)
		require.NoError(t, err)

		s.ShrinkToFit()
		assert.Equal(t, 12, a.Offset())
		assert.Equal(t, 8, s.Cap())
	})

	t.Run("borrowed input", func(t *testing.T) {
		a := newArena(t, ChunkSize)
		s, err := StringFromUTF8Lossy(a, make([]byte, 3, 16))
		require.NoError(t, err)

		s.ShrinkToFit()
		assert.Equal(t, 0, a.Offset())
	})

	t.Run("through handle", func(t *testing.T) {
		a := newArena(t, ChunkSize)
		h := Delegate(a)
		defer func() { _ = h.Close() }()

		s := NewString(h)
		require.NoError(t, s.PushString("abc"))
		s.ShrinkToFit()
		assert.Equal(t, 3, h.Offset())
	})
}

func BenchmarkStringFromUTF8Lossy(b *testing.B) {
	a, err := New(1 << 20)
	require.NoError(b, err)
	defer a.Close()

	valid := []byte(strings.Repeat("grüße ", 256))
	mixed := testutil.NewRNG(1).MixedBytes(512)

	b.Run("valid", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_, _ = StringFromUTF8Lossy(a, valid)
		}
	})

	b.Run("mixed", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			mark := a.Offset()
			_, _ = StringFromUTF8Lossy(a, mixed)
			a.Reset(mark)
		}
	})
}
