package vt

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/scratch"
)

func newPool(t *testing.T) *scratch.Pool {
	t.Helper()
	p, err := scratch.NewPool(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestResizeSequence(t *testing.T) {
	h, err := arena.NewOwned(arena.ChunkSize)
	require.NoError(t, err)
	defer h.Close()

	s, err := ResizeSequence(h, 120, 40)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[8;40;120t", s.String())
}

func TestInjectResize(t *testing.T) {
	p := newPool(t)

	outer := p.Acquire(nil)
	defer outer.Release()

	result, err := arena.StringFromUTF8Lossy(outer, []byte("ab"))
	require.NoError(t, err)

	require.NoError(t, InjectResize(p, result, 80, 24))
	assert.Equal(t, "\x1b[8;24;80tab", result.String())
	assert.Equal(t, 0, p.Stats()[1].Offset, "scratch released")

	t.Run("ignores empty size", func(t *testing.T) {
		require.NoError(t, InjectResize(p, result, 0, 24))
		assert.Equal(t, "\x1b[8;24;80tab", result.String())
	})
}

func TestClipboard(t *testing.T) {
	h, err := arena.NewOwned(arena.ChunkSize)
	require.NoError(t, err)
	defer h.Close()

	data := []byte("hello, clipboard")
	s, err := Clipboard(h, data)
	require.NoError(t, err)

	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString(data) + "\a"
	assert.Equal(t, want, s.String())
	assert.Equal(t, len(want), s.Cap(), "encoded in place")

	empty, err := Clipboard(h, nil)
	require.NoError(t, err)
	assert.Equal(t, "\x1b]52;c;\a", empty.String())
}

func TestReadInput(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		a, err := arena.New(arena.ChunkSize)
		require.NoError(t, err)
		defer a.Close()

		var carry Carry
		s, err := ReadInput(a, strings.NewReader("hello"), &carry)
		require.NoError(t, err)
		assert.Equal(t, "hello", s.String())
		assert.Equal(t, 5, a.Offset(), "unused buffer returned")
	})

	t.Run("split sequence is carried", func(t *testing.T) {
		a, err := arena.New(arena.ChunkSize)
		require.NoError(t, err)
		defer a.Close()

		euro := []byte("€") // e2 82 ac
		r := iotest.OneByteReader(bytes.NewReader(append([]byte("a"), euro...)))

		var carry Carry
		var got []string
		for {
			s, err := ReadInput(a, r, &carry)
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			got = append(got, s.String())
		}

		assert.Equal(t, []string{"a", "", "", "€"}, got)
		assert.Equal(t, 0, carry.Len())
	})

	t.Run("chunk boundary", func(t *testing.T) {
		a, err := arena.New(arena.ChunkSize)
		require.NoError(t, err)
		defer a.Close()

		input := strings.Repeat("x", ReadChunkSize-1) + "é!"
		var carry Carry

		first, err := ReadInput(a, strings.NewReader(input), &carry)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("x", ReadChunkSize-1), first.String())
		assert.Equal(t, 1, carry.Len())

		second, err := ReadInput(a, strings.NewReader("\xa9!"), &carry)
		require.NoError(t, err)
		assert.Equal(t, "é!", second.String())
	})

	t.Run("invalid bytes", func(t *testing.T) {
		a, err := arena.New(arena.ChunkSize)
		require.NoError(t, err)
		defer a.Close()

		var carry Carry
		s, err := ReadInput(a, strings.NewReader("a\xffb\xc3"), &carry)
		require.NoError(t, err)
		assert.Equal(t, "a�b", s.String())
		assert.Equal(t, 1, carry.Len())
	})

	t.Run("eof", func(t *testing.T) {
		a, err := arena.New(arena.ChunkSize)
		require.NoError(t, err)
		defer a.Close()

		var carry Carry
		_, err = ReadInput(a, strings.NewReader(""), &carry)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 0, a.Offset())
	})

	t.Run("reader error", func(t *testing.T) {
		a, err := arena.New(arena.ChunkSize)
		require.NoError(t, err)
		defer a.Close()

		boom := errors.New("boom")
		var carry Carry
		_, err = ReadInput(a, iotest.ErrReader(boom), &carry)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("allocation failure", func(t *testing.T) {
		var a arena.Arena
		var carry Carry
		_, err := ReadInput(&a, strings.NewReader("x"), &carry)
		assert.ErrorIs(t, err, arena.ErrAllocationFailed)
	})
}

func TestSplitIncomplete(t *testing.T) {
	tests := []struct {
		in    string
		keep  int
		carry int
	}{
		{"", 0, 0},
		{"abc", 3, 0},
		{"a\xc3", 1, 1},
		{"a\xe2\x82", 1, 2},
		{"a\xf0\x9f\x98", 1, 3},
		{"a\xf0\x9f\x98\x80", 5, 0},
		{"a\x80", 2, 0},
		{"\x80\x80\x80\x80", 4, 0},
		{"a\xff", 2, 0},
	}

	for _, tt := range tests {
		var c Carry
		assert.Equal(t, tt.keep, splitIncomplete([]byte(tt.in), &c), "%q", tt.in)
		assert.Equal(t, tt.carry, c.Len(), "%q", tt.in)
	}
}
