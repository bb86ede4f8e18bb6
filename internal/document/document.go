package document

import (
	"errors"
	"io"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/fs"
)

var (
	// ErrTooLarge is returned for documents whose size the line index cannot
	// address.
	ErrTooLarge = errors.New("document: too large")
	// ErrCorrupt is returned when a compressed document cannot be decoded.
	ErrCorrupt = errors.New("document: corrupt compressed data")
	// ErrClosed is returned by operations on a closed manager.
	ErrClosed = errors.New("document: manager is closed")
)

// Document is one open file. Its text lives in an arena owned by the
// document and stays valid until the manager is closed.
type Document struct {
	path        string
	compression Compression

	h     *arena.Handle
	text  *arena.String
	lines *lineIndex
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Text returns the document contents. It is always valid UTF-8.
func (d *Document) Text() *arena.String {
	return d.text
}

// Compression returns the container the document was stored in.
func (d *Document) Compression() Compression {
	return d.compression
}

// Size returns the length of the text in bytes.
func (d *Document) Size() int {
	return d.text.Len()
}

// LineCount returns the number of lines. A trailing newline starts an
// empty last line; an empty document has one line.
func (d *Document) LineCount() int {
	return d.lines.count()
}

// Line returns line n (0-based) without its line terminator.
func (d *Document) Line(n int) (string, bool) {
	beg, end, ok := d.lines.span(d.text.Bytes(), n)
	if !ok {
		return "", false
	}
	return d.text.String()[beg:end], true
}

// LineOf returns the 0-based line containing byte offset off.
func (d *Document) LineOf(off int) int {
	return d.lines.lineOf(off)
}

// Arena returns statistics of the document's arena.
func (d *Document) Arena() arena.Stats {
	return d.h.Target().Stats()
}

// Save writes the document to path through fsys, replacing the file
// atomically. The container is chosen by path's extension.
func (d *Document) Save(fsys fs.FileSystem, path string) error {
	c := ForPath(path)
	return fs.WriteFileAtomic(fsys, path, 0o644, func(w io.Writer) error {
		return compress(c, d.text.Bytes(), w)
	})
}

func (d *Document) close() error {
	return d.h.Close()
}
