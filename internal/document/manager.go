package document

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/mmap"
)

// DefaultArenaCapacity is the address space reserved per document.
const DefaultArenaCapacity = 64 << 20

// Manager keeps the open documents in the order they were added.
type Manager struct {
	docs     []*Document
	capacity int
	arenaOps []arena.Option
	logger   *slog.Logger
	closed   bool
}

type options struct {
	capacity int
	arenaOps []arena.Option
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*options)

// WithArenaCapacity sets the minimum arena reservation per document.
// Large documents get a proportionally larger one.
func WithArenaCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithArenaOptions passes options to every document arena.
func WithArenaOptions(opts ...arena.Option) Option {
	return func(o *options) {
		o.arenaOps = append(o.arenaOps, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	o := options{capacity: DefaultArenaCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{
		capacity: o.capacity,
		arenaOps: o.arenaOps,
		logger:   o.logger,
	}
}

// AddFile opens path and appends it to the manager.
//
// The file is mapped read-only, decompressed if it carries a gzip, zstd or
// LZ4 header, and copied into a new arena with invalid UTF-8 replaced. The
// mapping is released before AddFile returns.
func (m *Manager) AddFile(path string) (*Document, error) {
	if m.closed {
		return nil, ErrClosed
	}

	src, release, err := readFile(path)
	if err != nil {
		return nil, err
	}
	defer release()

	c := Detect(src)
	capacity := max(m.capacity, growthFactor(c)*len(src))

	h, err := arena.NewOwned(capacity, m.arenaOps...)
	if err != nil {
		return nil, err
	}

	doc, err := load(h, path, c, src)
	if err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("document: open %s: %w", path, err)
	}

	m.docs = append(m.docs, doc)
	if m.logger != nil {
		m.logger.Debug("document opened",
			"path", path,
			"compression", c.String(),
			"bytes", doc.Size(),
			"lines", doc.LineCount(),
			"committed", doc.Arena().Committed,
		)
	}
	return doc, nil
}

// growthFactor bounds arena use per source byte: the raw copy with its
// doubling garbage plus a lossy copy where every byte may triple.
func growthFactor(c Compression) int {
	if c == CompressionNone {
		return 8
	}
	return 32
}

func load(h *arena.Handle, path string, c Compression, src []byte) (*Document, error) {
	w := &arenaWriter{a: h}
	if err := decompress(c, src, w); err != nil {
		return nil, err
	}

	text, err := arena.StringFromUTF8Lossy(h, w.Bytes())
	if err != nil {
		return nil, err
	}
	lines, err := newLineIndex(text.Bytes())
	if err != nil {
		return nil, err
	}

	return &Document{
		path:        path,
		compression: c,
		h:           h,
		text:        text,
		lines:       lines,
	}, nil
}

// readFile maps path, falling back to a heap read where mapping is not
// supported. release must be called once src is no longer needed.
func readFile(path string) (src []byte, release func(), err error) {
	mp, err := mmap.Open(path)
	if errors.Is(err, mmap.ErrUnsupported) {
		data, err := os.ReadFile(path)
		return data, func() {}, err
	}
	if err != nil {
		return nil, nil, err
	}
	_ = mp.Advise(mmap.AccessSequential)
	return mp.Bytes(), func() { _ = mp.Close() }, nil
}

// Len returns the number of open documents.
func (m *Manager) Len() int {
	return len(m.docs)
}

// Get returns the i-th document in insertion order.
func (m *Manager) Get(i int) (*Document, bool) {
	if i < 0 || i >= len(m.docs) {
		return nil, false
	}
	return m.docs[i], true
}

// Close releases every document arena. Close is idempotent.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var errs []error
	for _, d := range m.docs {
		if err := d.close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.docs = nil
	return errors.Join(errs...)
}
