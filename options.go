package whitedew

import (
	"io"
	"os"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/document"
)

// DefaultScratchCapacity is the address space reserved per scratch arena.
const DefaultScratchCapacity = 128 << 20

// Backend selects how arenas obtain memory.
type Backend int

const (
	// BackendDefault reserves virtual memory where the platform supports it
	// and falls back to the heap elsewhere.
	BackendDefault Backend = iota
	// BackendVirtual reserves address space and commits it in chunks.
	BackendVirtual
	// BackendHeap allocates the whole capacity up front.
	BackendHeap
)

func (b Backend) arena() arena.Backend {
	switch b {
	case BackendVirtual:
		return arena.VirtualBackend{}
	case BackendHeap:
		return arena.HeapBackend{}
	default:
		return nil
	}
}

type options struct {
	scratchCapacity  int
	documentCapacity int
	logger           *Logger
	memoryLimit      int64
	output           io.Writer
	outputRateLimit  int64
	poison           bool
	backend          Backend
	lookupEnv        func(string) (string, bool)
}

// Option configures App construction.
type Option func(*options)

// WithScratchCapacity sets the reservation of each of the two scratch arenas.
// Non-positive values are ignored.
func WithScratchCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.scratchCapacity = n
		}
	}
}

// WithDocumentCapacity sets the minimum reservation of each document arena.
func WithDocumentCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.documentCapacity = n
		}
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMemoryLimit caps the memory all arenas may commit together.
// 0 tracks usage without a limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithOutput sets where Run writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithOutputRateLimit throttles output to bytesPerSec. 0 is unlimited.
func WithOutputRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.outputRateLimit = bytesPerSec
	}
}

// WithPoison enables or disables poison fills on allocation and reset.
//
// Poisoning is on by default. Turning it off saves a memset per allocation.
func WithPoison(enabled bool) Option {
	return func(o *options) {
		o.poison = enabled
	}
}

// WithBackend selects the arena memory backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithEnv replaces os.LookupEnv for reading language preferences.
func WithEnv(lookup func(key string) (string, bool)) Option {
	return func(o *options) {
		if lookup != nil {
			o.lookupEnv = lookup
		}
	}
}

func defaultOptions() options {
	return options{
		scratchCapacity:  DefaultScratchCapacity,
		documentCapacity: document.DefaultArenaCapacity,
		logger:           NoopLogger(),
		output:           os.Stdout,
		poison:           true,
		lookupEnv:        os.LookupEnv,
	}
}
