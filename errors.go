package whitedew

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/document"
	"github.com/hupe1980/whitedew/internal/resource"
)

var (
	// ErrClosed is returned by operations on a closed App.
	ErrClosed = errors.New("whitedew: app is closed")
	// ErrNoDocument is returned for a document index that is not open.
	ErrNoDocument = errors.New("whitedew: no such document")
)

// ErrorKind tells where an error code comes from.
type ErrorKind uint8

const (
	// KindApp codes are defined by this package.
	KindApp ErrorKind = iota
	// KindSys codes are operating system error numbers.
	KindSys
)

func (k ErrorKind) String() string {
	switch k {
	case KindApp:
		return "app"
	case KindSys:
		return "sys"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Application error codes.
const (
	CodeOutOfMemory uint32 = iota + 1
	CodeMemoryLimit
	CodeCorrupt
	CodeTooLarge
	CodeClosed
)

var appMessages = map[uint32]string{
	CodeOutOfMemory: "out of memory",
	CodeMemoryLimit: "memory limit exceeded",
	CodeCorrupt:     "corrupt compressed document",
	CodeTooLarge:    "document too large",
	CodeClosed:      "application closed",
}

// Error is a coded application error.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type Error struct {
	Kind  ErrorKind
	Code  uint32
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("whitedew: %s error %d: %v", e.Kind, e.Code, e.cause)
	}
	return fmt.Sprintf("whitedew: %s error %d", e.Kind, e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// FormatError renders err for the user. Coded errors print their message,
// anything else prints err.Error().
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindApp:
		if msg, ok := appMessages[e.Code]; ok {
			return msg
		}
		return fmt.Sprintf("Unknown app error code: %d", e.Code)
	case KindSys:
		return fmt.Sprintf("Error %d: %s", e.Code, syscall.Errno(e.Code).Error())
	default:
		return e.Error()
	}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var coded *Error
	if errors.As(err, &coded) {
		return err
	}

	switch {
	case errors.Is(err, ErrClosed), errors.Is(err, document.ErrClosed):
		return &Error{Kind: KindApp, Code: CodeClosed, cause: err}
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		return &Error{Kind: KindApp, Code: CodeMemoryLimit, cause: err}
	case errors.Is(err, arena.ErrAllocationFailed):
		return &Error{Kind: KindApp, Code: CodeOutOfMemory, cause: err}
	case errors.Is(err, document.ErrCorrupt):
		return &Error{Kind: KindApp, Code: CodeCorrupt, cause: err}
	case errors.Is(err, document.ErrTooLarge):
		return &Error{Kind: KindApp, Code: CodeTooLarge, cause: err}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &Error{Kind: KindSys, Code: uint32(errno), cause: err}
	}
	return err
}
