package document

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container a document is stored in.
type Compression uint8

const (
	// CompressionNone is a plain text file.
	CompressionNone Compression = iota
	// CompressionGzip is a gzip stream (.gz).
	CompressionGzip
	// CompressionZstd is a zstd frame (.zst).
	CompressionZstd
	// CompressionLZ4 is an LZ4 frame (.lz4).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect identifies compressed content by its magic number.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, magicZstd):
		return CompressionZstd
	case bytes.HasPrefix(data, magicLZ4):
		return CompressionLZ4
	case bytes.HasPrefix(data, magicGzip):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// ForPath picks the compression for saving to path by its extension.
func ForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// decompress streams the decoded form of src into w.
func decompress(c Compression, src []byte, w io.Writer) error {
	r := bytes.NewReader(src)

	switch c {
	case CompressionNone:
		_, err := w.Write(src)
		return err

	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		defer zr.Close()
		return copyDecoded(w, zr)

	case CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		defer zr.Close()
		return copyDecoded(w, zr)

	case CompressionLZ4:
		return copyDecoded(w, lz4.NewReader(r))

	default:
		return fmt.Errorf("document: unknown compression %v", c)
	}
}

// copyDecoded copies r to w. Read errors come from the decoder and are
// reported as corruption; write errors are passed through.
func copyDecoded(w io.Writer, r io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
}

// compress writes src to w in the given container.
func compress(c Compression, src []byte, w io.Writer) error {
	var enc io.WriteCloser

	switch c {
	case CompressionNone:
		_, err := w.Write(src)
		return err
	case CompressionGzip:
		enc = gzip.NewWriter(w)
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		enc = zw
	case CompressionLZ4:
		enc = lz4.NewWriter(w)
	default:
		return fmt.Errorf("document: unknown compression %v", c)
	}

	if _, err := enc.Write(src); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
