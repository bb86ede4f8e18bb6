package document

import (
	"bytes"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/whitedew/internal/conv"
)

// lineIndex records the byte offset of every line start. Line n starts at
// the n-th smallest member.
type lineIndex struct {
	starts *roaring.Bitmap
	size   int
}

func newLineIndex(text []byte) (*lineIndex, error) {
	if _, err := conv.IntToUint32(len(text)); err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(text))
	}

	starts := []uint32{0}
	for off := 0; ; {
		i := bytes.IndexByte(text[off:], '\n')
		if i < 0 {
			break
		}
		off += i + 1
		starts = append(starts, uint32(off)) //nolint:gosec // bounded by len(text) above
	}

	bm := roaring.New()
	bm.AddMany(starts)
	bm.RunOptimize()
	return &lineIndex{starts: bm, size: len(text)}, nil
}

func (x *lineIndex) count() int {
	n, _ := conv.Uint64ToInt(x.starts.GetCardinality())
	return n
}

// span returns the byte range of line n without its terminator.
func (x *lineIndex) span(text []byte, n int) (int, int, bool) {
	if n < 0 || n >= x.count() {
		return 0, 0, false
	}
	start, err := x.starts.Select(uint32(n)) //nolint:gosec // n < count
	if err != nil {
		return 0, 0, false
	}

	beg := int(start)
	end := x.size
	if next, err := x.starts.Select(uint32(n + 1)); err == nil { //nolint:gosec // n+1 <= count
		end = int(next) - 1
	}
	if end > beg && text[end-1] == '\r' {
		end--
	}
	return beg, end, true
}

// lineOf returns the line containing byte offset off.
func (x *lineIndex) lineOf(off int) int {
	off = min(max(off, 0), x.size)
	return int(x.starts.Rank(uint32(off))) - 1 //nolint:gosec // bounded by size
}
