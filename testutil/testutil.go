package testutil

import (
	"math/rand"
	"sync"
	"unicode/utf8"
)

// Alloc is one randomly drawn allocation request.
type Alloc struct {
	Size  int
	Align int
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Allocs returns n allocation requests with sizes in [0, maxSize] and
// power-of-two alignments up to maxAlign.
func (r *RNG) Allocs(n, maxSize, maxAlign int) []Alloc {
	r.mu.Lock()
	defer r.mu.Unlock()

	shifts := 0
	for 1<<(shifts+1) <= maxAlign {
		shifts++
	}

	out := make([]Alloc, n)
	for i := range out {
		out[i] = Alloc{
			Size:  r.rand.Intn(maxSize + 1),
			Align: 1 << r.rand.Intn(shifts+1),
		}
	}
	return out
}

// sample runes covering every UTF-8 encoding length.
var sampleRunes = []rune{'a', 'Z', '0', ' ', 'é', 'ß', 'Ж', '€', '語', '\uFFFD', '😀', '𝄞'}

// Text returns valid UTF-8 of exactly n runes.
func (r *RNG) Text(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]byte, 0, n*utf8.UTFMax)
	for range n {
		buf = utf8.AppendRune(buf, sampleRunes[r.rand.Intn(len(sampleRunes))])
	}
	return string(buf)
}

// brokenSequences are ill-formed UTF-8 fragments.
var brokenSequences = [][]byte{
	{0x80},
	{0xBF},
	{0xC0, 0xAF},
	{0xC2},
	{0xE0, 0x80},
	{0xE2, 0x82},
	{0xED, 0xA0, 0x80},
	{0xF0, 0x9F},
	{0xF4, 0x90},
	{0xF5},
	{0xFF},
}

// MixedBytes returns n fragments of valid text interleaved with ill-formed
// UTF-8 sequences.
func (r *RNG) MixedBytes(n int) []byte {
	var out []byte
	for range n {
		if r.Intn(3) == 0 {
			r.mu.Lock()
			out = append(out, brokenSequences[r.rand.Intn(len(brokenSequences))]...)
			r.mu.Unlock()
			continue
		}
		out = append(out, r.Text(1+r.Intn(4))...)
	}
	return out
}
