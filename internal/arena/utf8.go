package arena

import "unicode/utf8"

const replacement = "\uFFFD"

// validPrefixLen returns the length of the longest valid UTF-8 prefix of p.
func validPrefixLen(p []byte) int {
	i := 0
	for i < len(p) {
		if p[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		i += size
	}
	return i
}

// invalidPrefixLen returns the length of the maximal ill-formed subsequence
// at the start of p: the bytes that could still have begun a well-formed
// sequence before it broke off, or one byte if p[0] can never start one.
// p must not start with a valid sequence.
func invalidPrefixLen(p []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int

	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		need = 1
	case b == 0xE0:
		need, lo = 2, 0xA0
	case b == 0xED:
		need, hi = 2, 0x9F
	case b >= 0xE1 && b <= 0xEF:
		need = 2
	case b == 0xF0:
		need, lo = 3, 0x90
	case b == 0xF4:
		need, hi = 3, 0x8F
	case b >= 0xF1 && b <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(p) && p[n] >= lo && p[n] <= hi {
		lo, hi = 0x80, 0xBF
		n++
	}
	return n
}

// appendValidUTF8 appends p to dst, replacing each maximal ill-formed
// subsequence with U+FFFD. It works on the Go heap and is only used for
// arguments that arrive as invalid Go strings.
func appendValidUTF8(dst, p []byte) []byte {
	for len(p) > 0 {
		i := validPrefixLen(p)
		dst = append(dst, p[:i]...)
		p = p[i:]
		if len(p) == 0 {
			break
		}
		dst = append(dst, replacement...)
		p = p[invalidPrefixLen(p):]
	}
	return dst
}
