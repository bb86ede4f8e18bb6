// Package vt builds and reads terminal byte streams in arena memory.
//
// Input arrives in arbitrary chunks, so ReadInput keeps a Carry of any
// multi-byte sequence cut off at the end of a read and completes it on the
// next call. Output sequences (window size reports, OSC 52 clipboard writes)
// are formatted straight into arena strings.
//
//	var carry vt.Carry
//	for {
//		s := pool.Acquire(nil)
//		text, err := vt.ReadInput(s, os.Stdin, &carry)
//		...
//		s.Release()
//	}
package vt
