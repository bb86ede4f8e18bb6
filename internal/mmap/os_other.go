//go:build !unix && !windows

package mmap

import "os"

func osMap(*os.File, int) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}

func osReserve(int) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}

func osCommit([]byte) error {
	return ErrUnsupported
}

func osAdvise([]byte, AccessPattern) error {
	return nil
}
