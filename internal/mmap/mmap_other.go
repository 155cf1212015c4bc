//go:build !unix

package mmap

import (
	"io"
	"os"
)

// Fallback for platforms without a mmap implementation: read the file into
// memory. Callers get the same read-only Bytes contract, without the
// zero-copy property.
func osMap(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func osUnmap([]byte) error { return nil }
