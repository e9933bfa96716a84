//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package plink

import (
	"io"
	"os"
)

// Without mmap the whole file is read into memory.
func mmapFile(f *os.File, size int64) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}

	return data, nil
}

func munmapFile(data []byte) error {
	return nil
}
