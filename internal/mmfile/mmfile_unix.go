//go:build unix

package mmfile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path read-only. Empty files yield an empty mapping.
func Map(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &Mapping{Data: []byte{}}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, &ErrTooLarge{Path: path, Size: size}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	// Decoding walks the file front to back.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &Mapping{
		Data: data,
		release: func() error {
			err := unix.Munmap(data)
			if errors.Is(err, unix.EINVAL) {
				return nil
			}
			return err
		},
	}, nil
}
