// Package mmfile memory-maps input binaries for decoding.
package mmfile

import (
	"fmt"
	"sync"
)

// Mapping is a read-only view of a file. Data must not be used after Close.
type Mapping struct {
	Data []byte

	once    sync.Once
	release func() error
	err     error
}

// Len returns the size of the mapped file.
func (m *Mapping) Len() int { return len(m.Data) }

// Close releases the mapping. Calling it more than once is harmless.
func (m *Mapping) Close() error {
	m.once.Do(func() {
		if m.release != nil {
			m.err = m.release()
		}
		m.Data = nil
	})
	return m.err
}

// ErrTooLarge reports a file that cannot be addressed by a slice.
type ErrTooLarge struct {
	Path string
	Size int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("mmfile: %s too large to map (%d bytes)", e.Path, e.Size)
}
