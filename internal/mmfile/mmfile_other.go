//go:build !unix

package mmfile

import "os"

// Map reads the entire file where mmap is not available.
func Map(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{Data: data}, nil
}
