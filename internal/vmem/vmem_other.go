//go:build !unix

package vmem

import "os"

// Reserve falls back to a slice reservation where mmap is unavailable.
func Reserve(limit int) (Space, error) {
	return NewSlice(limit)
}

// Mapping is unavailable on this platform.
type Mapping struct{ Slice }

// CreateFile is unsupported without shared mappings.
func CreateFile(path string, limit int) (*Mapping, error) {
	return nil, ErrUnsupported
}

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
