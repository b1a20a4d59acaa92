//go:build unix

package vmem

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a Space backed by a single mmap reservation. Anonymous mappings
// start PROT_NONE and commit pages with mprotect as the break advances;
// file-backed mappings are shared and extend the file with ftruncate.
type Mapping struct {
	data      []byte // entire reservation
	brk       int
	committed int // page-aligned prefix that is readable and writable
	pageSize  int
	f         *os.File
}

// Reserve maps limit bytes of anonymous address space (DefaultLimit when 0).
// No page is accessible until the break covers it.
func Reserve(limit int) (Space, error) {
	limit, err := checkLimit(limit)
	if err != nil {
		return nil, err
	}
	data, err := unix.Mmap(-1, 0, limit, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %d bytes: %w", limit, err)
	}
	return &Mapping{data: data, pageSize: os.Getpagesize()}, nil
}

// CreateFile creates (or truncates) path and maps limit bytes of it shared,
// so the heap image survives the process and can be inspected offline.
// The file only grows as far as the break.
func CreateFile(path string, limit int) (*Mapping, error) {
	limit, err := checkLimit(limit)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	data, err := unix.Mmap(int(f.Fd()), 0, limit, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("vmem: map %s: %w", path, err)
	}
	return &Mapping{
		data:      data,
		committed: limit,
		pageSize:  os.Getpagesize(),
		f:         f,
	}, nil
}

// Sbrk implements Space.
func (m *Mapping) Sbrk(n int) (int, error) {
	if m.data == nil {
		return 0, ErrClosed
	}
	old := m.brk
	if err := checkIncrement(old, len(m.data), n); err != nil {
		return 0, err
	}
	newBrk := old + n
	if m.f != nil {
		if err := m.f.Truncate(int64(newBrk)); err != nil {
			return 0, fmt.Errorf("%w: extend %s: %v", ErrNoMemory, m.f.Name(), err)
		}
	} else if newBrk > m.committed {
		end := min((newBrk+m.pageSize-1)/m.pageSize*m.pageSize, len(m.data))
		if err := unix.Mprotect(m.data[m.committed:end], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("%w: commit pages: %v", ErrNoMemory, err)
		}
		m.committed = end
	}
	m.brk = newBrk
	return old, nil
}

// Bytes implements Space.
func (m *Mapping) Bytes() []byte {
	if m.data == nil {
		return nil
	}
	return m.data[:m.brk]
}

// Limit returns the reservation size.
func (m *Mapping) Limit() int { return len(m.data) }

// Sync implements Space. Ranges are widened to page boundaries for msync.
func (m *Mapping) Sync(off, n int) error {
	if m.data == nil {
		return ErrClosed
	}
	if m.f == nil || n <= 0 {
		return nil
	}
	start := off / m.pageSize * m.pageSize
	end := min(off+n, m.brk)
	if start >= end {
		return nil
	}
	return unix.Msync(m.data[start:end], unix.MS_SYNC)
}

// Close implements Space.
func (m *Mapping) Close() error {
	var err error
	if m.data != nil {
		if unmapErr := unix.Munmap(m.data); unmapErr != nil && !errors.Is(unmapErr, unix.EINVAL) {
			err = unmapErr
		}
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}

// Map maps the file at path read-only and returns its contents.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("vmem: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
