package directory

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// RAMDirectory is an ephemeral in-memory Directory.
// It holds all files in memory without any filesystem dependency and makes
// no durability guarantees: Sync and SyncDirectory succeed instantly.
// Thread-safe for concurrent reads and writes.
type RAMDirectory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewRAMDirectory creates a new in-memory directory.
func NewRAMDirectory() *RAMDirectory {
	return &RAMDirectory{
		files: make(map[string][]byte),
	}
}

// OpenRead opens a file for reading.
func (d *RAMDirectory) OpenRead(_ context.Context, name string) (Source, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, ok := d.files[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)

	return &ramSource{data: copied}, nil
}

// OpenWrite opens a new or truncated file for writing. The content becomes
// visible to readers when the handle is closed.
func (d *RAMDirectory) OpenWrite(_ context.Context, name string) (WriteHandle, error) {
	return &ramWriteHandle{
		dir:  d,
		name: name,
	}, nil
}

// AtomicWrite replaces the full content of name. In-memory map assignment
// under the lock is trivially atomic.
func (d *RAMDirectory) AtomicWrite(_ context.Context, name string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	d.files[name] = copied
	return nil
}

// Sync is a no-op: RAM content does not survive the process anyway.
func (d *RAMDirectory) Sync(_ context.Context, _ string) error { return nil }

// SyncDirectory is a no-op.
func (d *RAMDirectory) SyncDirectory(_ context.Context) error { return nil }

// ramSource implements Source over an in-memory byte slice.
type ramSource struct {
	data []byte
}

func (s *ramSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, io.EOF
	}
	if off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *ramSource) Close() error { return nil }

func (s *ramSource) Size() int64 { return int64(len(s.data)) }

func (s *ramSource) Bytes() ([]byte, error) { return s.data, nil }

// ramWriteHandle buffers writes and installs them on Close.
type ramWriteHandle struct {
	dir  *RAMDirectory
	name string
	buf  bytes.Buffer
}

func (w *ramWriteHandle) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *ramWriteHandle) Close() error {
	w.dir.mu.Lock()
	defer w.dir.mu.Unlock()

	data := make([]byte, w.buf.Len())
	copy(data, w.buf.Bytes())
	w.dir.files[w.name] = data
	return nil
}

func (w *ramWriteHandle) Sync() error { return nil }
