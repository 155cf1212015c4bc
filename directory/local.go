package directory

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tessera-search/tessera/internal/fs"
	"github.com/tessera-search/tessera/internal/mmap"
)

// MmapDirectory is a durable Directory over a local filesystem directory.
//
// Reads are memory-mapped: segment components are immutable once published,
// so a shared read-only mapping is safe and gives random access without
// copying. Writes, syncs and renames go through an fs.FileSystem seam so the
// commit protocol can be tested under injected faults.
type MmapDirectory struct {
	fsys fs.FileSystem
	root string
}

// NewMmapDirectory creates a durable directory rooted at root, creating the
// root directory if needed.
func NewMmapDirectory(root string) (*MmapDirectory, error) {
	return NewMmapDirectoryWithFS(fs.Default, root)
}

// NewMmapDirectoryWithFS is like NewMmapDirectory with an explicit file
// system, used by tests to inject faults.
func NewMmapDirectoryWithFS(fsys fs.FileSystem, root string) (*MmapDirectory, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("directory: create root %s: %w", root, err)
	}
	return &MmapDirectory{fsys: fsys, root: root}, nil
}

// Root returns the root path of the directory.
func (d *MmapDirectory) Root() string { return d.root }

func (d *MmapDirectory) path(name string) string {
	return filepath.Join(d.root, name)
}

// OpenRead opens a file as a memory-mapped read-only source.
func (d *MmapDirectory) OpenRead(_ context.Context, name string) (Source, error) {
	m, err := mmap.Open(d.path(name))
	if err != nil {
		return nil, fmt.Errorf("directory: open %s: %w", name, err)
	}
	return &mmapSource{m: m}, nil
}

// OpenWrite opens a new or truncated file for sequential writing.
func (d *MmapDirectory) OpenWrite(_ context.Context, name string) (WriteHandle, error) {
	f, err := d.fsys.OpenFile(d.path(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("directory: create %s: %w", name, err)
	}
	return f, nil
}

// AtomicWrite writes data to a temporary file, syncs it, and renames it over
// name. A crash at any point leaves either the old content or the new
// content, never a mix.
func (d *MmapDirectory) AtomicWrite(ctx context.Context, name string, data []byte) error {
	path := d.path(name)
	tmpPath := path + ".tmp"

	f, err := d.fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("directory: atomic write %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		d.fsys.Remove(tmpPath)
		return fmt.Errorf("directory: atomic write %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		d.fsys.Remove(tmpPath)
		return fmt.Errorf("directory: atomic write %s: sync: %w", name, err)
	}
	if err := f.Close(); err != nil {
		d.fsys.Remove(tmpPath)
		return fmt.Errorf("directory: atomic write %s: close: %w", name, err)
	}

	if err := d.fsys.Rename(tmpPath, path); err != nil {
		d.fsys.Remove(tmpPath)
		return fmt.Errorf("directory: atomic write %s: rename: %w", name, err)
	}

	return d.SyncDirectory(ctx)
}

// Sync fsyncs the named file.
func (d *MmapDirectory) Sync(_ context.Context, name string) error {
	f, err := d.fsys.OpenFile(d.path(name), os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("directory: sync %s: %w", name, err)
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		return fmt.Errorf("directory: sync %s: %w", name, err)
	}
	return nil
}

// SyncDirectory fsyncs the root directory so creations and renames survive
// a crash.
func (d *MmapDirectory) SyncDirectory(_ context.Context) error {
	f, err := d.fsys.OpenFile(d.root, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("directory: sync root: %w", err)
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		return fmt.Errorf("directory: sync root: %w", err)
	}
	return nil
}

// mmapSource adapts a read-only mapping to the Source interface.
type mmapSource struct {
	m *mmap.Mapping
}

func (s *mmapSource) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	data := s.m.Bytes()
	if off < 0 || off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *mmapSource) Close() error { return s.m.Close() }

func (s *mmapSource) Size() int64 { return s.m.Size() }

func (s *mmapSource) Bytes() ([]byte, error) { return s.m.Bytes(), nil }
