package directory

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a named file does not exist.
//
// Implementations must return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Directory abstracts the storage backend of an index.
//
// An index owns exactly one Directory. Segment component files and the
// catalog file are plain named entries at the directory root; the Directory
// is agnostic to what the bytes mean. Any conforming backend is
// interchangeable without changing index or segment behavior.
type Directory interface {
	// OpenRead opens a file for random-access reading.
	// Returns ErrNotFound if the file does not exist.
	OpenRead(ctx context.Context, name string) (Source, error)

	// OpenWrite opens a new or truncated file for sequential writing.
	OpenWrite(ctx context.Context, name string) (WriteHandle, error)

	// AtomicWrite replaces the full content of name such that any reader
	// observes either the entirely-old or entirely-new content, never a
	// partial write.
	AtomicWrite(ctx context.Context, name string, data []byte) error

	// Sync forces previously written bytes of name to be durable against
	// process or host crash.
	Sync(ctx context.Context, name string) error

	// SyncDirectory forces durability of directory-level metadata
	// (creations, renames) so files made durable via Sync remain
	// discoverable after a crash.
	SyncDirectory(ctx context.Context) error
}

// Source is a read-only handle to a file.
type Source interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the file in bytes.
	Size() int64
}

// Bytes is an optional interface for Sources that expose their content as a
// byte slice. The slice is valid until the Source is closed. For mmap-backed
// sources this is a zero-copy operation.
type Bytes interface {
	Bytes() ([]byte, error)
}

// WriteHandle is a sequential write handle to a file.
type WriteHandle interface {
	io.WriteCloser
	// Sync forces written bytes to stable storage.
	Sync() error
}

// ReadAll reads the full content of name from d.
func ReadAll(ctx context.Context, d Directory, name string) ([]byte, error) {
	src, err := d.OpenRead(ctx, name)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if b, ok := src.(Bytes); ok {
		data, err := b.Bytes()
		if err != nil {
			return nil, err
		}
		// Copy: the backing slice dies with the Source.
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	return io.ReadAll(io.NewSectionReader(src, 0, src.Size()))
}
