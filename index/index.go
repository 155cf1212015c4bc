package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/tessera-search/tessera/codec"
	"github.com/tessera-search/tessera/directory"
	"github.com/tessera-search/tessera/schema"
)

// Index is a handle to the committed state of a segment-based search index.
//
// It owns one storage Directory and one catalog (IndexMeta), each behind an
// independent read/write guard. The handle is shared: every *Index pointer
// observes the same catalog and storage. Any number of goroutines may read
// concurrently (enumerate segments, read the schema, open segments for
// reading); mutating operations serialize on the relevant guard.
type Index struct {
	dirMu sync.RWMutex
	dir   directory.Directory

	metaMu sync.RWMutex
	meta   IndexMeta

	codec  codec.Codec
	logger *slog.Logger
}

// Option configures an Index handle.
type Option func(*Index)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(x *Index) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithCodec sets the catalog codec. Defaults to codec.Default. Both built-in
// codecs emit standard JSON, so indexes written with either open with either.
func WithCodec(c codec.Codec) Option {
	return func(x *Index) {
		if c != nil {
			x.codec = c
		}
	}
}

func newIndex(dir directory.Directory, meta IndexMeta, opts ...Option) *Index {
	x := &Index{
		dir:    dir,
		meta:   meta,
		codec:  codec.Default,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// New creates an index over the given backend with an empty catalog seeded
// with s, and persists the initial catalog so the location is recognizable
// as an index from this point on.
func New(ctx context.Context, dir directory.Directory, s schema.Schema, opts ...Option) (*Index, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("index: create: %w", err)
	}

	x := newIndex(dir, newIndexMeta(s), opts...)
	if err := x.saveMeta(ctx); err != nil {
		return nil, err
	}

	x.logger.Debug("index created", "meta", MetaFileName)
	return x, nil
}

// OpenFrom attaches to an existing index over the given backend and loads
// its catalog. It fails with directory.ErrNotFound if no catalog file
// exists, and with ErrInvalidMeta if the catalog does not decode; this is
// how a caller distinguishes an index from an arbitrary storage location.
func OpenFrom(ctx context.Context, dir directory.Directory, opts ...Option) (*Index, error) {
	x := newIndex(dir, newIndexMeta(nil), opts...)
	if err := x.loadMeta(ctx); err != nil {
		return nil, err
	}
	return x, nil
}

// CreateInMemory creates a transient index over an ephemeral in-memory
// backend. Nothing survives the process; durability calls succeed instantly.
func CreateInMemory(s schema.Schema, opts ...Option) (*Index, error) {
	return New(context.Background(), directory.NewRAMDirectory(), s, opts...)
}

// Create creates a new durable index rooted at path.
func Create(ctx context.Context, path string, s schema.Schema, opts ...Option) (*Index, error) {
	dir, err := directory.NewMmapDirectory(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, dir, s, opts...)
}

// CreateTemp creates a durable index in a fresh temporary directory, for
// scratch indexes that still want real durability semantics. It returns the
// created path; the caller owns it and removes it when done.
func CreateTemp(ctx context.Context, s schema.Schema, opts ...Option) (*Index, string, error) {
	path, err := os.MkdirTemp("", "tessera-index-")
	if err != nil {
		return nil, "", fmt.Errorf("index: create temp dir: %w", err)
	}
	x, err := Create(ctx, path, s, opts...)
	if err != nil {
		os.RemoveAll(path)
		return nil, "", err
	}
	return x, path, nil
}

// Open attaches to an existing durable index at path.
func Open(ctx context.Context, path string, opts ...Option) (*Index, error) {
	dir, err := directory.NewMmapDirectory(path)
	if err != nil {
		return nil, err
	}
	return OpenFrom(ctx, dir, opts...)
}

// Schema returns the schema snapshot from the catalog. The returned value is
// a copy; mutating it does not affect the index.
func (x *Index) Schema() schema.Schema {
	x.metaMu.RLock()
	defer x.metaMu.RUnlock()
	return x.meta.Schema.Clone()
}

// NewSegment allocates a Segment bound to a freshly generated identity.
// The catalog is untouched: the segment stays invisible to readers until
// Publish.
func (x *Index) NewSegment() Segment {
	return x.Segment(NewSegmentID())
}

// Segment rehydrates a Segment value for the given identity. No existence
// check is performed; absence surfaces as directory.ErrNotFound on OpenRead.
func (x *Index) Segment(id SegmentID) Segment {
	return Segment{index: x, id: id}
}

// SegmentIDs returns the identities presently in the catalog, in publish
// order.
func (x *Index) SegmentIDs() []SegmentID {
	x.metaMu.RLock()
	defer x.metaMu.RUnlock()

	ids := make([]SegmentID, len(x.meta.Segments))
	copy(ids, x.meta.Segments)
	return ids
}

// Segments returns the committed segments, in publish order.
func (x *Index) Segments() []Segment {
	ids := x.SegmentIDs()
	segments := make([]Segment, len(ids))
	for i, id := range ids {
		segments[i] = x.Segment(id)
	}
	return segments
}

// Sync forces the segment's Postings and Terms components to durable
// storage, then syncs directory metadata so the files remain discoverable
// after a crash. Call it before Publish: the payload must be durable before
// any durable pointer to it exists.
func (x *Index) Sync(ctx context.Context, segment Segment) error {
	for _, component := range []Component{ComponentPostings, ComponentTerms} {
		name := segment.RelativePath(component)

		x.dirMu.RLock()
		err := x.dir.Sync(ctx, name)
		x.dirMu.RUnlock()

		if err != nil {
			return fmt.Errorf("index: sync segment %s: %w", segment.id, err)
		}
	}

	x.dirMu.RLock()
	err := x.dir.SyncDirectory(ctx)
	x.dirMu.RUnlock()

	if err != nil {
		return fmt.Errorf("index: sync segment %s: %w", segment.id, err)
	}

	x.logger.Debug("segment synced", "segment", segment.id.String())
	return nil
}

// Publish appends the segment's identity to the catalog and persists the
// catalog atomically. This is the sole visibility boundary: the segment is
// discoverable by readers exactly from the moment Publish returns nil.
//
// The catalog's exclusive guard is held across the whole append+persist
// compound, so concurrent publishers cannot overwrite each other with stale
// snapshots: every published identity survives. The storage guard is
// acquired inside that window; the catalog->storage lock order is fixed
// everywhere, so the nesting cannot deadlock. If persisting fails the
// append is rolled back and the catalog is unchanged, in memory and on
// storage.
func (x *Index) Publish(ctx context.Context, segment Segment) error {
	x.metaMu.Lock()
	defer x.metaMu.Unlock()

	x.meta.Segments = append(x.meta.Segments, segment.id)

	data, err := encodeMeta(x.codec, x.meta)
	if err == nil {
		err = x.atomicWriteMeta(ctx, data)
	}
	if err != nil {
		x.meta.Segments = x.meta.Segments[:len(x.meta.Segments)-1]
		return fmt.Errorf("index: publish segment %s: %w", segment.id, err)
	}

	x.logger.Debug("segment published", "segment", segment.id.String(), "segments", len(x.meta.Segments))
	return nil
}

// loadMeta reads the catalog file in full, decodes it, and replaces the
// in-memory catalog wholesale.
func (x *Index) loadMeta(ctx context.Context) error {
	x.dirMu.RLock()
	data, err := directory.ReadAll(ctx, x.dir, MetaFileName)
	x.dirMu.RUnlock()

	if err != nil {
		return fmt.Errorf("index: load %s: %w", MetaFileName, err)
	}

	meta, err := decodeMeta(x.codec, data)
	if err != nil {
		return err
	}

	x.metaMu.Lock()
	x.meta = meta
	x.metaMu.Unlock()

	x.logger.Debug("meta loaded", "segments", len(meta.Segments))
	return nil
}

// saveMeta persists a snapshot of the current catalog. The snapshot is
// encoded under the catalog's shared guard; only the atomic write itself
// runs under the storage guard.
func (x *Index) saveMeta(ctx context.Context) error {
	x.metaMu.RLock()
	data, err := encodeMeta(x.codec, x.meta)
	x.metaMu.RUnlock()

	if err != nil {
		return err
	}
	if err := x.atomicWriteMeta(ctx, data); err != nil {
		return err
	}

	x.logger.Debug("meta saved", "bytes", len(data))
	return nil
}

func (x *Index) atomicWriteMeta(ctx context.Context, data []byte) error {
	x.dirMu.Lock()
	defer x.dirMu.Unlock()

	if err := x.dir.AtomicWrite(ctx, MetaFileName, data); err != nil {
		return fmt.Errorf("index: write %s: %w", MetaFileName, err)
	}
	return nil
}
