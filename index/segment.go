package index

import (
	"context"
	"fmt"

	"github.com/tessera-search/tessera/directory"
)

// Segment is a lightweight handle to one immutable unit of indexed data:
// the owning index plus a segment identity. Constructing a Segment never
// validates existence; a segment is "real" only once its component files
// are present in storage, and visible to readers only once published.
type Segment struct {
	index *Index
	id    SegmentID
}

// ID returns the segment's identity.
func (s Segment) ID() SegmentID {
	return s.id
}

// RelativePath returns the storage name of the given component:
// the hex identity plus the component suffix.
func (s Segment) RelativePath(component Component) string {
	return s.id.String() + component.Suffix()
}

// OpenRead opens a component file for random-access reading. The storage
// guard is taken shared, so any number of segments may be read concurrently.
// A component that was never written fails with directory.ErrNotFound.
func (s Segment) OpenRead(ctx context.Context, component Component) (directory.Source, error) {
	name := s.RelativePath(component)

	s.index.dirMu.RLock()
	src, err := s.index.dir.OpenRead(ctx, name)
	s.index.dirMu.RUnlock()

	if err != nil {
		return nil, fmt.Errorf("segment %s: open %s: %w", s.id, component, err)
	}
	return src, nil
}

// OpenWrite opens a component file for sequential writing. The storage guard
// is taken exclusive to serialize file creation across segments; it is
// released when OpenWrite returns, so writing through the handle does not
// block readers.
func (s Segment) OpenWrite(ctx context.Context, component Component) (directory.WriteHandle, error) {
	name := s.RelativePath(component)

	s.index.dirMu.Lock()
	w, err := s.index.dir.OpenWrite(ctx, name)
	s.index.dirMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("segment %s: create %s: %w", s.id, component, err)
	}
	return w, nil
}
