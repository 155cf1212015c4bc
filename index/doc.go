// Package index is the metadata and storage-addressing core of a
// segment-based search index.
//
// It tracks which immutable segments constitute the committed index,
// persists that catalog durably and atomically, generates unique segment
// identities, and mediates concurrent access to a pluggable storage backend
// (see the directory package).
//
// # Write path
//
// An external writer asks the index for a new segment, writes its component
// files, forces durability, then publishes:
//
//	seg := idx.NewSegment()
//	w, _ := seg.OpenWrite(ctx, index.ComponentPostings)
//	// ... write postings ...
//	w.Close()
//	idx.Sync(ctx, seg)    // payload durable first
//	idx.Publish(ctx, seg) // then the catalog pointer
//
// Sync-before-publish gives write-ahead ordering: a crash between the two
// loses visibility of the segment, never the committed catalog. A segment's
// files may exist in storage without the segment being published; such
// segments are invisible to readers.
//
// # Read path
//
// A searcher enumerates the committed segments and opens components
// read-only:
//
//	for _, seg := range idx.Segments() {
//	    src, err := seg.OpenRead(ctx, index.ComponentPostings)
//	    // ...
//	}
package index
