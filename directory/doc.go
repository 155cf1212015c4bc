// Package directory provides the storage abstraction of the index: a
// pluggable backend contract with byte-addressable reads, sequential and
// atomic-replace writes, and explicit durability syncing over named files.
//
// # Built-in Implementations
//
//   - RAMDirectory: ephemeral in-memory backend for tests and transient
//     indices; no durability guarantees, every operation succeeds instantly
//   - MmapDirectory: durable on-disk backend; mmap reads, fsync-honoring
//     writes, atomic replace via write-to-temp-then-rename
//   - minio.Directory: S3-compatible object storage backend
//
// # Custom Implementations
//
// Implement the Directory interface to support custom backends. The
// correctness-critical operation is AtomicWrite: the catalog commit protocol
// relies on readers never observing a partially written catalog.
package directory
