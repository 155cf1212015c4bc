// Package mmap provides read-only memory mapping for segment component
// files. Mapped reads are the default read path of the durable directory
// backend: component files are immutable once published, so a shared
// read-only mapping is safe and avoids copying.
package mmap
