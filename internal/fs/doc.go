// Package fs provides a small file system seam for the durable directory
// backend, plus a fault-injecting wrapper used to test the crash windows of
// the catalog commit protocol.
package fs
