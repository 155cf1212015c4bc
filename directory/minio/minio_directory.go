package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/tessera-search/tessera/directory"
)

// Directory implements directory.Directory over MinIO and S3-compatible
// object storage.
//
// Object stores give the catalog protocol its two hard requirements for
// free: a successful PutObject is atomic (readers see the old object or the
// new one, never a mix) and durable on return. AtomicWrite therefore maps to
// a plain put, and Sync/SyncDirectory are no-ops.
type Directory struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewDirectory creates a Directory over the given bucket.
// rootPrefix is prepended to all object keys (e.g. "indexes/products/").
func NewDirectory(client *minio.Client, bucket, rootPrefix string) *Directory {
	return &Directory{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (d *Directory) key(name string) string {
	return path.Join(d.prefix, name)
}

// OpenRead opens an object for random-access reading via ranged gets.
func (d *Directory) OpenRead(ctx context.Context, name string) (directory.Source, error) {
	key := d.key(name)

	info, err := d.client.StatObject(ctx, d.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, directory.ErrNotFound
		}
		return nil, err
	}

	return &objectSource{
		ctx:    ctx,
		client: d.client,
		bucket: d.bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// OpenWrite creates an object through a streaming upload. The object becomes
// visible when the handle is closed.
func (d *Directory) OpenWrite(ctx context.Context, name string) (directory.WriteHandle, error) {
	key := d.key(name)
	pr, pw := io.Pipe()

	h := &objectWriteHandle{
		pw:   pw,
		done: make(chan error, 1),
	}

	go func() {
		_, err := d.client.PutObject(ctx, d.bucket, key, pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		h.done <- err
	}()

	return h, nil
}

// AtomicWrite replaces the object content. PutObject is all-or-nothing in S3
// semantics, which is exactly the contract.
func (d *Directory) AtomicWrite(ctx context.Context, name string, data []byte) error {
	key := d.key(name)
	_, err := d.client.PutObject(ctx, d.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Sync is a no-op: a successful put is already durable.
func (d *Directory) Sync(_ context.Context, _ string) error { return nil }

// SyncDirectory is a no-op: object stores have no directory metadata.
func (d *Directory) SyncDirectory(_ context.Context) error { return nil }

// objectSource implements directory.Source with ranged reads.
type objectSource struct {
	ctx    context.Context
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (s *objectSource) Size() int64 { return s.size }

func (s *objectSource) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 || off >= s.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	if end >= s.size {
		end = s.size - 1
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}

	obj, err := s.client.GetObject(s.ctx, s.bucket, s.key, opts)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err != nil {
		return n, err
	}
	if int64(n) < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

func (s *objectSource) Close() error { return nil }

// objectWriteHandle implements directory.WriteHandle for streaming uploads.
type objectWriteHandle struct {
	pw     *io.PipeWriter
	done   chan error
	closed bool
}

func (h *objectWriteHandle) Write(p []byte) (int, error) {
	return h.pw.Write(p)
}

func (h *objectWriteHandle) Close() error {
	if h.closed {
		return errors.New("minio: write handle already closed")
	}
	h.closed = true
	if err := h.pw.Close(); err != nil {
		return err
	}
	return <-h.done
}

// Sync is a no-op: durability is established by Close completing the upload.
func (h *objectWriteHandle) Sync() error { return nil }
