// Package minio provides a directory.Directory implementation over MinIO
// and S3-compatible object storage (Ceph, SeaweedFS, Garage, AWS S3).
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dir := miniodir.NewDirectory(client, "my-bucket", "indexes/products/")
//	idx, err := index.OpenFrom(ctx, dir)
//
// Because PutObject is atomic and durable in S3 semantics, this backend
// satisfies the catalog commit contract without temp files or fsync.
package minio
