// Package blobstore provides storage abstraction for embedding artifacts.
//
// BlobStore is the interface for reading and writing immutable data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-memory store for tests and ephemeral pipelines
//   - LocalStore: Local filesystem with atomic writes
//   - minio.Store: Any S3-compatible object store via the MinIO client
//   - s3.Store: Amazon S3 via the AWS SDK
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)   // Open for reading
//	    Put(ctx, name, data) error      // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
