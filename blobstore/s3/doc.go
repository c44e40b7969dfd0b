// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.NewFromDefaultConfig(ctx, "my-bucket", "embeddings/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = artifact.Save(ctx, store, "run-42", emb)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large artifacts
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
