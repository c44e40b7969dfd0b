// Package artifact persists joint embeddings as self-describing blobs.
//
// An artifact records the codec name and compression algorithm in its
// header, so any build of the library can load files written by another.
// Payload integrity is protected by a CRC32 checksum.
//
// # Usage
//
//	store, _ := blobstore.NewLocalStore("embeddings")
//
//	err := artifact.Save(ctx, store, "run-42", emb,
//	    artifact.WithCompression(artifact.CompressionZSTD),
//	)
//
//	emb, err := artifact.Load(ctx, store, "run-42")
package artifact
