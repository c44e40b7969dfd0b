// Package multiomics integrates multiple molecular-measurement datasets
// collected on overlapping biological samples into one shared
// low-dimensional embedding.
//
// Each modality (metabolomics, bulk RNA-seq, spatial transcriptomics,
// single-cell pseudo-bulk, ...) is reduced independently with PCA, the
// per-sample latent vectors are aligned by sample identifier and
// concatenated, and a second PCA over the concatenated matrix yields
// the joint embedding. Only samples present in every modality are
// retained; missing samples are dropped, never imputed.
//
// # Quick Start
//
//	rna, _ := dataset.New("rna", sampleIDs, rnaMatrix)
//	metab, _ := dataset.New("metabolomics", sampleIDs, metabMatrix)
//
//	integ := multiomics.New(
//	    multiomics.WithComponents("rna", 20),
//	    multiomics.WithJointComponents(10),
//	)
//
//	emb, err := integ.FitTransform(ctx, rna, metab)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(emb.Len(), emb.Components(), emb.SampleIDs)
//
// # Determinism
//
// The pipeline is deterministic: component orientation is sign-fixed,
// modality order is explicit, and parallel per-modality reduction
// (WithParallelism) writes into pre-assigned slots, so repeated runs on
// identical input produce bit-identical embeddings.
//
// # Configuration
//
// Target dimensionalities that exceed their mathematical ceiling are
// lowered to the ceiling and recorded in Embedding.Warnings rather than
// failing the run. All other invalid inputs fail fast with a typed
// error (ErrShapeMismatch, ErrDuplicateSample, ErrInsufficientRank,
// ErrEmptyIntersection); no partial embedding is ever returned.
//
// # Persistence
//
// The returned Embedding is plain data. The artifact package persists it
// as a self-describing compressed blob on any blobstore.BlobStore
// (memory, local filesystem, MinIO, S3).
package multiomics
