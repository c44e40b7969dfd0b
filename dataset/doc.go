// Package dataset defines the per-modality input of the integration
// pipeline: a samples-by-features measurement matrix together with the
// sample identifier for each row.
//
// A Dataset is validated on construction (or explicitly via Validate):
// the matrix must be non-empty, the identifier list must match the row
// count, and identifiers must be unique within the modality. Datasets
// are treated as immutable once built; the pipeline only reads them.
package dataset
