package dataset

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a modality has no rows or no feature columns.
var ErrEmpty = errors.New("dataset: matrix must be non-empty")

// ErrShapeMismatch indicates that the identifier list length and the
// matrix row count disagree.
type ErrShapeMismatch struct {
	Modality string
	Rows     int
	IDs      int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("dataset: modality %q has %d rows but %d sample identifiers", e.Modality, e.Rows, e.IDs)
}

// ErrDuplicateSample indicates a sample identifier that appears more
// than once within a single modality.
type ErrDuplicateSample struct {
	Modality string
	SampleID string
}

func (e *ErrDuplicateSample) Error() string {
	return fmt.Sprintf("dataset: modality %q contains duplicate sample identifier %q", e.Modality, e.SampleID)
}
