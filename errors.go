package multiomics

import (
	"errors"
	"fmt"

	"github.com/arunb2895/multi-omics-enteric-neurons/dataset"
	"github.com/arunb2895/multi-omics-enteric-neurons/reduce"
)

var (
	// ErrNoModalities is returned when FitTransform is called without
	// any dataset.
	ErrNoModalities = errors.New("at least one modality is required")

	// ErrEmptyIntersection is returned when no sample identifier is
	// shared by all supplied modalities.
	ErrEmptyIntersection = errors.New("no sample identifier is common to all modalities")
)

// ErrShapeMismatch indicates a modality whose identifier list length
// disagrees with its matrix row count.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrShapeMismatch struct {
	Modality string
	Rows     int
	IDs      int
	cause    error
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("modality %q: %d rows but %d sample identifiers", e.Modality, e.Rows, e.IDs)
}

func (e *ErrShapeMismatch) Unwrap() error { return e.cause }

// ErrDuplicateSample indicates a repeated sample identifier within one
// modality.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDuplicateSample struct {
	Modality string
	SampleID string
	cause    error
}

func (e *ErrDuplicateSample) Error() string {
	return fmt.Sprintf("modality %q: duplicate sample identifier %q", e.Modality, e.SampleID)
}

func (e *ErrDuplicateSample) Unwrap() error { return e.cause }

// ErrInsufficientRank indicates a reduction stage whose reducible
// dimensionality ceiling is below 1. Stage is the modality name, or
// JointStage for the joint reduction.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInsufficientRank struct {
	Stage    string
	Samples  int
	Features int
	cause    error
}

func (e *ErrInsufficientRank) Error() string {
	return fmt.Sprintf("stage %q: %d samples x %d features leaves no reducible dimension", e.Stage, e.Samples, e.Features)
}

func (e *ErrInsufficientRank) Unwrap() error { return e.cause }

// translateError normalizes inner package errors into the public
// taxonomy, tagging them with the stage they were detected at.
func translateError(stage string, err error) error {
	if err == nil {
		return nil
	}

	var sm *dataset.ErrShapeMismatch
	if errors.As(err, &sm) {
		return &ErrShapeMismatch{Modality: sm.Modality, Rows: sm.Rows, IDs: sm.IDs, cause: err}
	}
	var dup *dataset.ErrDuplicateSample
	if errors.As(err, &dup) {
		return &ErrDuplicateSample{Modality: dup.Modality, SampleID: dup.SampleID, cause: err}
	}
	var ir *reduce.ErrInsufficientRank
	if errors.As(err, &ir) {
		return &ErrInsufficientRank{Stage: stage, Samples: ir.Samples, Features: ir.Features, cause: err}
	}

	return err
}
