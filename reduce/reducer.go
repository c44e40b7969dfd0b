package reduce

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Reducer maps a samples-by-features matrix onto k latent dimensions.
//
// Implementations must preserve input row order and must be
// deterministic: identical input and k produce identical output.
type Reducer interface {
	Reduce(ctx context.Context, m mat.Matrix, k int) (Result, error)
}

// Result is the output of one reduction.
type Result struct {
	// Scores is the n×k latent representation, one row per input row,
	// in the same order as the input matrix.
	Scores *mat.Dense

	// ExplainedVariance holds the fraction of total variance captured
	// by each retained component, largest first. Nil when the reducer
	// does not report it.
	ExplainedVariance []float64
}

// ErrSVDFailed is returned when the singular value decomposition does
// not converge.
var ErrSVDFailed = errors.New("reduce: svd factorization failed")

// ErrInsufficientRank indicates that a matrix has no reducible
// dimensionality (for example a modality with a single sample).
type ErrInsufficientRank struct {
	Samples  int
	Features int
}

func (e *ErrInsufficientRank) Error() string {
	return fmt.Sprintf("reduce: %d samples x %d features leaves no reducible dimension", e.Samples, e.Features)
}

// ErrInvalidComponents indicates a component count outside [1, ceiling].
type ErrInvalidComponents struct {
	K       int
	Ceiling int
}

func (e *ErrInvalidComponents) Error() string {
	return fmt.Sprintf("reduce: component count %d outside valid range [1, %d]", e.K, e.Ceiling)
}
