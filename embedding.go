package multiomics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// JointStage is the Stage value used for the joint reduction in
// warnings and errors.
const JointStage = "joint"

// ClampWarning records that a requested (or default) component count
// exceeded its mathematical ceiling and was lowered.
type ClampWarning struct {
	// Stage is the modality name, or JointStage.
	Stage string
	// Requested is the configured (or default) component count.
	Requested int
	// Effective is the count actually used.
	Effective int
}

func (w ClampWarning) String() string {
	return fmt.Sprintf("stage %q: requested %d components, clamped to %d", w.Stage, w.Requested, w.Effective)
}

// Embedding is the joint low-dimensional representation of all retained
// samples. It is owned by the caller after FitTransform returns.
type Embedding struct {
	// SampleIDs lists the retained samples, one per embedding row, in
	// the order they first appear in the first-listed modality.
	SampleIDs []string

	// Coords is the len(SampleIDs)×Components() embedding matrix.
	Coords *mat.Dense

	// Warnings records every dimensionality clamp that occurred.
	Warnings []ClampWarning

	// ModalityVariance maps each modality to the explained-variance
	// ratios of its retained components, largest first.
	ModalityVariance map[string][]float64

	// JointVariance holds the explained-variance ratios of the joint
	// components.
	JointVariance []float64
}

// Len returns the number of retained samples.
func (e *Embedding) Len() int { return len(e.SampleIDs) }

// Components returns the joint embedding dimensionality.
func (e *Embedding) Components() int {
	if e.Coords == nil {
		return 0
	}
	_, c := e.Coords.Dims()
	return c
}

// Row returns the embedding coordinates for the given sample.
func (e *Embedding) Row(id string) ([]float64, bool) {
	for i, s := range e.SampleIDs {
		if s == id {
			return e.Coords.RawRowView(i), true
		}
	}
	return nil, false
}
