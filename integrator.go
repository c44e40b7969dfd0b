package multiomics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/arunb2895/multi-omics-enteric-neurons/dataset"
	"github.com/arunb2895/multi-omics-enteric-neurons/internal/align"
	"github.com/arunb2895/multi-omics-enteric-neurons/reduce"
)

// Integrator runs the three-stage integration pipeline: validate each
// modality, reduce each modality independently, then align, concatenate
// and reduce again into the joint embedding.
//
// An Integrator is immutable after construction and safe for concurrent
// use; all state lives in the per-call inputs and outputs.
type Integrator struct {
	opts options
}

// New creates an Integrator with the given options.
func New(optFns ...Option) *Integrator {
	return &Integrator{opts: applyOptions(optFns)}
}

// FitTransform integrates the given modalities and returns the joint
// embedding. Inputs are not mutated. On any failure no partial
// embedding is returned.
func (it *Integrator) FitTransform(ctx context.Context, modalities ...*dataset.Dataset) (*Embedding, error) {
	start := time.Now()

	emb, err := it.fitTransform(ctx, modalities)

	retained := 0
	if emb != nil {
		retained = emb.Len()
	}
	it.opts.metrics.RecordIntegrate(len(modalities), retained, time.Since(start), err)

	return emb, err
}

func (it *Integrator) fitTransform(ctx context.Context, modalities []*dataset.Dataset) (*Embedding, error) {
	ordered, err := it.orderModalities(modalities)
	if err != nil {
		return nil, err
	}

	// Stage 1: validation. Runs to completion before any reduction.
	for _, ds := range ordered {
		vStart := time.Now()
		vErr := ds.Validate()
		it.opts.metrics.RecordValidate(ds.Name(), time.Since(vStart), vErr)
		it.opts.logger.LogValidate(ctx, ds.Name(), ds.Len(), ds.Features(), vErr)
		if vErr != nil {
			return nil, translateError(ds.Name(), vErr)
		}
	}

	// Resolve per-modality component counts up front so clamp warnings
	// are recorded even when reductions later run in parallel.
	ks := make([]int, len(ordered))
	var warnings []ClampWarning
	for i, ds := range ordered {
		requested := it.opts.components[ds.Name()]
		k, clamped, rErr := reduce.Resolve(requested, ds.Len(), ds.Features())
		if rErr != nil {
			return nil, translateError(ds.Name(), rErr)
		}
		ks[i] = k
		if clamped {
			w := ClampWarning{Stage: ds.Name(), Requested: requestedOrDefault(requested), Effective: k}
			warnings = append(warnings, w)
			it.opts.logger.LogClamp(ctx, w)
		}
	}

	// Stage 2: independent per-modality reductions.
	results := make([]reduce.Result, len(ordered))
	if err := it.reduceAll(ctx, ordered, ks, results); err != nil {
		return nil, err
	}

	// Stage 3: align, concatenate, joint reduction.
	keep := align.Intersection(ordered)
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w (%d modalities supplied)", ErrEmptyIntersection, len(ordered))
	}

	width := 0
	for _, k := range ks {
		width += k
	}

	joint := mat.NewDense(len(keep), width, nil)
	row := make([]float64, width)
	for r, id := range keep {
		off := 0
		for i, ds := range ordered {
			idx, _ := ds.Index(id)
			copy(row[off:off+ks[i]], results[i].Scores.RawRowView(idx))
			off += ks[i]
		}
		joint.SetRow(r, row)
	}

	kf, clamped, err := reduce.ResolveJoint(it.opts.jointComponents, len(keep), width)
	if err != nil {
		return nil, translateError(JointStage, err)
	}
	if clamped {
		w := ClampWarning{Stage: JointStage, Requested: requestedOrDefault(it.opts.jointComponents), Effective: kf}
		warnings = append(warnings, w)
		it.opts.logger.LogClamp(ctx, w)
	}

	res, err := it.jointReducer().Reduce(ctx, joint, kf)
	it.opts.logger.LogIntegrate(ctx, len(keep), width, kf, err)
	if err != nil {
		return nil, fmt.Errorf("joint reduction: %w", err)
	}

	variance := make(map[string][]float64, len(ordered))
	for i, ds := range ordered {
		variance[ds.Name()] = results[i].ExplainedVariance
	}

	return &Embedding{
		SampleIDs:        keep,
		Coords:           res.Scores,
		Warnings:         warnings,
		ModalityVariance: variance,
		JointVariance:    res.ExplainedVariance,
	}, nil
}

// reduceAll runs the per-modality reductions, optionally bounded-parallel.
// Each reduction writes only its own slot of results, so parallel and
// sequential execution produce identical output.
func (it *Integrator) reduceAll(ctx context.Context, ordered []*dataset.Dataset, ks []int, results []reduce.Result) error {
	reduceOne := func(ctx context.Context, i int) error {
		ds := ordered[i]
		rStart := time.Now()
		res, err := it.reducerFor(ds.Name()).Reduce(ctx, ds.Data(), ks[i])
		it.opts.metrics.RecordReduce(ds.Name(), ks[i], time.Since(rStart), err)
		it.opts.logger.LogReduce(ctx, ds.Name(), ks[i], err)
		if err != nil {
			return fmt.Errorf("reduce modality %q: %w", ds.Name(), err)
		}
		results[i] = res
		return nil
	}

	if it.opts.parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(it.opts.parallelism)
		for i := range ordered {
			i := i
			g.Go(func() error {
				return reduceOne(gctx, i)
			})
		}
		return g.Wait()
	}

	for i := range ordered {
		if err := reduceOne(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// reducerFor returns the reducer for one modality: the configured
// custom reducer, or PCA with the modality's scaling flag.
func (it *Integrator) reducerFor(name string) reduce.Reducer {
	if it.opts.reducer != nil {
		return it.opts.reducer
	}
	if it.opts.scaled[name] {
		return reduce.NewPCA(reduce.WithScaling())
	}
	return reduce.NewPCA()
}

// jointReducer returns the reducer for the joint stage. The joint
// matrix is already in latent units, so it is never variance-scaled.
func (it *Integrator) jointReducer() reduce.Reducer {
	if it.opts.reducer != nil {
		return it.opts.reducer
	}
	return reduce.NewPCA()
}

// orderModalities checks the input set and applies the configured
// concatenation order (default: the order datasets were passed in).
func (it *Integrator) orderModalities(modalities []*dataset.Dataset) ([]*dataset.Dataset, error) {
	if len(modalities) == 0 {
		return nil, ErrNoModalities
	}

	byName := make(map[string]*dataset.Dataset, len(modalities))
	for _, ds := range modalities {
		if ds == nil {
			return nil, fmt.Errorf("nil modality dataset")
		}
		if _, ok := byName[ds.Name()]; ok {
			return nil, fmt.Errorf("duplicate modality name %q", ds.Name())
		}
		byName[ds.Name()] = ds
	}

	for name, k := range it.opts.components {
		if k < 1 {
			return nil, fmt.Errorf("components for modality %q must be >= 1, got %d", name, k)
		}
	}
	if it.opts.jointComponents < 0 {
		return nil, fmt.Errorf("joint components must not be negative, got %d", it.opts.jointComponents)
	}

	if len(it.opts.order) == 0 {
		return modalities, nil
	}

	if len(it.opts.order) != len(modalities) {
		return nil, fmt.Errorf("modality order lists %d names for %d modalities", len(it.opts.order), len(modalities))
	}
	ordered := make([]*dataset.Dataset, 0, len(modalities))
	seen := make(map[string]struct{}, len(it.opts.order))
	for _, name := range it.opts.order {
		ds, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("modality order names unknown modality %q", name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("modality order repeats %q", name)
		}
		seen[name] = struct{}{}
		ordered = append(ordered, ds)
	}
	return ordered, nil
}

func requestedOrDefault(requested int) int {
	if requested > 0 {
		return requested
	}
	return reduce.DefaultComponents
}
