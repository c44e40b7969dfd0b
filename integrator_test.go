package multiomics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/arunb2895/multi-omics-enteric-neurons/dataset"
	"github.com/arunb2895/multi-omics-enteric-neurons/reduce"
	"github.com/arunb2895/multi-omics-enteric-neurons/testutil"
)

func newDataset(t *testing.T, name string, ids []string, features int, seed int64) *dataset.Dataset {
	t.Helper()
	rng := testutil.NewRNG(seed)
	ds, err := dataset.New(name, ids, rng.NormMatrix(len(ids), features))
	require.NoError(t, err)
	return ds
}

func TestFitTransform_SharedSamples(t *testing.T) {
	ctx := context.Background()
	ids := testutil.SampleIDs(30, "s")

	integ := New(
		WithComponents("rna", 5),
		WithComponents("metab", 3),
		WithJointComponents(4),
	)

	emb, err := integ.FitTransform(ctx,
		newDataset(t, "rna", ids, 40, 1),
		newDataset(t, "metab", ids, 12, 2),
	)
	require.NoError(t, err)

	// Identical sample sets: nothing dropped.
	assert.Equal(t, ids, emb.SampleIDs)
	assert.Equal(t, 30, emb.Len())
	assert.Equal(t, 4, emb.Components())
	assert.Empty(t, emb.Warnings)

	require.Len(t, emb.JointVariance, 4)
	require.Len(t, emb.ModalityVariance["rna"], 5)
	require.Len(t, emb.ModalityVariance["metab"], 3)
}

func TestFitTransform_IntersectionScenario(t *testing.T) {
	// Modality A: {s1,s2,s3}, 5 features, k=2.
	// Modality B: {s2,s3,s4}, 8 features, k=3.
	// Intersection {s2,s3}; concatenated width 5; joint ceiling
	// min(2,5)-1 = 1, clamped from the configured 4 with a warning.
	ctx := context.Background()

	a := newDataset(t, "a", []string{"s1", "s2", "s3"}, 5, 3)
	b := newDataset(t, "b", []string{"s2", "s3", "s4"}, 8, 4)

	integ := New(
		WithComponents("a", 2),
		WithComponents("b", 3),
		WithJointComponents(4),
	)

	emb, err := integ.FitTransform(ctx, a, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"s2", "s3"}, emb.SampleIDs)
	assert.Equal(t, 2, emb.Len())
	assert.Equal(t, 1, emb.Components())

	require.Len(t, emb.Warnings, 1)
	assert.Equal(t, JointStage, emb.Warnings[0].Stage)
	assert.Equal(t, 4, emb.Warnings[0].Requested)
	assert.Equal(t, 1, emb.Warnings[0].Effective)
}

func TestFitTransform_Deterministic(t *testing.T) {
	ctx := context.Background()
	ids := testutil.SampleIDs(20, "s")

	run := func() *Embedding {
		integ := New(WithJointComponents(3))
		emb, err := integ.FitTransform(ctx,
			newDataset(t, "rna", ids, 25, 7),
			newDataset(t, "spatial", ids, 15, 8),
		)
		require.NoError(t, err)
		return emb
	}

	first, second := run(), run()
	assert.Equal(t, first.SampleIDs, second.SampleIDs)
	assert.Equal(t, first.Coords.RawMatrix().Data, second.Coords.RawMatrix().Data)
	assert.Equal(t, first.JointVariance, second.JointVariance)
}

func TestFitTransform_ParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	ids := testutil.SampleIDs(25, "s")

	datasets := func() []*dataset.Dataset {
		return []*dataset.Dataset{
			newDataset(t, "metab", ids, 50, 11),
			newDataset(t, "rna", ids, 100, 12),
			newDataset(t, "spatial", ids, 20, 13),
			newDataset(t, "scrna", ids, 60, 14),
		}
	}

	seq, err := New().FitTransform(ctx, datasets()...)
	require.NoError(t, err)

	par, err := New(WithParallelism(4)).FitTransform(ctx, datasets()...)
	require.NoError(t, err)

	assert.Equal(t, seq.SampleIDs, par.SampleIDs)
	assert.Equal(t, seq.Coords.RawMatrix().Data, par.Coords.RawMatrix().Data)
}

func TestFitTransform_EmptyIntersection(t *testing.T) {
	ctx := context.Background()

	a := newDataset(t, "a", []string{"s1", "s2", "s3"}, 5, 1)
	b := newDataset(t, "b", []string{"x1", "x2", "x3"}, 5, 2)

	emb, err := New().FitTransform(ctx, a, b)
	assert.ErrorIs(t, err, ErrEmptyIntersection)
	assert.Nil(t, emb)
}

func TestFitTransform_ShapeMismatchBeforeReduction(t *testing.T) {
	ctx := context.Background()

	bad := dataset.FromDense("rna", []string{"s1", "s2"}, mat.NewDense(3, 4, nil))
	good := newDataset(t, "metab", []string{"s1", "s2", "s3"}, 6, 5)

	tracker := &reductionTracker{inner: reduce.NewPCA()}
	emb, err := New(WithReducer(tracker)).FitTransform(ctx, bad, good)

	var sm *ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, "rna", sm.Modality)
	assert.Nil(t, emb)
	assert.Zero(t, tracker.calls, "no reduction may run after a validation failure")
}

func TestFitTransform_DuplicateSample(t *testing.T) {
	ctx := context.Background()

	bad := dataset.FromDense("rna", []string{"s1", "s1"}, mat.NewDense(2, 4, nil))

	_, err := New().FitTransform(ctx, bad)

	var dup *ErrDuplicateSample
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "s1", dup.SampleID)
}

func TestFitTransform_InsufficientRank(t *testing.T) {
	ctx := context.Background()

	single := newDataset(t, "rna", []string{"only"}, 10, 6)

	_, err := New().FitTransform(ctx, single)

	var ir *ErrInsufficientRank
	require.ErrorAs(t, err, &ir)
	assert.Equal(t, "rna", ir.Stage)
	assert.Equal(t, 1, ir.Samples)
}

func TestFitTransform_ClampWarningPerModality(t *testing.T) {
	ctx := context.Background()
	ids := testutil.SampleIDs(4, "s")

	// min(4, 50) = 4: explicit k=9 clamps to 4.
	ds := newDataset(t, "rna", ids, 50, 9)

	emb, err := New(WithComponents("rna", 9), WithJointComponents(2)).FitTransform(ctx, ds)
	require.NoError(t, err)

	require.NotEmpty(t, emb.Warnings)
	assert.Equal(t, "rna", emb.Warnings[0].Stage)
	assert.Equal(t, 9, emb.Warnings[0].Requested)
	assert.Equal(t, 4, emb.Warnings[0].Effective)
}

func TestFitTransform_DefaultComponentsClamp(t *testing.T) {
	ctx := context.Background()
	ids := testutil.SampleIDs(6, "s")

	// Unconfigured modality: default 10 lowered to min(6,30)-1 = 5.
	ds := newDataset(t, "rna", ids, 30, 10)

	emb, err := New(WithJointComponents(2)).FitTransform(ctx, ds)
	require.NoError(t, err)

	require.NotEmpty(t, emb.Warnings)
	assert.Equal(t, reduce.DefaultComponents, emb.Warnings[0].Requested)
	assert.Equal(t, 5, emb.Warnings[0].Effective)
	require.Len(t, emb.ModalityVariance["rna"], 5)
}

func TestFitTransform_ModalityOrder(t *testing.T) {
	ctx := context.Background()

	a := newDataset(t, "a", []string{"s2", "s1"}, 5, 21)
	b := newDataset(t, "b", []string{"s1", "s2"}, 5, 22)

	// With b listed first, the embedding row order follows b.
	emb, err := New(
		WithModalityOrder("b", "a"),
		WithComponents("a", 1),
		WithComponents("b", 1),
	).FitTransform(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, emb.SampleIDs)

	_, err = New(WithModalityOrder("b")).FitTransform(ctx, a, b)
	assert.Error(t, err)

	_, err = New(WithModalityOrder("b", "zzz")).FitTransform(ctx, a, b)
	assert.Error(t, err)
}

func TestFitTransform_InputErrors(t *testing.T) {
	ctx := context.Background()

	_, err := New().FitTransform(ctx)
	assert.ErrorIs(t, err, ErrNoModalities)

	a := newDataset(t, "a", []string{"s1", "s2"}, 5, 31)
	dupName := newDataset(t, "a", []string{"s1", "s2"}, 5, 32)
	_, err = New().FitTransform(ctx, a, dupName)
	assert.Error(t, err)

	_, err = New(WithComponents("a", 0)).FitTransform(ctx, a)
	assert.Error(t, err)
}

func TestFitTransform_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids := testutil.SampleIDs(10, "s")
	_, err := New().FitTransform(ctx, newDataset(t, "rna", ids, 10, 41))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitTransform_Metrics(t *testing.T) {
	ctx := context.Background()
	ids := testutil.SampleIDs(10, "s")

	metrics := &BasicMetricsCollector{}
	integ := New(WithMetricsCollector(metrics), WithJointComponents(2))

	_, err := integ.FitTransform(ctx,
		newDataset(t, "rna", ids, 12, 51),
		newDataset(t, "metab", ids, 8, 52),
	)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ValidateCount)
	assert.Equal(t, int64(2), stats.ReduceCount)
	assert.Equal(t, int64(1), stats.IntegrateCount)
	assert.Equal(t, int64(10), stats.RetainedSamples)
	assert.Zero(t, stats.IntegrateErrors)
}

// reductionTracker counts Reduce calls; used to verify stage ordering.
type reductionTracker struct {
	inner reduce.Reducer
	calls int
}

func (r *reductionTracker) Reduce(ctx context.Context, m mat.Matrix, k int) (reduce.Result, error) {
	r.calls++
	return r.inner.Reduce(ctx, m, k)
}
