package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})

	ds, err := New("rna", []string{"s1", "s2", "s3"}, m)
	require.NoError(t, err)

	assert.Equal(t, "rna", ds.Name())
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Features())

	i, ok := ds.Index("s2")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.False(t, ds.Has("s4"))
}

func TestNew_CopiesInput(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	ids := []string{"a", "b"}

	ds, err := New("rna", ids, m)
	require.NoError(t, err)

	m.Set(0, 0, 99)
	ids[0] = "mutated"

	assert.Equal(t, 1.0, ds.Data().At(0, 0))
	assert.Equal(t, "a", ds.Samples()[0])
}

func TestNew_ShapeMismatch(t *testing.T) {
	m := mat.NewDense(3, 2, nil)

	_, err := New("rna", []string{"s1", "s2"}, m)
	require.Error(t, err)

	var sm *ErrShapeMismatch
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, "rna", sm.Modality)
	assert.Equal(t, 3, sm.Rows)
	assert.Equal(t, 2, sm.IDs)
}

func TestNew_DuplicateSample(t *testing.T) {
	m := mat.NewDense(3, 2, nil)

	_, err := New("rna", []string{"s1", "s2", "s1"}, m)
	require.Error(t, err)

	var dup *ErrDuplicateSample
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "s1", dup.SampleID)
}

func TestNew_Empty(t *testing.T) {
	_, err := New("rna", nil, nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New("rna", []string{}, &mat.Dense{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewFromRows(t *testing.T) {
	ds, err := NewFromRows("metab", []string{"s1", "s2"}, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 3, ds.Features())
	assert.Equal(t, 6.0, ds.Data().At(1, 2))
}

func TestNewFromRows_RaggedRows(t *testing.T) {
	_, err := NewFromRows("metab", []string{"s1", "s2"}, [][]float64{
		{1, 2, 3},
		{4, 5},
	})
	assert.Error(t, err)
}

func TestFromDense_DeferredValidation(t *testing.T) {
	// FromDense accepts inconsistent input; Validate reports it.
	ds := FromDense("rna", []string{"s1"}, mat.NewDense(2, 2, nil))

	var sm *ErrShapeMismatch
	require.ErrorAs(t, ds.Validate(), &sm)
	assert.Equal(t, 2, sm.Rows)
	assert.Equal(t, 1, sm.IDs)
}
