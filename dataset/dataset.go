package dataset

import (
	"gonum.org/v1/gonum/mat"
)

// Dataset is one omics modality: a measurement matrix with rows =
// samples and columns = features, plus the sample identifier per row.
type Dataset struct {
	name    string
	samples []string
	index   map[string]int
	data    *mat.Dense
}

// New builds a validated Dataset. The matrix and identifier list are
// copied, so later mutation by the caller does not affect the pipeline.
func New(name string, samples []string, data *mat.Dense) (*Dataset, error) {
	ids := make([]string, len(samples))
	copy(ids, samples)

	var m *mat.Dense
	if data != nil {
		r, c := data.Dims()
		if r > 0 && c > 0 {
			m = mat.DenseCopyOf(data)
		}
	}

	d := FromDense(name, ids, m)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFromRows is a convenience constructor building the matrix from
// row slices. All rows must have the same length.
func NewFromRows(name string, samples []string, rows [][]float64) (*Dataset, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	features := len(rows[0])
	m := mat.NewDense(len(rows), features, nil)
	for i, row := range rows {
		if len(row) != features {
			return nil, &ErrShapeMismatch{Modality: name, Rows: len(row), IDs: features}
		}
		m.SetRow(i, row)
	}
	return New(name, samples, m)
}

// FromDense wraps an existing matrix without copying and without
// validation. The caller must not mutate the matrix afterwards, and
// must call Validate (the pipeline does) before use.
func FromDense(name string, samples []string, data *mat.Dense) *Dataset {
	index := make(map[string]int, len(samples))
	for i, id := range samples {
		if _, ok := index[id]; !ok {
			index[id] = i
		}
	}
	return &Dataset{
		name:    name,
		samples: samples,
		index:   index,
		data:    data,
	}
}

// Validate checks the Dataset invariants: non-empty matrix, identifier
// count equal to row count, and unique identifiers.
func (d *Dataset) Validate() error {
	if d.data == nil {
		return ErrEmpty
	}
	rows, cols := d.data.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmpty
	}
	if rows != len(d.samples) {
		return &ErrShapeMismatch{Modality: d.name, Rows: rows, IDs: len(d.samples)}
	}

	seen := make(map[string]struct{}, len(d.samples))
	for _, id := range d.samples {
		if _, ok := seen[id]; ok {
			return &ErrDuplicateSample{Modality: d.name, SampleID: id}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Name returns the modality name.
func (d *Dataset) Name() string { return d.name }

// Len returns the number of samples (matrix rows).
func (d *Dataset) Len() int { return len(d.samples) }

// Features returns the number of feature columns.
func (d *Dataset) Features() int {
	if d.data == nil {
		return 0
	}
	_, c := d.data.Dims()
	return c
}

// Samples returns the sample identifiers in row order.
// The returned slice is shared; callers must not modify it.
func (d *Dataset) Samples() []string { return d.samples }

// Data returns the underlying matrix. Read-only by contract.
func (d *Dataset) Data() *mat.Dense { return d.data }

// Index returns the row index of the given sample identifier.
func (d *Dataset) Index(id string) (int, bool) {
	i, ok := d.index[id]
	return i, ok
}

// Has reports whether the modality contains the given sample.
func (d *Dataset) Has(id string) bool {
	_, ok := d.index[id]
	return ok
}
