package reduce

import (
	"context"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA reduces a matrix by projecting it onto its leading principal
// components. Columns are mean-centered before the decomposition;
// variance scaling is optional and off by default.
type PCA struct {
	scale bool
}

// PCAOption configures a PCA reducer.
type PCAOption func(*PCA)

// WithScaling divides each centered column by its sample standard
// deviation before the decomposition. Zero-variance columns are
// centered but left unscaled.
func WithScaling() PCAOption {
	return func(p *PCA) { p.scale = true }
}

// NewPCA creates a PCA reducer.
func NewPCA(opts ...PCAOption) *PCA {
	p := &PCA{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Reduce projects m onto its k leading principal components.
//
// Components are ordered by descending singular value, and each
// loading column is oriented so its largest-magnitude entry is
// positive. This fixes the sign ambiguity of the SVD and makes
// repeated runs bit-for-bit identical.
func (p *PCA) Reduce(ctx context.Context, m mat.Matrix, k int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	n, f := m.Dims()
	ceiling := n
	if f < ceiling {
		ceiling = f
	}
	if k < 1 || k > ceiling {
		return Result{}, &ErrInvalidComponents{K: k, Ceiling: ceiling}
	}

	x := mat.DenseCopyOf(m)
	centerColumns(x, p.scale)

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return Result{}, ErrSVDFailed
	}

	var v mat.Dense
	svd.VTo(&v)
	orientColumns(&v)

	var scores mat.Dense
	scores.Mul(x, v.Slice(0, f, 0, k))

	return Result{
		Scores:            &scores,
		ExplainedVariance: varianceRatios(svd.Values(nil), k),
	}, nil
}

// centerColumns subtracts the mean from every column of x, and when
// scale is set also divides by the sample standard deviation.
func centerColumns(x *mat.Dense, scale bool) {
	n, f := x.Dims()
	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)

		sd := 1.0
		if scale {
			if s := stat.StdDev(col, nil); s > 0 {
				sd = s
			}
		}
		for i := 0; i < n; i++ {
			x.Set(i, j, (col[i]-mean)/sd)
		}
	}
}

// orientColumns flips each column of v so that the entry with the
// largest magnitude is positive. Ties keep the first maximum, so the
// orientation is deterministic.
func orientColumns(v *mat.Dense) {
	r, c := v.Dims()
	for j := 0; j < c; j++ {
		maxAbs, sign := 0.0, 1.0
		for i := 0; i < r; i++ {
			a := v.At(i, j)
			if a < 0 {
				a = -a
			}
			if a > maxAbs {
				maxAbs = a
				if v.At(i, j) < 0 {
					sign = -1
				} else {
					sign = 1
				}
			}
		}
		if sign < 0 {
			for i := 0; i < r; i++ {
				v.Set(i, j, -v.At(i, j))
			}
		}
	}
}

// varianceRatios converts singular values into the fraction of total
// variance captured by each of the first k components.
func varianceRatios(singular []float64, k int) []float64 {
	total := 0.0
	for _, s := range singular {
		total += s * s
	}

	ratios := make([]float64, k)
	if total == 0 {
		return ratios
	}
	for i := 0; i < k && i < len(singular); i++ {
		ratios[i] = singular[i] * singular[i] / total
	}
	return ratios
}
