package matrix

import (
	"context"

	"pairscore/domain/core"

	"gonum.org/v1/gonum/mat"
)

// Dense implements ports.MatrixPort over an in-memory gonum matrix with
// rows = features and columns = samples.
type Dense struct {
	data *mat.Dense
}

// NewDense wraps a feature-by-sample matrix. The matrix is not copied;
// the caller must not mutate it while the adapter is in use.
func NewDense(data *mat.Dense) *Dense {
	return &Dense{data: data}
}

// NewDenseFromColumns builds a dense matrix from per-sample columns,
// each of length nfeatures.
func NewDenseFromColumns(nfeatures int, columns [][]float64) *Dense {
	data := mat.NewDense(nfeatures, len(columns), nil)
	for j, col := range columns {
		data.SetCol(j, col)
	}
	return &Dense{data: data}
}

// Column returns a copy of the feature vector for one sample.
func (d *Dense) Column(ctx context.Context, sample int) ([]float64, error) {
	if sample < 0 || sample >= d.NumSamples() {
		return nil, core.NewRangeError(core.ErrSampleOutOfRange, 0, sample, d.NumSamples())
	}
	out := make([]float64, d.NumFeatures())
	mat.Col(out, sample, d.data)
	return out, nil
}

// NumFeatures returns the number of rows (features).
func (d *Dense) NumFeatures() int {
	r, _ := d.data.Dims()
	return r
}

// NumSamples returns the number of columns (samples).
func (d *Dense) NumSamples() int {
	_, c := d.data.Dims()
	return c
}
