package matrix

import (
	"context"
	"errors"
	"testing"

	"pairscore/domain/core"

	"gonum.org/v1/gonum/mat"
)

func TestDenseColumn(t *testing.T) {
	// 3 features x 2 samples
	data := mat.NewDense(3, 2, []float64{
		1, 4,
		2, 5,
		3, 6,
	})
	dense := NewDense(data)
	ctx := context.Background()

	if dense.NumFeatures() != 3 || dense.NumSamples() != 2 {
		t.Fatalf("dims = (%d, %d), want (3, 2)", dense.NumFeatures(), dense.NumSamples())
	}

	col, err := dense.Column(ctx, 1)
	if err != nil {
		t.Fatalf("Column(1) failed: %v", err)
	}
	want := []float64{4, 5, 6}
	for i := range want {
		if col[i] != want[i] {
			t.Errorf("column[%d] = %f, want %f", i, col[i], want[i])
		}
	}

	// Returned slice is a copy, not a view.
	col[0] = 99
	if data.At(0, 1) != 4 {
		t.Error("mutating the returned column changed the backing matrix")
	}

	if _, err := dense.Column(ctx, 2); !errors.Is(err, core.ErrSampleOutOfRange) {
		t.Errorf("Column(2) error = %v, want %v", err, core.ErrSampleOutOfRange)
	}
	if _, err := dense.Column(ctx, -1); !errors.Is(err, core.ErrSampleOutOfRange) {
		t.Errorf("Column(-1) error = %v, want %v", err, core.ErrSampleOutOfRange)
	}
}

func TestNewDenseFromColumns(t *testing.T) {
	dense := NewDenseFromColumns(2, [][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	})

	if dense.NumFeatures() != 2 || dense.NumSamples() != 3 {
		t.Fatalf("dims = (%d, %d), want (2, 3)", dense.NumFeatures(), dense.NumSamples())
	}

	col, err := dense.Column(context.Background(), 2)
	if err != nil {
		t.Fatalf("Column(2) failed: %v", err)
	}
	if col[0] != 5 || col[1] != 6 {
		t.Errorf("column 2 = %v, want [5 6]", col)
	}
}
