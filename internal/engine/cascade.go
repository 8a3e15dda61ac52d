package engine

import (
	"context"
	"fmt"

	"pairscore/domain/core"

	"gonum.org/v1/gonum/mat"
)

const cascadeStreamName = "auto-shuffle"

// AutoShuffle produces a len(values) x iterations matrix of successive
// permutations of the input. Column 0 is a shuffled copy of values and
// every later column is a shuffle of the column before it, not of the
// original: the columns form a dependent chain. That is intentional -
// it trades inter-column independence for avoiding a full re-permute
// from scratch when only a fast relative measure of permutation
// variability is needed. Do not "fix" this to independent columns.
func (e *Engine) AutoShuffle(ctx context.Context, values []float64, iterations int, seed int64) (*mat.Dense, error) {
	if iterations <= 0 {
		return nil, core.ErrInvalidIterations
	}
	if len(values) == 0 {
		return nil, core.ErrEmptyInput
	}

	stream, err := e.rng.SeededStream(ctx, cascadeStreamName, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create RNG stream: %w", err)
	}

	out := mat.NewDense(len(values), iterations, nil)
	buf := append([]float64(nil), values...)
	for i := 0; i < iterations; i++ {
		shuffleFloats(stream, buf)
		out.SetCol(i, buf)
	}
	return out, nil
}
