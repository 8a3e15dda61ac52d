package testkit

import (
	"context"
	"math/rand"

	"pairscore/adapters/matrix"
	rngadapter "pairscore/adapters/rng"
	"pairscore/ports"

	"gonum.org/v1/gonum/mat"
)

// Kit provides deterministic fixtures for engine and adapter tests.
type Kit struct{}

// New creates a test kit instance.
func New() *Kit {
	return &Kit{}
}

// RNG returns the real seeded RNG adapter.
func (k *Kit) RNG() ports.RNGPort {
	return rngadapter.New()
}

// ScriptedRNG returns an RNG port whose streams replay the given Int63
// outputs in a cycle, so shuffle sequences are fixed and independent of
// the seed. Used to pin down exact below/valid reductions.
func (k *Kit) ScriptedRNG(outputs ...int64) ports.RNGPort {
	return &scriptedPort{outputs: outputs}
}

// SyntheticMatrix builds a dense feature-by-sample matrix of seeded
// standard-normal values.
func (k *Kit) SyntheticMatrix(nfeatures, nsamples int, seed int64) *matrix.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := mat.NewDense(nfeatures, nsamples, nil)
	for i := 0; i < nfeatures; i++ {
		for j := 0; j < nsamples; j++ {
			data.Set(i, j, rng.NormFloat64())
		}
	}
	return matrix.NewDense(data)
}

// MarkerMatrix builds a matrix where the features listed in high sit a
// fixed offset above the rest for every sample, so marker pairs
// (high, low) order consistently. Remaining values are seeded noise.
func (k *Kit) MarkerMatrix(nfeatures, nsamples int, high []int, offset float64, seed int64) *matrix.Dense {
	rng := rand.New(rand.NewSource(seed))
	elevated := make(map[int]bool, len(high))
	for _, f := range high {
		elevated[f] = true
	}

	data := mat.NewDense(nfeatures, nsamples, nil)
	for i := 0; i < nfeatures; i++ {
		for j := 0; j < nsamples; j++ {
			v := rng.NormFloat64()
			if elevated[i] {
				v += offset
			}
			data.Set(i, j, v)
		}
	}
	return matrix.NewDense(data)
}

// scriptedPort hands out rand.Rand instances over a replayed source.
type scriptedPort struct {
	outputs []int64
}

func (p *scriptedPort) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(&scriptedSource{outputs: p.outputs}), nil
}

// scriptedSource implements rand.Source by cycling a fixed output list.
type scriptedSource struct {
	outputs []int64
	pos     int
}

func (s *scriptedSource) Int63() int64 {
	v := s.outputs[s.pos%len(s.outputs)]
	s.pos++
	return v & (1<<63 - 1)
}

func (s *scriptedSource) Seed(seed int64) {
	s.pos = 0
}
