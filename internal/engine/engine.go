package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"pairscore/domain/core"
	"pairscore/domain/score"
	"pairscore/internal"
	"pairscore/ports"

	"github.com/google/uuid"
)

// Engine runs the per-sample permutation procedure: observed marker-pair
// score, then an empirical null built from repeated shuffles of the
// used-subset vector.
type Engine struct {
	matrix ports.MatrixPort
	rng    ports.RNGPort
	log    *internal.Logger
}

// New creates an engine over a matrix provider and an RNG source.
func New(matrix ports.MatrixPort, rng ports.RNGPort) *Engine {
	return &Engine{
		matrix: matrix,
		rng:    rng,
		log:    internal.DefaultLogger,
	}
}

// Request describes one ShuffleScores call.
type Request struct {
	Samples       []int       // 0-based sample indices, output order follows this
	Pairs         score.Pairs // indices into the used subset
	UsedIndices   []int       // indices into the full feature vector
	Iterations    int         // shuffle trials per sample
	MinIterations int         // minimum valid trials for a non-missing output
	MinPairs      int         // minimum non-tied comparisons for a non-missing score
	Seed          int64
}

// SampleResult is the per-sample detail behind one output value.
type SampleResult struct {
	Sample       int     `json:"sample"`
	Observed     float64 `json:"observed"`
	BelowCount   int     `json:"below_count"`
	ValidCount   int     `json:"valid_count"`
	Significance float64 `json:"significance"`
	Valid        bool    `json:"valid"`
}

// Report is the result of one ShuffleScores call. Values holds one
// entry per requested sample in request order, NaN for missing.
type Report struct {
	RunID   string         `json:"run_id"`
	Seed    int64          `json:"seed"`
	Values  []float64      `json:"values"`
	Samples []SampleResult `json:"samples"`
}

// IsMissing reports whether an output value is the missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

const shuffleStreamName = "shuffle-scores"

// ShuffleScores computes, for each requested sample, the fraction of
// permutation trials whose rescored subset falls below the sample's
// observed score. Validation failures abort the whole call before any
// sample is processed; per-sample insufficiency (too many ties, too few
// valid trials) yields NaN in the output and processing continues.
func (e *Engine) ShuffleScores(ctx context.Context, req Request) (*Report, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	stream, err := e.rng.SeededStream(ctx, shuffleStreamName, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create RNG stream: %w", err)
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Seed:    req.Seed,
		Values:  make([]float64, len(req.Samples)),
		Samples: make([]SampleResult, len(req.Samples)),
	}

	subset := make([]float64, len(req.UsedIndices))
	for i, sample := range req.Samples {
		result, err := e.scoreSample(ctx, stream, req, sample, subset)
		if err != nil {
			return nil, err
		}
		report.Values[i] = result.Significance
		report.Samples[i] = result
	}

	e.log.Debug("shuffle scores run %s: %d samples, %d iterations each",
		report.RunID, len(req.Samples), req.Iterations)
	return report, nil
}

// scoreSample processes one sample. The subset buffer is reused across
// samples and mutated in place by every shuffle trial; it must not be
// read by anything else while the sample is being processed.
func (e *Engine) scoreSample(ctx context.Context, stream *rand.Rand, req Request, sample int, subset []float64) (SampleResult, error) {
	column, err := e.matrix.Column(ctx, sample)
	if err != nil {
		return SampleResult{}, fmt.Errorf("%w: sample %d: %v", core.ErrColumnFetchFailed, sample, err)
	}

	// Extract only the feature values used in at least one pair.
	for j, u := range req.UsedIndices {
		subset[j] = column[u]
	}

	observed := score.Proportion(subset, req.Pairs, req.MinPairs)
	if observed.IsMissing() {
		// Too many ties: no meaningful null to test against, so no
		// permutations are run for this sample.
		return SampleResult{
			Sample:       sample,
			Observed:     math.NaN(),
			Significance: math.NaN(),
		}, nil
	}

	// The observed score is fixed here; trials never recompute it. Each
	// trial shuffles the buffer left by the previous trial, which is
	// still a uniform permutation of the subset.
	below, valid := 0, 0
	for it := 0; it < req.Iterations; it++ {
		shuffleFloats(stream, subset)
		trial := score.ProportionAgainst(subset, req.Pairs, req.MinPairs, observed.Proportion)
		if trial.IsMissing() {
			continue
		}
		if trial.Below() {
			below++
		}
		valid++
	}

	result := SampleResult{
		Sample:     sample,
		Observed:   observed.Proportion,
		BelowCount: below,
		ValidCount: valid,
	}
	if valid >= req.MinIterations {
		result.Significance = float64(below) / float64(valid)
		result.Valid = true
	} else {
		result.Significance = math.NaN()
	}
	return result, nil
}

func (e *Engine) validate(req Request) error {
	if req.Iterations <= 0 || req.MinIterations <= 0 {
		return core.ErrInvalidIterations
	}
	if req.MinPairs <= 0 {
		return core.ErrInvalidMinPairs
	}

	nused := len(req.UsedIndices)
	if err := req.Pairs.Validate(nused); err != nil {
		return err
	}

	nfeatures := e.matrix.NumFeatures()
	for i, u := range req.UsedIndices {
		if u < 0 || u >= nfeatures {
			return core.NewRangeError(core.ErrUsedIndexOutOfRange, i, u, nfeatures)
		}
	}

	nsamples := e.matrix.NumSamples()
	for i, s := range req.Samples {
		if s < 0 || s >= nsamples {
			return core.NewRangeError(core.ErrSampleOutOfRange, i, s, nsamples)
		}
	}
	return nil
}

// shuffleFloats performs an in-place Fisher-Yates shuffle.
func shuffleFloats(r *rand.Rand, v []float64) {
	for i := len(v) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		v[i], v[j] = v[j], v[i]
	}
}
