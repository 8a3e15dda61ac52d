package score

import "math"

// Outcome classifies a scoring result.
type Outcome int

const (
	// OutcomeMissing means too many tied pairs left fewer than minPairs
	// usable comparisons; there is no score.
	OutcomeMissing Outcome = iota
	// OutcomeBelow and OutcomeAtOrAbove are only produced in short-cut
	// mode, where the caller supplied a threshold and only the direction
	// relative to it matters.
	OutcomeBelow
	OutcomeAtOrAbove
	// OutcomeScore carries the proportion itself in [0, 1].
	OutcomeScore
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMissing:
		return "missing"
	case OutcomeBelow:
		return "below"
	case OutcomeAtOrAbove:
		return "at_or_above"
	case OutcomeScore:
		return "score"
	}
	return "unknown"
}

// Result is the outcome of one scoring pass. Proportion is meaningful
// only when Outcome == OutcomeScore.
type Result struct {
	Outcome    Outcome
	Proportion float64
}

// Missing returns the missing-value result.
func Missing() Result {
	return Result{Outcome: OutcomeMissing, Proportion: math.NaN()}
}

// IsMissing reports whether the result carries no score.
func (r Result) IsMissing() bool {
	return r.Outcome == OutcomeMissing
}

// Below reports whether a short-cut result fell below the threshold.
func (r Result) Below() bool {
	return r.Outcome == OutcomeBelow
}
