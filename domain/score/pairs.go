package score

import "pairscore/domain/core"

// Pairs holds the marker pair index lists. Entry i compares
// values[First[i]] against values[Second[i]], where both indices point
// into the used-subset vector, not the full feature vector.
type Pairs struct {
	First  []int
	Second []int
}

// Len returns the number of marker pairs.
func (p Pairs) Len() int {
	return len(p.First)
}

// Validate checks that both index lists have the same length and that
// every index lies in [0, nused).
func (p Pairs) Validate(nused int) error {
	if len(p.First) != len(p.Second) {
		return core.ErrMarkerLengthMismatch
	}
	for i, m := range p.First {
		if m < 0 || m >= nused {
			return core.NewRangeError(core.ErrMarkerOutOfRange, i, m, nused)
		}
	}
	for i, m := range p.Second {
		if m < 0 || m >= nused {
			return core.NewRangeError(core.ErrMarkerOutOfRange, i, m, nused)
		}
	}
	return nil
}
