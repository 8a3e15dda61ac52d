package score

// checkInterval controls how often the short-cut bounds are evaluated.
// Checking every comparison is wasteful; every hundred bounds the
// overshoot past a decided outcome to at most ~100 comparisons.
const checkInterval = 100

// Proportion computes the fraction of non-tied marker pairs whose first
// value exceeds the second. Tied pairs contribute to neither numerator
// nor denominator. Fewer than minPairs usable comparisons yields Missing.
func Proportion(values []float64, pairs Pairs, minPairs int) Result {
	return proportion(values, pairs, minPairs, 0, false, false)
}

// ProportionAgainst scores in short-cut mode: the result is only the
// direction of the proportion relative to threshold (Below when
// proportion < threshold, AtOrAbove otherwise), which allows the scan
// to terminate as soon as the direction is decided. This is the inner
// loop of the permutation engine, called once per shuffle per sample.
func ProportionAgainst(values []float64, pairs Pairs, minPairs int, threshold float64) Result {
	return proportion(values, pairs, minPairs, threshold, true, true)
}

func proportion(values []float64, pairs Pairs, minPairs int, threshold float64, shortCut, earlyExit bool) Result {
	firstGreater, compared := 0, 0
	npairs := pairs.Len()

	for m := 0; m < npairs; m++ {
		a := values[pairs.First[m]]
		b := values[pairs.Second[m]]
		if a != b {
			if a > b {
				firstGreater++
			}
			compared++
		}

		if shortCut && earlyExit && compared >= minPairs && compared%checkInterval == 0 {
			leftovers := npairs - m - 1
			maxTotal := float64(compared + leftovers)

			// +1/-1 margins so floating-point equality at the exact
			// threshold can never trigger a wrong-direction exit. The
			// firstGreater > 0 guard keeps the numerator from going
			// negative.
			if float64(firstGreater+leftovers+1)/maxTotal < threshold {
				return Result{Outcome: OutcomeBelow}
			} else if firstGreater > 0 && float64(firstGreater-1)/maxTotal > threshold {
				return Result{Outcome: OutcomeAtOrAbove}
			}
		}
	}

	if compared < minPairs {
		return Missing()
	}

	output := float64(firstGreater) / float64(compared)
	if shortCut {
		if output < threshold {
			return Result{Outcome: OutcomeBelow}
		}
		return Result{Outcome: OutcomeAtOrAbove}
	}
	return Result{Outcome: OutcomeScore, Proportion: output}
}
