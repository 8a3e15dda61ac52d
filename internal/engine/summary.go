package engine

import (
	"github.com/montanaflynn/stats"
)

// SignificanceSummary aggregates the non-missing output values of a run.
type SignificanceSummary struct {
	Count        int     `json:"count"`
	MissingCount int     `json:"missing_count"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
}

// Summary reduces a report's valid significance values to descriptive
// statistics. Returns nil when every sample came back missing.
func (r *Report) Summary() *SignificanceSummary {
	valid := make([]float64, 0, len(r.Values))
	missing := 0
	for _, v := range r.Values {
		if IsMissing(v) {
			missing++
			continue
		}
		valid = append(valid, v)
	}
	if len(valid) == 0 {
		return nil
	}

	mean, _ := stats.Mean(valid)
	median, _ := stats.Median(valid)
	stdDev, _ := stats.StandardDeviation(valid)
	min, _ := stats.Min(valid)
	max, _ := stats.Max(valid)
	p95, _ := stats.Percentile(valid, 95)

	return &SignificanceSummary{
		Count:        len(valid),
		MissingCount: missing,
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		Min:          min,
		Max:          max,
		Percentile95: p95,
	}
}
