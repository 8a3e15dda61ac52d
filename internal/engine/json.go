package engine

import (
	"encoding/json"
	"math"
)

// JSON encoding rejects NaN, so missing values serialize as null.

func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RunID   string         `json:"run_id"`
		Seed    int64          `json:"seed"`
		Values  []*float64     `json:"values"`
		Samples []SampleResult `json:"samples"`
	}{
		RunID:   r.RunID,
		Seed:    r.Seed,
		Values:  nullableSlice(r.Values),
		Samples: r.Samples,
	})
}

func (s SampleResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sample       int      `json:"sample"`
		Observed     *float64 `json:"observed"`
		BelowCount   int      `json:"below_count"`
		ValidCount   int      `json:"valid_count"`
		Significance *float64 `json:"significance"`
		Valid        bool     `json:"valid"`
	}{
		Sample:       s.Sample,
		Observed:     nullable(s.Observed),
		BelowCount:   s.BelowCount,
		ValidCount:   s.ValidCount,
		Significance: nullable(s.Significance),
		Valid:        s.Valid,
	})
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func nullableSlice(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		out[i] = nullable(vs[i])
	}
	return out
}
