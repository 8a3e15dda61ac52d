package ports

import "context"

// MatrixPort exposes column-addressable access to a feature-by-sample
// numeric matrix. Implementations convert whatever the store holds
// (integer or real cells) into a common float64 buffer.
type MatrixPort interface {
	// Column returns the full feature vector for the sample at the given
	// 0-based index. The returned slice is owned by the caller.
	Column(ctx context.Context, sample int) ([]float64, error)

	// NumFeatures returns the number of rows (features).
	NumFeatures() int

	// NumSamples returns the number of columns (samples).
	NumSamples() int
}
