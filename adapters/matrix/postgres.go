package matrix

import (
	"context"
	"fmt"

	"pairscore/domain/core"
	apperrors "pairscore/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Postgres implements ports.MatrixPort over a long-format table:
//
//	CREATE TABLE feature_values (
//	    dataset     TEXT             NOT NULL,
//	    sample_idx  INTEGER          NOT NULL,
//	    feature_idx INTEGER          NOT NULL,
//	    value       DOUBLE PRECISION NOT NULL,
//	    PRIMARY KEY (dataset, sample_idx, feature_idx)
//	);
//
// Integer-valued datasets are widened to float64 by the driver read, so
// scoring sees a single numeric representation.
type Postgres struct {
	db        *sqlx.DB
	dataset   string
	nfeatures int
	nsamples  int
}

// NewPostgres creates a matrix adapter for one dataset, discovering its
// dimensions up front. Feature and sample indices are expected to be
// dense 0-based ranges.
func NewPostgres(ctx context.Context, db *sqlx.DB, dataset string) (*Postgres, error) {
	var dims struct {
		Features int `db:"features"`
		Samples  int `db:"samples"`
	}
	const dimQuery = `
		SELECT COUNT(DISTINCT feature_idx) AS features,
		       COUNT(DISTINCT sample_idx)  AS samples
		FROM feature_values
		WHERE dataset = $1`
	if err := db.GetContext(ctx, &dims, dimQuery, dataset); err != nil {
		return nil, apperrors.Wrapf(apperrors.DatabaseError(err.Error()),
			"failed to size dataset %q", dataset)
	}
	if dims.Features == 0 || dims.Samples == 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrDatasetNotFound, dataset)
	}

	return &Postgres{
		db:        db,
		dataset:   dataset,
		nfeatures: dims.Features,
		nsamples:  dims.Samples,
	}, nil
}

type featureValue struct {
	FeatureIdx int     `db:"feature_idx"`
	Value      float64 `db:"value"`
}

// Column fetches the full feature vector for one sample. Features not
// stored for the sample stay zero.
func (p *Postgres) Column(ctx context.Context, sample int) ([]float64, error) {
	if sample < 0 || sample >= p.nsamples {
		return nil, core.NewRangeError(core.ErrSampleOutOfRange, 0, sample, p.nsamples)
	}

	var values []featureValue
	const colQuery = `
		SELECT feature_idx, value
		FROM feature_values
		WHERE dataset = $1 AND sample_idx = $2
		ORDER BY feature_idx`
	if err := p.db.SelectContext(ctx, &values, colQuery, p.dataset, sample); err != nil {
		return nil, apperrors.Wrapf(apperrors.DatabaseError(err.Error()),
			"failed to fetch column for sample %d", sample)
	}

	column := make([]float64, p.nfeatures)
	for _, v := range values {
		if v.FeatureIdx < 0 || v.FeatureIdx >= p.nfeatures {
			return nil, core.NewRangeError(core.ErrUsedIndexOutOfRange, sample, v.FeatureIdx, p.nfeatures)
		}
		column[v.FeatureIdx] = v.Value
	}
	return column, nil
}

// NumFeatures returns the number of distinct feature indices.
func (p *Postgres) NumFeatures() int {
	return p.nfeatures
}

// NumSamples returns the number of distinct sample indices.
func (p *Postgres) NumSamples() int {
	return p.nsamples
}
