package out

import (
	"context"

	"uxlab/internal/modules/records/domain"
)

type DatasetStore interface {
	Append(ctx context.Context, dataset domain.Dataset, record domain.Record) (int, error)
	Load(ctx context.Context, dataset domain.Dataset) ([]domain.Record, error)
}

type SubmissionIndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, dataset domain.Dataset, seq int, record domain.Record) error
	Counts(ctx context.Context) ([]domain.DatasetCount, error)
}
