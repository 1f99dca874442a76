package in

import (
	"context"

	"uxlab/internal/modules/records/domain"
	"uxlab/internal/modules/records/dto"
)

type Usecase interface {
	Append(ctx context.Context, dataset domain.Dataset, record domain.Record) (dto.AppendOutput, error)
	Load(ctx context.Context, dataset domain.Dataset) ([]domain.Record, error)
	Snapshot(ctx context.Context, dataset string) (dto.DatasetSnapshotOutput, error)
	ListDatasets(ctx context.Context) ([]dto.DatasetInfoOutput, error)
	Reindex(ctx context.Context) error
}
