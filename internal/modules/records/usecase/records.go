package usecase

import (
	"context"

	"uxlab/internal/modules/records/domain"
	"uxlab/internal/modules/records/dto"
	recordsin "uxlab/internal/modules/records/port/in"
	"uxlab/internal/modules/records/service"
)

type Interactor struct {
	svc *service.RecordService
}

func NewInteractor(svc *service.RecordService) recordsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Append(ctx context.Context, dataset domain.Dataset, record domain.Record) (dto.AppendOutput, error) {
	seq, err := i.svc.Append(ctx, dataset, record)
	if err != nil {
		return dto.AppendOutput{}, err
	}
	submittedAt := ""
	if ts, ok := record.Lookup(domain.TimestampField); ok {
		submittedAt = ts.Encode()
	}
	return dto.AppendOutput{Dataset: string(dataset), Seq: seq, SubmittedAt: submittedAt}, nil
}

func (i *Interactor) Load(ctx context.Context, dataset domain.Dataset) ([]domain.Record, error) {
	return i.svc.Load(ctx, dataset)
}

func (i *Interactor) Snapshot(ctx context.Context, dataset string) (dto.DatasetSnapshotOutput, error) {
	records, err := i.svc.Load(ctx, domain.Dataset(dataset))
	if err != nil {
		return dto.DatasetSnapshotOutput{}, err
	}
	out := dto.DatasetSnapshotOutput{Dataset: dataset, Rows: make([][]string, 0, len(records))}
	for _, record := range records {
		if out.Columns == nil {
			out.Columns = record.Names()
		}
		row := make([]string, 0, len(record.Fields))
		for _, field := range record.Fields {
			row = append(row, field.Value.Encode())
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func (i *Interactor) ListDatasets(ctx context.Context) ([]dto.DatasetInfoOutput, error) {
	counts, err := i.svc.Counts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DatasetInfoOutput, 0, len(counts))
	for _, count := range counts {
		out = append(out, dto.DatasetInfoOutput{
			Dataset: string(count.Dataset),
			Records: count.Records,
			LastAt:  count.LastAt,
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}
