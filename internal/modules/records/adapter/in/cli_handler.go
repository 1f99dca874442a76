package in

import (
	"context"

	"uxlab/internal/modules/records/dto"
	recordsin "uxlab/internal/modules/records/port/in"
)

type CLIHandler struct {
	usecase recordsin.Usecase
}

func NewCLIHandler(usecase recordsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListDatasets(ctx context.Context) ([]dto.DatasetInfoOutput, error) {
	return h.usecase.ListDatasets(ctx)
}

func (h CLIHandler) ShowDataset(ctx context.Context, dataset string) (dto.DatasetSnapshotOutput, error) {
	return h.usecase.Snapshot(ctx, dataset)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
