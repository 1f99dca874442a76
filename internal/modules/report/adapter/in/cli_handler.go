package in

import (
	"context"

	"uxlab/internal/modules/report/dto"
	reportin "uxlab/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) Generate(ctx context.Context) (dto.ReportOutput, error) {
	return h.usecase.Generate(ctx)
}
