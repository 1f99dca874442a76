package in

import (
	"context"

	"uxlab/internal/modules/study/dto"
	studyin "uxlab/internal/modules/study/port/in"
)

type CLIHandler struct {
	usecase studyin.Usecase
}

func NewCLIHandler(usecase studyin.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) ShowPlan(ctx context.Context) (dto.PlanOutput, error) {
	return h.usecase.GetPlan(ctx)
}

func (h *CLIHandler) ShowConsentDocument(ctx context.Context) (dto.DocumentOutput, error) {
	return h.usecase.ConsentDocument(ctx)
}

func (h *CLIHandler) ShowTaskInstructions(ctx context.Context, taskName string) (dto.DocumentOutput, error) {
	return h.usecase.TaskInstructions(ctx, taskName)
}
