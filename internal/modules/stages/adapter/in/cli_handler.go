package in

import (
	"context"

	"uxlab/internal/modules/stages/dto"
	stagesin "uxlab/internal/modules/stages/port/in"
)

type CLIHandler struct {
	usecase stagesin.Usecase
}

func NewCLIHandler(usecase stagesin.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) SubmitConsent(ctx context.Context, input dto.ConsentInput) (dto.SubmissionOutput, error) {
	return h.usecase.SubmitConsent(ctx, input)
}

func (h *CLIHandler) SubmitDemographics(ctx context.Context, input dto.DemographicsInput) (dto.SubmissionOutput, error) {
	return h.usecase.SubmitDemographics(ctx, input)
}

func (h *CLIHandler) SubmitTask(ctx context.Context, input dto.TaskInput) (dto.SubmissionOutput, error) {
	return h.usecase.SubmitTask(ctx, input)
}

func (h *CLIHandler) SubmitExit(ctx context.Context, input dto.ExitInput) (dto.SubmissionOutput, error) {
	return h.usecase.SubmitExit(ctx, input)
}
