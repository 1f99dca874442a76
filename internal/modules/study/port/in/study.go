package in

import (
	"context"

	"uxlab/internal/modules/study/dto"
)

type Usecase interface {
	GetPlan(ctx context.Context) (dto.PlanOutput, error)
	ConsentDocument(ctx context.Context) (dto.DocumentOutput, error)
	TaskInstructions(ctx context.Context, taskName string) (dto.DocumentOutput, error)
}
