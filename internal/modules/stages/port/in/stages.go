package in

import (
	"context"

	"uxlab/internal/modules/stages/dto"
)

// Usecase accepts one stage submission at a time, validates it, and
// persists the resulting record.
type Usecase interface {
	SubmitConsent(ctx context.Context, input dto.ConsentInput) (dto.SubmissionOutput, error)
	SubmitDemographics(ctx context.Context, input dto.DemographicsInput) (dto.SubmissionOutput, error)
	SubmitTask(ctx context.Context, input dto.TaskInput) (dto.SubmissionOutput, error)
	SubmitExit(ctx context.Context, input dto.ExitInput) (dto.SubmissionOutput, error)
}
