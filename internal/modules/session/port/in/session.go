package in

import (
	"context"

	"uxlab/internal/modules/session/dto"
)

type Usecase interface {
	StartTimer(ctx context.Context) (dto.TimerStatusOutput, error)
	StopTimer(ctx context.Context) (dto.TimerStatusOutput, error)
	ConsumeDuration(ctx context.Context) (dto.DurationOutput, error)
	Status(ctx context.Context) (dto.TimerStatusOutput, error)
}
