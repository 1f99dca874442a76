package in

import (
	"context"

	"uxlab/internal/modules/report/dto"
)

type Usecase interface {
	Generate(ctx context.Context) (dto.ReportOutput, error)
}
