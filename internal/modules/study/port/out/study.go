package out

import (
	"context"

	"uxlab/internal/modules/study/domain"
)

type PlanStore interface {
	Load(ctx context.Context) (domain.Plan, error)
}

type DocumentReader interface {
	Read(ctx context.Context, path string) (domain.Document, error)
}
