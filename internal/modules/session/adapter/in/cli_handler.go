package in

import (
	"context"

	sessiondto "uxlab/internal/modules/session/dto"
	sessionin "uxlab/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) StartTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error) {
	return h.usecase.StartTimer(ctx)
}

func (h CLIHandler) StopTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error) {
	return h.usecase.StopTimer(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.TimerStatusOutput, error) {
	return h.usecase.Status(ctx)
}
