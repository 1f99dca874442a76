package usecase

import (
	"context"

	"uxlab/internal/modules/session/domain"
	sessiondto "uxlab/internal/modules/session/dto"
	sessionin "uxlab/internal/modules/session/port/in"
	"uxlab/internal/modules/session/service"
)

// Interactor drives one explicit TimerSession. The session object is
// created in bootstrap and shared by every handler of the run.
type Interactor struct {
	svc     *service.TimerService
	session *domain.TimerSession
}

func NewInteractor(svc *service.TimerService, session *domain.TimerSession) sessionin.Usecase {
	return &Interactor{svc: svc, session: session}
}

func (i *Interactor) StartTimer(_ context.Context) (sessiondto.TimerStatusOutput, error) {
	i.svc.Start(i.session)
	return i.status(), nil
}

func (i *Interactor) StopTimer(_ context.Context) (sessiondto.TimerStatusOutput, error) {
	i.svc.Stop(i.session)
	return i.status(), nil
}

func (i *Interactor) ConsumeDuration(_ context.Context) (sessiondto.DurationOutput, error) {
	duration, err := i.svc.Consume(i.session)
	if err != nil {
		return sessiondto.DurationOutput{}, err
	}
	return sessiondto.DurationOutput{Seconds: duration.Seconds()}, nil
}

func (i *Interactor) Status(_ context.Context) (sessiondto.TimerStatusOutput, error) {
	return i.status(), nil
}

func (i *Interactor) status() sessiondto.TimerStatusOutput {
	return sessiondto.TimerStatusOutput{
		SessionID:      i.session.ID,
		Running:        i.session.Running,
		StartedAt:      i.session.StartedAt,
		ElapsedSeconds: i.svc.Elapsed(i.session).Seconds(),
		HasDuration:    i.session.HasDuration,
		LastSeconds:    i.session.LastDuration.Seconds(),
	}
}
