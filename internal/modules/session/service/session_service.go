package service

import (
	"time"

	"uxlab/internal/modules/session/domain"
	"uxlab/internal/platform/clock"
	apperrors "uxlab/internal/platform/errors"
	"uxlab/internal/platform/id"
)

// TimerService runs the two-state task timer. Elapsed time is computed by
// subtracting clock instants, so with the system clock it rides the
// monotonic reading and ignores wall-clock jumps.
type TimerService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewTimerService(clock clock.Clock, idGen id.Generator) *TimerService {
	return &TimerService{clock: clock, idGen: idGen}
}

func (s *TimerService) NewSession() *domain.TimerSession {
	return &domain.TimerSession{ID: s.idGen.New()}
}

// Start begins timing. Starting while already running restarts from now.
func (s *TimerService) Start(session *domain.TimerSession) time.Time {
	session.StartedAt = s.clock.Now()
	session.Running = true
	return session.StartedAt
}

// Stop ends timing and records the elapsed duration. Stopping an idle
// timer changes nothing and reports false.
func (s *TimerService) Stop(session *domain.TimerSession) (time.Duration, bool) {
	if !session.Running {
		return 0, false
	}
	duration := s.clock.Now().Sub(session.StartedAt)
	if duration < 0 {
		duration = 0
	}
	session.Running = false
	session.StartedAt = time.Time{}
	session.LastDuration = duration
	session.HasDuration = true
	return duration, true
}

// Consume hands out the recorded duration exactly once and clears it.
func (s *TimerService) Consume(session *domain.TimerSession) (time.Duration, error) {
	if !session.HasDuration {
		return 0, apperrors.ErrNoDuration
	}
	duration := session.LastDuration
	session.LastDuration = 0
	session.HasDuration = false
	return duration, nil
}

// Elapsed reports how long the timer has been running, zero when idle.
func (s *TimerService) Elapsed(session *domain.TimerSession) time.Duration {
	if !session.Running {
		return 0
	}
	elapsed := s.clock.Now().Sub(session.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}
