package service

import (
	recdomain "uxlab/internal/modules/records/domain"
	"uxlab/internal/modules/stages/domain"
	"uxlab/internal/platform/clock"
)

// StageService validates stage submissions and assembles them into
// timestamped records.
type StageService struct {
	clock clock.Clock
}

func NewStageService(c clock.Clock) *StageService {
	return &StageService{clock: c}
}

func (s *StageService) ConsentRecord(consent domain.Consent) (recdomain.Record, error) {
	if err := consent.Validate(); err != nil {
		return recdomain.Record{}, err
	}
	return consent.Record(s.clock.Now()), nil
}

func (s *StageService) DemographicsRecord(demographics domain.Demographics, rules domain.Rules) (recdomain.Record, error) {
	if err := demographics.Validate(rules); err != nil {
		return recdomain.Record{}, err
	}
	return demographics.Record(s.clock.Now()), nil
}

func (s *StageService) TaskRecord(result domain.TaskResult, rules domain.Rules) (recdomain.Record, error) {
	if err := result.Validate(rules); err != nil {
		return recdomain.Record{}, err
	}
	return result.Record(s.clock.Now()), nil
}

func (s *StageService) ExitRecord(survey domain.ExitSurvey, rules domain.Rules) (recdomain.Record, error) {
	if err := survey.Validate(rules); err != nil {
		return recdomain.Record{}, err
	}
	return survey.Record(s.clock.Now()), nil
}
