package usecase

import (
	"context"
	"errors"
	"fmt"

	recdomain "uxlab/internal/modules/records/domain"
	recdto "uxlab/internal/modules/records/dto"
	recordsin "uxlab/internal/modules/records/port/in"
	sessionin "uxlab/internal/modules/session/port/in"
	"uxlab/internal/modules/stages/domain"
	"uxlab/internal/modules/stages/dto"
	stagesin "uxlab/internal/modules/stages/port/in"
	"uxlab/internal/modules/stages/service"
	studydto "uxlab/internal/modules/study/dto"
	studyin "uxlab/internal/modules/study/port/in"
	apperrors "uxlab/internal/platform/errors"
)

type Interactor struct {
	svc     *service.StageService
	records recordsin.Usecase
	timer   sessionin.Usecase
	study   studyin.Usecase
}

func NewInteractor(svc *service.StageService, records recordsin.Usecase, timer sessionin.Usecase, study studyin.Usecase) stagesin.Usecase {
	return &Interactor{svc: svc, records: records, timer: timer, study: study}
}

func (i *Interactor) SubmitConsent(ctx context.Context, input dto.ConsentInput) (dto.SubmissionOutput, error) {
	record, err := i.svc.ConsentRecord(domain.Consent{Agreed: input.Agreed})
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	return i.append(ctx, recdomain.DatasetConsent, record)
}

func (i *Interactor) SubmitDemographics(ctx context.Context, input dto.DemographicsInput) (dto.SubmissionOutput, error) {
	rules, _, err := i.planRules(ctx)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	record, err := i.svc.DemographicsRecord(domain.Demographics{
		Name:        input.Name,
		Age:         input.Age,
		Occupation:  input.Occupation,
		Familiarity: input.Familiarity,
	}, rules)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	return i.append(ctx, recdomain.DatasetDemographic, record)
}

// SubmitTask merges the timer's consumed duration into the record unless
// the caller supplied one explicitly. A task attempted without any timer
// run is stored with an empty duration cell.
func (i *Interactor) SubmitTask(ctx context.Context, input dto.TaskInput) (dto.SubmissionOutput, error) {
	rules, plan, err := i.planRules(ctx)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	if !planHasTask(plan, input.TaskName) {
		return dto.SubmissionOutput{}, fmt.Errorf("%w: task %q is not part of the study plan", apperrors.ErrInvalidInput, input.TaskName)
	}

	duration := recdomain.Empty()
	if input.DurationSet {
		duration = recdomain.Float(input.DurationSeconds)
	} else {
		consumed, err := i.timer.ConsumeDuration(ctx)
		switch {
		case err == nil:
			duration = recdomain.Float(consumed.Seconds)
		case errors.Is(err, apperrors.ErrNoDuration):
		default:
			return dto.SubmissionOutput{}, err
		}
	}

	record, err := i.svc.TaskRecord(domain.TaskResult{
		TaskName: input.TaskName,
		Success:  input.Success,
		Duration: duration,
		Notes:    input.Notes,
	}, rules)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	return i.append(ctx, recdomain.DatasetTask, record)
}

func (i *Interactor) SubmitExit(ctx context.Context, input dto.ExitInput) (dto.SubmissionOutput, error) {
	rules, _, err := i.planRules(ctx)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	record, err := i.svc.ExitRecord(domain.ExitSurvey{
		Satisfaction: input.Satisfaction,
		Difficulty:   input.Difficulty,
		Feedback:     input.Feedback,
	}, rules)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	return i.append(ctx, recdomain.DatasetExit, record)
}

func (i *Interactor) planRules(ctx context.Context) (domain.Rules, studydto.PlanOutput, error) {
	plan, err := i.study.GetPlan(ctx)
	if err != nil {
		return domain.Rules{}, studydto.PlanOutput{}, fmt.Errorf("load study plan: %w", err)
	}
	rules := domain.Rules{
		Familiarity: plan.Familiarity,
		Success:     plan.Success,
		ScaleMin:    plan.ScaleMin,
		ScaleMax:    plan.ScaleMax,
	}
	return rules, plan, nil
}

func planHasTask(plan studydto.PlanOutput, taskName string) bool {
	for _, task := range plan.Tasks {
		if task.Name == taskName {
			return true
		}
	}
	return false
}

func (i *Interactor) append(ctx context.Context, dataset recdomain.Dataset, record recdomain.Record) (dto.SubmissionOutput, error) {
	out, err := i.records.Append(ctx, dataset, record)
	if err != nil {
		return dto.SubmissionOutput{}, err
	}
	return toSubmissionOutput(out), nil
}

func toSubmissionOutput(out recdto.AppendOutput) dto.SubmissionOutput {
	return dto.SubmissionOutput{Dataset: out.Dataset, Seq: out.Seq, SubmittedAt: out.SubmittedAt}
}
