package usecase

import (
	"context"

	"uxlab/internal/modules/study/domain"
	"uxlab/internal/modules/study/dto"
	studyin "uxlab/internal/modules/study/port/in"
	"uxlab/internal/modules/study/service"
)

type Interactor struct {
	svc *service.StudyService
}

func NewInteractor(svc *service.StudyService) studyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetPlan(ctx context.Context) (dto.PlanOutput, error) {
	plan, err := i.svc.Plan(ctx)
	if err != nil {
		return dto.PlanOutput{}, err
	}
	tasks := make([]dto.TaskOutput, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		tasks = append(tasks, dto.TaskOutput{Name: task.Name, Description: task.Description})
	}
	return dto.PlanOutput{
		Title:          plan.Title,
		Intro:          plan.Intro,
		ConsentSummary: plan.ConsentSummary,
		Tasks:          tasks,
		Familiarity:    plan.Familiarity,
		Success:        plan.Success,
		ScaleMin:       plan.ScaleMin,
		ScaleMax:       plan.ScaleMax,
	}, nil
}

func (i *Interactor) ConsentDocument(ctx context.Context) (dto.DocumentOutput, error) {
	doc, err := i.svc.ConsentDocument(ctx)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toDocumentOutput(doc), nil
}

func (i *Interactor) TaskInstructions(ctx context.Context, taskName string) (dto.DocumentOutput, error) {
	doc, err := i.svc.TaskInstructions(ctx, taskName)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toDocumentOutput(doc), nil
}

func toDocumentOutput(doc domain.Document) dto.DocumentOutput {
	return dto.DocumentOutput{Title: doc.Title, Body: doc.Body, Format: string(doc.Format)}
}
