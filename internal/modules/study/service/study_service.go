package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"uxlab/internal/modules/study/domain"
	studyout "uxlab/internal/modules/study/port/out"
	apperrors "uxlab/internal/platform/errors"
	"uxlab/internal/platform/slug"
)

type StudyService struct {
	store    studyout.PlanStore
	markdown studyout.DocumentReader
	pdf      studyout.DocumentReader
	docsDir  string
}

func NewStudyService(store studyout.PlanStore, markdown, pdf studyout.DocumentReader, docsDir string) *StudyService {
	return &StudyService{store: store, markdown: markdown, pdf: pdf, docsDir: docsDir}
}

func (s *StudyService) Plan(ctx context.Context) (domain.Plan, error) {
	plan, err := s.store.Load(ctx)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := plan.Validate(); err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

// ConsentDocument resolves the consent text: the plan's document when one
// is named, otherwise the inline summary.
func (s *StudyService) ConsentDocument(ctx context.Context) (domain.Document, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if plan.ConsentDoc == "" {
		return domain.Document{
			Title:  "Consent Form",
			Body:   plan.ConsentSummary,
			Format: domain.DocumentMarkdown,
		}, nil
	}
	return s.readDocument(ctx, plan.ConsentDoc)
}

// TaskInstructions looks for docs/tasks/<task-slug>.md, then .pdf, and
// finally falls back to the plan's inline description.
func (s *StudyService) TaskInstructions(ctx context.Context, taskName string) (domain.Document, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if !plan.HasTask(taskName) {
		return domain.Document{}, fmt.Errorf("%w: task %q is not in the study plan", apperrors.ErrNotFound, taskName)
	}
	base := filepath.Join("tasks", slug.Make(taskName))
	for _, candidate := range []string{base + ".md", base + ".pdf"} {
		doc, err := s.readDocument(ctx, candidate)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return domain.Document{}, err
		}
	}
	for _, task := range plan.Tasks {
		if task.Name == taskName {
			return domain.Document{
				Title:  task.Name,
				Body:   task.Description,
				Format: domain.DocumentMarkdown,
			}, nil
		}
	}
	return domain.Document{}, fmt.Errorf("%w: instructions for %q", apperrors.ErrNotFound, taskName)
}

func (s *StudyService) readDocument(ctx context.Context, rel string) (domain.Document, error) {
	path := filepath.Join(s.docsDir, rel)
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".md", ".markdown", ".txt":
		return s.markdown.Read(ctx, path)
	case ".pdf":
		return s.pdf.Read(ctx, path)
	default:
		return domain.Document{}, fmt.Errorf("unsupported document type %q", filepath.Ext(rel))
	}
}
