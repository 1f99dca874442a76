package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"uxlab/internal/modules/study/domain"
)

// YAMLPlanStore loads the study plan from a study.yaml file. A missing
// file yields the built-in default plan, and any field left blank in the
// file keeps its default, so a plan file only has to name what it changes.
type YAMLPlanStore struct {
	path string
}

func NewYAMLPlanStore(path string) *YAMLPlanStore {
	return &YAMLPlanStore{path: path}
}

type planFile struct {
	Title          string         `yaml:"title"`
	Intro          string         `yaml:"intro"`
	ConsentSummary string         `yaml:"consent_summary"`
	ConsentDoc     string         `yaml:"consent_doc"`
	Tasks          []taskFileSpec `yaml:"tasks"`
	Familiarity    []string       `yaml:"familiarity_options"`
	Success        []string       `yaml:"success_options"`
	ScaleMin       int            `yaml:"scale_min"`
	ScaleMax       int            `yaml:"scale_max"`
}

type taskFileSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func (s *YAMLPlanStore) Load(_ context.Context) (domain.Plan, error) {
	plan := domain.DefaultPlan()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return plan, nil
		}
		return domain.Plan{}, fmt.Errorf("read plan file: %w", err)
	}

	var file planFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Plan{}, fmt.Errorf("parse plan file: %w", err)
	}

	if file.Title != "" {
		plan.Title = file.Title
	}
	if file.Intro != "" {
		plan.Intro = file.Intro
	}
	if file.ConsentSummary != "" {
		plan.ConsentSummary = file.ConsentSummary
	}
	if file.ConsentDoc != "" {
		plan.ConsentDoc = file.ConsentDoc
	}
	if len(file.Tasks) > 0 {
		tasks := make([]domain.TaskSpec, 0, len(file.Tasks))
		for _, t := range file.Tasks {
			tasks = append(tasks, domain.TaskSpec{Name: t.Name, Description: t.Description})
		}
		plan.Tasks = tasks
	}
	if len(file.Familiarity) > 0 {
		plan.Familiarity = file.Familiarity
	}
	if len(file.Success) > 0 {
		plan.Success = file.Success
	}
	if file.ScaleMin != 0 {
		plan.ScaleMin = file.ScaleMin
	}
	if file.ScaleMax != 0 {
		plan.ScaleMax = file.ScaleMax
	}
	return plan, nil
}
