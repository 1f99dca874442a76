package domain

import (
	"fmt"
	"strings"
)

const (
	DocumentMarkdown = "markdown"
	DocumentPDF      = "pdf"
)

// Plan is the study definition: what the participant reads, which tasks
// they are asked to perform, and the answer vocabularies of the forms. A
// workspace without a plan file runs the built-in default study.
type Plan struct {
	Title          string
	Intro          string
	ConsentSummary string
	ConsentDoc     string
	Tasks          []TaskSpec
	Familiarity    []string
	Success        []string
	ScaleMin       int
	ScaleMax       int
}

type TaskSpec struct {
	Name        string
	Description string
}

func DefaultPlan() Plan {
	return Plan{
		Title: "Usability Testing Tool",
		Intro: "Welcome to the usability testing session. You will:\n\n" +
			"1. Provide consent\n" +
			"2. Complete a demographic questionnaire\n" +
			"3. Perform a usability task\n" +
			"4. Submit feedback through an exit questionnaire\n" +
			"5. View an aggregated report\n",
		ConsentSummary: "By participating in this usability test, you agree to the " +
			"collection and use of your data for educational and analytical " +
			"purposes. All data will remain confidential.",
		Tasks: []TaskSpec{
			{
				Name:        "Task 1: Example Task",
				Description: "Perform the example task using the interface provided.",
			},
		},
		Familiarity: []string{"Not familiar", "Somewhat familiar", "Very familiar"},
		Success:     []string{"Yes", "No", "Partial"},
		ScaleMin:    1,
		ScaleMax:    5,
	}
}

func (p Plan) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("study title is required")
	}
	if len(p.Tasks) == 0 {
		return fmt.Errorf("at least one task is required")
	}
	seen := make(map[string]struct{}, len(p.Tasks))
	for _, task := range p.Tasks {
		name := strings.TrimSpace(task.Name)
		if name == "" {
			return fmt.Errorf("task name is required")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate task %q", name)
		}
		seen[name] = struct{}{}
	}
	if len(p.Familiarity) == 0 || len(p.Success) == 0 {
		return fmt.Errorf("familiarity and success options are required")
	}
	if p.ScaleMin >= p.ScaleMax {
		return fmt.Errorf("scale bounds %d..%d are inverted", p.ScaleMin, p.ScaleMax)
	}
	return nil
}

func (p Plan) TaskNames() []string {
	out := make([]string, 0, len(p.Tasks))
	for _, task := range p.Tasks {
		out = append(out, task.Name)
	}
	return out
}

func (p Plan) HasTask(name string) bool {
	for _, task := range p.Tasks {
		if task.Name == name {
			return true
		}
	}
	return false
}

// Document is one study document shown to the participant.
type Document struct {
	Title  string
	Body   string
	Format string
}
