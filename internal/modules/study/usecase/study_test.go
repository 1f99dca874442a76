package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	out "uxlab/internal/modules/study/adapter/out"
	"uxlab/internal/modules/study/domain"
	studyin "uxlab/internal/modules/study/port/in"
	"uxlab/internal/modules/study/service"
	"uxlab/internal/modules/study/usecase"
	apperrors "uxlab/internal/platform/errors"
)

func newStudy(t *testing.T, planYAML string, docs map[string]string) studyin.Usecase {
	t.Helper()
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")
	if planYAML != "" {
		if err := os.WriteFile(filepath.Join(root, "study.yaml"), []byte(planYAML), 0o644); err != nil {
			t.Fatalf("write plan file: %v", err)
		}
	}
	for rel, body := range docs {
		path := filepath.Join(docsDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create docs dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write doc %s: %v", rel, err)
		}
	}
	store := out.NewYAMLPlanStore(filepath.Join(root, "study.yaml"))
	svc := service.NewStudyService(store, out.NewMarkdownDocReader(), out.NewPDFDocReader(), docsDir)
	return usecase.NewInteractor(svc)
}

func TestDefaultPlanAndInlineConsentFallback(t *testing.T) {
	t.Parallel()

	uc := newStudy(t, "", nil)
	ctx := context.Background()

	plan, err := uc.GetPlan(ctx)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if plan.Title != "Usability Testing Tool" {
		t.Fatalf("title = %q, want the default title", plan.Title)
	}
	if len(plan.Tasks) != 1 {
		t.Fatalf("tasks = %+v, want the single default task", plan.Tasks)
	}

	doc, err := uc.ConsentDocument(ctx)
	if err != nil {
		t.Fatalf("consent document: %v", err)
	}
	if doc.Body != domain.DefaultPlan().ConsentSummary {
		t.Fatalf("consent body = %q, want the inline summary", doc.Body)
	}
	if doc.Format != string(domain.DocumentMarkdown) {
		t.Fatalf("consent format = %q, want markdown", doc.Format)
	}
}

func TestConsentDocumentLoadedFromNamedFile(t *testing.T) {
	t.Parallel()

	plan := "consent_doc: consent.md\n"
	docs := map[string]string{
		"consent.md": "---\ntitle: Informed Consent\n---\nYou may withdraw at any time.\n",
	}
	uc := newStudy(t, plan, docs)

	doc, err := uc.ConsentDocument(context.Background())
	if err != nil {
		t.Fatalf("consent document: %v", err)
	}
	if doc.Title != "Informed Consent" {
		t.Fatalf("title = %q, want the frontmatter title", doc.Title)
	}
	if doc.Body != "You may withdraw at any time.\n" {
		t.Fatalf("body = %q, want the file body without frontmatter", doc.Body)
	}
}

func TestTaskInstructionsPreferTheMarkdownFile(t *testing.T) {
	t.Parallel()

	plan := "tasks:\n  - name: Find a product\n    description: Inline fallback text.\n"
	docs := map[string]string{
		"tasks/find-a-product.md": "Use the search bar to locate a laptop.\n",
	}
	uc := newStudy(t, plan, docs)

	doc, err := uc.TaskInstructions(context.Background(), "Find a product")
	if err != nil {
		t.Fatalf("task instructions: %v", err)
	}
	if doc.Body != "Use the search bar to locate a laptop.\n" {
		t.Fatalf("body = %q, want the file body", doc.Body)
	}
	if doc.Title != "find-a-product" {
		t.Fatalf("title = %q, want the filename fallback", doc.Title)
	}
}

func TestTaskInstructionsFallBackToInlineDescription(t *testing.T) {
	t.Parallel()

	uc := newStudy(t, "", nil)

	doc, err := uc.TaskInstructions(context.Background(), "Task 1: Example Task")
	if err != nil {
		t.Fatalf("task instructions: %v", err)
	}
	if doc.Body != "Perform the example task using the interface provided." {
		t.Fatalf("body = %q, want the inline description", doc.Body)
	}
	if doc.Title != "Task 1: Example Task" {
		t.Fatalf("title = %q, want the task name", doc.Title)
	}
}

func TestInstructionsForAnUnknownTaskFail(t *testing.T) {
	t.Parallel()

	uc := newStudy(t, "", nil)

	if _, err := uc.TaskInstructions(context.Background(), "Task 99"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected a not-found error for a task the plan does not name, got %v", err)
	}
}
