package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	out "uxlab/internal/modules/study/adapter/out"
	"uxlab/internal/modules/study/domain"
)

func TestMissingPlanFileYieldsDefaultPlan(t *testing.T) {
	t.Parallel()

	store := out.NewYAMLPlanStore(filepath.Join(t.TempDir(), "study.yaml"))
	plan, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}

	want := domain.DefaultPlan()
	if plan.Title != want.Title {
		t.Fatalf("title = %q, want %q", plan.Title, want.Title)
	}
	if len(plan.Tasks) != 1 || plan.Tasks[0].Name != "Task 1: Example Task" {
		t.Fatalf("tasks = %+v, want the default example task", plan.Tasks)
	}
	if plan.ConsentSummary == "" {
		t.Fatal("default plan has no consent summary")
	}
}

func TestPlanFileOverridesOnlyNamedFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "study.yaml")
	raw := "title: Checkout Flow Study\ntasks:\n  - name: Find a product\n    description: Use the search bar to locate a laptop.\n  - name: Complete checkout\n    description: Purchase the laptop with the test card.\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write plan file: %v", err)
	}

	store := out.NewYAMLPlanStore(path)
	plan, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}

	if plan.Title != "Checkout Flow Study" {
		t.Fatalf("title = %q, want the file's title", plan.Title)
	}
	if got := plan.TaskNames(); len(got) != 2 || got[0] != "Find a product" || got[1] != "Complete checkout" {
		t.Fatalf("task names = %v, want the file's two tasks", got)
	}
	if plan.ConsentSummary != domain.DefaultPlan().ConsentSummary {
		t.Fatalf("consent summary = %q, want the default kept", plan.ConsentSummary)
	}
}

func TestMalformedPlanFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "study.yaml")
	if err := os.WriteFile(path, []byte("title: [unclosed"), 0o644); err != nil {
		t.Fatalf("write plan file: %v", err)
	}

	store := out.NewYAMLPlanStore(path)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected a parse error for malformed yaml")
	}
}
