package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	recout "uxlab/internal/modules/records/adapter/out"
	recordsin "uxlab/internal/modules/records/port/in"
	recservice "uxlab/internal/modules/records/service"
	recusecase "uxlab/internal/modules/records/usecase"
	sessionin "uxlab/internal/modules/session/port/in"
	sessionservice "uxlab/internal/modules/session/service"
	sessionusecase "uxlab/internal/modules/session/usecase"
	"uxlab/internal/modules/stages/dto"
	stagesin "uxlab/internal/modules/stages/port/in"
	"uxlab/internal/modules/stages/service"
	"uxlab/internal/modules/stages/usecase"
	studyout "uxlab/internal/modules/study/adapter/out"
	studyservice "uxlab/internal/modules/study/service"
	studyusecase "uxlab/internal/modules/study/usecase"
	apperrors "uxlab/internal/platform/errors"
	"uxlab/internal/platform/tx"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{}

func (fakeID) New() string { return "run-1" }

type harness struct {
	stages  stagesin.Usecase
	timer   sessionin.Usecase
	records recordsin.Usecase
	dataDir string
}

// newHarness wires the real CSV store, sqlite index, timer, and default
// study plan under a temp dir; only the clock is scripted.
func newHarness(t *testing.T, clk *fakeClock) harness {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")

	store := recout.NewCSVDatasetStore(dataDir)
	index, err := recout.NewSQLiteSubmissionIndex(filepath.Join(root, ".uxlab", "index.db"))
	if err != nil {
		t.Fatalf("open submission index: %v", err)
	}
	records := recusecase.NewInteractor(recservice.NewRecordService(store, index, tx.NoopManager{}, zap.NewNop()))

	timerSvc := sessionservice.NewTimerService(clk, fakeID{})
	timer := sessionusecase.NewInteractor(timerSvc, timerSvc.NewSession())

	planStore := studyout.NewYAMLPlanStore(filepath.Join(root, "study.yaml"))
	studySvc := studyservice.NewStudyService(planStore, studyout.NewMarkdownDocReader(), studyout.NewPDFDocReader(), filepath.Join(root, "docs"))
	study := studyusecase.NewInteractor(studySvc)

	stages := usecase.NewInteractor(service.NewStageService(clk), records, timer, study)
	return harness{stages: stages, timer: timer, records: records, dataDir: dataDir}
}

func TestConsentRejectionPersistsNothing(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 20, 16, 15, 0, 0, time.Local)}}
	h := newHarness(t, clk)
	ctx := context.Background()

	if _, err := h.stages.SubmitConsent(ctx, dto.ConsentInput{}); !errors.Is(err, apperrors.ErrConsentNotGiven) {
		t.Fatalf("expected the consent sentinel, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.dataDir, "consent_data.csv")); !os.IsNotExist(err) {
		t.Fatalf("rejected consent must not create the dataset: %v", err)
	}

	out, err := h.stages.SubmitConsent(ctx, dto.ConsentInput{Agreed: true})
	if err != nil {
		t.Fatalf("submit consent: %v", err)
	}
	if out.Dataset != "consent" || out.Seq != 1 || out.SubmittedAt != "2026-08-20 16:15:00" {
		t.Fatalf("unexpected submission: %+v", out)
	}

	snapshot, err := h.records.Snapshot(ctx, "consent")
	if err != nil {
		t.Fatalf("snapshot consent: %v", err)
	}
	if len(snapshot.Rows) != 1 || snapshot.Rows[0][1] != "true" {
		t.Fatalf("unexpected consent rows: %+v", snapshot.Rows)
	}
}

func TestTaskMergesTheTimerDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 20, 16, 0, 0, 0, time.Local)
	stamp := time.Date(2026, 8, 20, 16, 20, 0, 0, time.Local)
	clk := &fakeClock{values: []time.Time{
		start,
		start,
		start.Add(42500 * time.Millisecond),
		stamp,
	}}
	h := newHarness(t, clk)
	ctx := context.Background()

	if _, err := h.timer.StartTimer(ctx); err != nil {
		t.Fatalf("start timer: %v", err)
	}
	status, err := h.timer.StopTimer(ctx)
	if err != nil {
		t.Fatalf("stop timer: %v", err)
	}
	if status.LastSeconds != 42.5 {
		t.Fatalf("recorded duration = %.2f, want 42.5", status.LastSeconds)
	}

	out, err := h.stages.SubmitTask(ctx, dto.TaskInput{
		TaskName: "Task 1: Example Task",
		Success:  "Yes",
		Notes:    "smooth run",
	})
	if err != nil {
		t.Fatalf("submit task: %v", err)
	}
	if out.SubmittedAt != "2026-08-20 16:20:00" {
		t.Fatalf("submitted at = %q", out.SubmittedAt)
	}

	snapshot, err := h.records.Snapshot(ctx, "task")
	if err != nil {
		t.Fatalf("snapshot task: %v", err)
	}
	row := snapshot.Rows[0]
	if row[1] != "Task 1: Example Task" || row[2] != "Yes" || row[3] != "42.5" || row[4] != "smooth run" {
		t.Fatalf("unexpected task row: %v", row)
	}

	// The duration was consumed; the next attempt has none to merge.
	if _, err := h.timer.ConsumeDuration(ctx); !errors.Is(err, apperrors.ErrNoDuration) {
		t.Fatalf("duration should be spent, got %v", err)
	}
}

func TestTaskWithoutTimerStoresTheEmptyCell(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 20, 16, 20, 0, 0, time.Local)}}
	h := newHarness(t, clk)
	ctx := context.Background()

	if _, err := h.stages.SubmitTask(ctx, dto.TaskInput{TaskName: "Task 1: Example Task", Success: "Partial"}); err != nil {
		t.Fatalf("submit task: %v", err)
	}
	out, err := h.stages.SubmitTask(ctx, dto.TaskInput{
		TaskName:        "Task 1: Example Task",
		Success:         "No",
		DurationSeconds: 12.25,
		DurationSet:     true,
	})
	if err != nil {
		t.Fatalf("submit task with explicit duration: %v", err)
	}
	if out.Seq != 2 {
		t.Fatalf("seq = %d, want 2", out.Seq)
	}

	snapshot, err := h.records.Snapshot(ctx, "task")
	if err != nil {
		t.Fatalf("snapshot task: %v", err)
	}
	if snapshot.Rows[0][3] != "" {
		t.Fatalf("untimed attempt should store an empty duration, got %q", snapshot.Rows[0][3])
	}
	if snapshot.Rows[1][3] != "12.25" {
		t.Fatalf("explicit duration = %q, want 12.25", snapshot.Rows[1][3])
	}
}

func TestTaskOutsideThePlanIsRejected(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 20, 16, 20, 0, 0, time.Local)}}
	h := newHarness(t, clk)

	_, err := h.stages.SubmitTask(context.Background(), dto.TaskInput{TaskName: "Task 99", Success: "Yes"})
	if err == nil || !strings.Contains(err.Error(), "not part of the study plan") {
		t.Fatalf("expected a plan rejection, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(h.dataDir, "task_data.csv")); !os.IsNotExist(statErr) {
		t.Fatalf("rejected task must not create the dataset: %v", statErr)
	}
}

func TestDemographicsAndExitSubmissions(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 20, 16, 25, 0, 0, time.Local)}}
	h := newHarness(t, clk)
	ctx := context.Background()

	if _, err := h.stages.SubmitDemographics(ctx, dto.DemographicsInput{Age: 9, Familiarity: "Not familiar"}); err == nil {
		t.Fatal("expected an age validation error")
	}
	if _, err := h.stages.SubmitDemographics(ctx, dto.DemographicsInput{
		Name:        "Ada",
		Age:         34,
		Occupation:  "Engineer",
		Familiarity: "Very familiar",
	}); err != nil {
		t.Fatalf("submit demographics: %v", err)
	}

	if _, err := h.stages.SubmitExit(ctx, dto.ExitInput{Satisfaction: 6, Difficulty: 2}); err == nil {
		t.Fatal("expected a scale validation error")
	}
	if _, err := h.stages.SubmitExit(ctx, dto.ExitInput{
		Satisfaction: 4,
		Difficulty:   2,
		Feedback:     "found the search quickly\nbut checkout was confusing",
	}); err != nil {
		t.Fatalf("submit exit: %v", err)
	}

	snapshot, err := h.records.Snapshot(ctx, "exit")
	if err != nil {
		t.Fatalf("snapshot exit: %v", err)
	}
	row := snapshot.Rows[0]
	if row[1] != "4" || row[2] != "2" || !strings.Contains(row[3], "\n") {
		t.Fatalf("unexpected exit row: %v", row)
	}
}
