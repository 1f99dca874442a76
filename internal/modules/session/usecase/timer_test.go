package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sessionin "uxlab/internal/modules/session/port/in"
	"uxlab/internal/modules/session/service"
	"uxlab/internal/modules/session/usecase"
	apperrors "uxlab/internal/platform/errors"
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

func newTimer(clk *fakeClock) sessionin.Usecase {
	svc := service.NewTimerService(clk, fakeID{})
	return usecase.NewInteractor(svc, svc.NewSession())
}

func TestStartStopAndConsumeDurationOnce(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 20, 14, 0, 0, 0, time.Local)
	clk := &fakeClock{values: []time.Time{
		start,
		start.Add(5 * time.Second),
		start.Add(42500 * time.Millisecond),
	}}
	uc := newTimer(clk)

	status, err := uc.StartTimer(context.Background())
	if err != nil {
		t.Fatalf("start timer: %v", err)
	}
	if !status.Running || status.SessionID != "run-1" {
		t.Fatalf("unexpected status after start: %+v", status)
	}
	if status.ElapsedSeconds != 5 {
		t.Fatalf("expected 5s elapsed, got %.2f", status.ElapsedSeconds)
	}

	status, err = uc.StopTimer(context.Background())
	if err != nil {
		t.Fatalf("stop timer: %v", err)
	}
	if status.Running {
		t.Fatalf("timer should be idle after stop")
	}
	if !status.HasDuration || status.LastSeconds != 42.5 {
		t.Fatalf("expected recorded 42.5s, got %+v", status)
	}

	duration, err := uc.ConsumeDuration(context.Background())
	if err != nil {
		t.Fatalf("consume duration: %v", err)
	}
	if duration.Seconds != 42.5 {
		t.Fatalf("expected 42.5s, got %.2f", duration.Seconds)
	}

	if _, err := uc.ConsumeDuration(context.Background()); !errors.Is(err, apperrors.ErrNoDuration) {
		t.Fatalf("second consume should report no duration, got %v", err)
	}
	status, err = uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.HasDuration {
		t.Fatalf("consumed duration should be cleared")
	}
}

func TestStopWhileIdleIsANoOp(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 20, 14, 0, 0, 0, time.Local)}}
	uc := newTimer(clk)

	status, err := uc.StopTimer(context.Background())
	if err != nil {
		t.Fatalf("stop on idle timer must not fail: %v", err)
	}
	if status.Running || status.HasDuration {
		t.Fatalf("idle stop must not record anything: %+v", status)
	}
	if _, err := uc.ConsumeDuration(context.Background()); !errors.Is(err, apperrors.ErrNoDuration) {
		t.Fatalf("expected no duration after idle stop, got %v", err)
	}
}

func TestRestartOverwritesTheRunningStart(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 20, 14, 0, 0, 0, time.Local)
	clk := &fakeClock{values: []time.Time{
		start,
		start.Add(1 * time.Second),
		start.Add(10 * time.Second),
		start.Add(11 * time.Second),
		start.Add(25 * time.Second),
	}}
	uc := newTimer(clk)

	if _, err := uc.StartTimer(context.Background()); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := uc.StartTimer(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	status, err := uc.StopTimer(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if status.LastSeconds != 15 {
		t.Fatalf("restart should measure from the second start, got %.2f", status.LastSeconds)
	}
}

func TestBackwardsClockClampsToZero(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 20, 14, 0, 0, 0, time.Local)
	clk := &fakeClock{values: []time.Time{
		start,
		start,
		start.Add(-30 * time.Second),
	}}
	uc := newTimer(clk)

	if _, err := uc.StartTimer(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	status, err := uc.StopTimer(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !status.HasDuration || status.LastSeconds != 0 {
		t.Fatalf("expected clamped zero duration, got %+v", status)
	}
	duration, err := uc.ConsumeDuration(context.Background())
	if err != nil {
		t.Fatalf("consume clamped duration: %v", err)
	}
	if duration.Seconds != 0 {
		t.Fatalf("expected zero seconds, got %.2f", duration.Seconds)
	}
}
