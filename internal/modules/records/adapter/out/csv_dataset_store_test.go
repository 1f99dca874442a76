package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	recordsout "uxlab/internal/modules/records/adapter/out"
	"uxlab/internal/modules/records/domain"
	apperrors "uxlab/internal/platform/errors"
)

func taskRecord(stamp, name, success string, duration domain.Value, notes string) domain.Record {
	return domain.Record{Fields: []domain.Field{
		{Name: domain.TimestampField, Value: domain.String(stamp)},
		{Name: "task_name", Value: domain.String(name)},
		{Name: "success", Value: domain.String(success)},
		{Name: "duration_seconds", Value: duration},
		{Name: "notes", Value: domain.String(notes)},
	}}
}

func TestAppendCreatesFileAndRoundTripsTypedValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := recordsout.NewCSVDatasetStore(dir)

	first := taskRecord("2026-08-20 14:03:10", "Task 1: Example Task", "Yes", domain.Float(42.5), "went smoothly")
	seq, err := store.Append(context.Background(), domain.DatasetTask, first)
	if err != nil {
		t.Fatalf("first append: %v", err)
	}
	if seq != 1 {
		t.Fatalf("expected seq 1, got %d", seq)
	}

	second := taskRecord("2026-08-20 14:11:42", "Task 1: Example Task", "Partial", domain.Empty(), "hesitated on step two,\nthen recovered")
	if seq, err = store.Append(context.Background(), domain.DatasetTask, second); err != nil {
		t.Fatalf("second append: %v", err)
	}
	if seq != 2 {
		t.Fatalf("expected seq 2, got %d", seq)
	}

	if _, err := os.Stat(filepath.Join(dir, "task_data.csv")); err != nil {
		t.Fatalf("csv file should exist: %v", err)
	}
	sidecar, err := os.ReadFile(filepath.Join(dir, "task_data.schema.json"))
	if err != nil {
		t.Fatalf("schema sidecar should exist: %v", err)
	}
	if !strings.Contains(string(sidecar), "duration_seconds") {
		t.Fatalf("sidecar missing column metadata: %s", sidecar)
	}

	records, err := store.Load(context.Background(), domain.DatasetTask)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	duration, _ := records[0].Lookup("duration_seconds")
	if duration.Kind() != domain.KindFloat {
		t.Fatalf("duration should load as float, got %v", duration.Kind())
	}
	if got := duration.Encode(); got != "42.5" {
		t.Fatalf("unexpected duration cell %q", got)
	}
	emptyDuration, _ := records[1].Lookup("duration_seconds")
	if emptyDuration.Kind() != domain.KindEmpty {
		t.Fatalf("missing duration should load as empty, got %v", emptyDuration.Kind())
	}
	notes, _ := records[1].Lookup("notes")
	if got := notes.Encode(); got != "hesitated on step two,\nthen recovered" {
		t.Fatalf("multiline notes did not survive the round trip: %q", got)
	}
}

func TestLoadOfUnwrittenDatasetIsEmpty(t *testing.T) {
	t.Parallel()
	store := recordsout.NewCSVDatasetStore(t.TempDir())
	records, err := store.Load(context.Background(), domain.DatasetExit)
	if err != nil {
		t.Fatalf("load should not fail for a missing file: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestAppendRejectsSchemaDivergence(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := recordsout.NewCSVDatasetStore(dir)

	base := domain.Record{Fields: []domain.Field{
		{Name: domain.TimestampField, Value: domain.String("2026-08-20 15:00:00")},
		{Name: "satisfaction", Value: domain.Int(4)},
		{Name: "difficulty", Value: domain.Int(2)},
		{Name: "open_feedback", Value: domain.String("fine")},
	}}
	if _, err := store.Append(context.Background(), domain.DatasetExit, base); err != nil {
		t.Fatalf("first append: %v", err)
	}

	divergent := domain.Record{Fields: []domain.Field{
		{Name: domain.TimestampField, Value: domain.String("2026-08-20 15:05:00")},
		{Name: "satisfaction", Value: domain.Int(5)},
		{Name: "open_feedback", Value: domain.String("dropped a column")},
	}}
	_, err := store.Append(context.Background(), domain.DatasetExit, divergent)
	if !errors.Is(err, apperrors.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}

	reordered := domain.Record{Fields: []domain.Field{
		{Name: domain.TimestampField, Value: domain.String("2026-08-20 15:06:00")},
		{Name: "difficulty", Value: domain.Int(1)},
		{Name: "satisfaction", Value: domain.Int(5)},
		{Name: "open_feedback", Value: domain.String("reordered columns")},
	}}
	if _, err := store.Append(context.Background(), domain.DatasetExit, reordered); !errors.Is(err, apperrors.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch for reordered columns, got %v", err)
	}

	records, err := store.Load(context.Background(), domain.DatasetExit)
	if err != nil {
		t.Fatalf("load after rejections: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("rejected appends must not write rows, got %d", len(records))
	}
}

func TestSchemaRecoveredFromLegacyHeaderOnlyFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	legacy := "timestamp,consent_given\n2026-08-19 09:30:00,true\n"
	if err := os.WriteFile(filepath.Join(dir, "consent_data.csv"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("seed legacy file: %v", err)
	}

	store := recordsout.NewCSVDatasetStore(dir)
	record := domain.Record{Fields: []domain.Field{
		{Name: domain.TimestampField, Value: domain.String("2026-08-20 10:00:00")},
		{Name: "consent_given", Value: domain.Bool(true)},
	}}
	seq, err := store.Append(context.Background(), domain.DatasetConsent, record)
	if err != nil {
		t.Fatalf("append to legacy dataset: %v", err)
	}
	if seq != 2 {
		t.Fatalf("expected seq 2 after legacy row, got %d", seq)
	}
	if _, err := os.Stat(filepath.Join(dir, "consent_data.schema.json")); err != nil {
		t.Fatalf("sidecar should be recovered from the header: %v", err)
	}

	divergent := domain.Record{Fields: []domain.Field{
		{Name: domain.TimestampField, Value: domain.String("2026-08-20 10:05:00")},
		{Name: "agreed", Value: domain.Bool(true)},
	}}
	if _, err := store.Append(context.Background(), domain.DatasetConsent, divergent); !errors.Is(err, apperrors.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch against recovered header, got %v", err)
	}
}
