package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	recdomain "uxlab/internal/modules/records/domain"
	"uxlab/internal/modules/stages/domain"
	apperrors "uxlab/internal/platform/errors"
)

var submitted = time.Date(2026, 8, 20, 16, 15, 0, 0, time.Local)

func TestConsentMustBeAffirmed(t *testing.T) {
	t.Parallel()

	if err := (domain.Consent{}).Validate(); !errors.Is(err, apperrors.ErrConsentNotGiven) {
		t.Fatalf("expected the consent sentinel, got %v", err)
	}

	consent := domain.Consent{Agreed: true}
	if err := consent.Validate(); err != nil {
		t.Fatalf("affirmed consent must validate: %v", err)
	}
	record := consent.Record(submitted)
	if got := strings.Join(record.Names(), ","); got != "timestamp,consent_given" {
		t.Fatalf("columns = %s", got)
	}
	if v, _ := record.Lookup("consent_given"); v != recdomain.Bool(true) {
		t.Fatalf("consent_given = %q", v.Encode())
	}
	if v, _ := record.Lookup(recdomain.TimestampField); v.Encode() != "2026-08-20 16:15:00" {
		t.Fatalf("timestamp = %q", v.Encode())
	}
}

func TestDemographicsValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      domain.Demographics
		wantErr bool
	}{
		{"age below range", domain.Demographics{Age: 9, Familiarity: "Not familiar"}, true},
		{"age above range", domain.Demographics{Age: 101, Familiarity: "Not familiar"}, true},
		{"unknown familiarity", domain.Demographics{Age: 30, Familiarity: "Expert"}, true},
		{"age at lower bound", domain.Demographics{Age: 10, Familiarity: "Somewhat familiar"}, false},
		{"age at upper bound", domain.Demographics{Age: 100, Familiarity: "Very familiar"}, false},
		{"blank name and occupation allowed", domain.Demographics{Age: 30, Familiarity: "Not familiar"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.in.Validate(domain.DefaultRules())
			if tc.wantErr && !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected an invalid-input error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDemographicsRecordShape(t *testing.T) {
	t.Parallel()

	record := domain.Demographics{Name: "Ada", Age: 34, Occupation: "Engineer", Familiarity: "Very familiar"}.Record(submitted)
	if got := strings.Join(record.Names(), ","); got != "timestamp,name,age,occupation,familiarity" {
		t.Fatalf("columns = %s", got)
	}
	if v, _ := record.Lookup("age"); v != recdomain.Int(34) {
		t.Fatalf("age = %q", v.Encode())
	}
}

func TestTaskResultValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      domain.TaskResult
		wantErr bool
	}{
		{"blank task name", domain.TaskResult{Success: "Yes"}, true},
		{"unknown success option", domain.TaskResult{TaskName: "Task 1", Success: "Maybe"}, true},
		{"negative duration", domain.TaskResult{TaskName: "Task 1", Success: "Yes", Duration: recdomain.Float(-1)}, true},
		{"text duration", domain.TaskResult{TaskName: "Task 1", Success: "Yes", Duration: recdomain.String("fast")}, true},
		{"no duration is fine", domain.TaskResult{TaskName: "Task 1", Success: "Partial"}, false},
		{"float duration is fine", domain.TaskResult{TaskName: "Task 1", Success: "No", Duration: recdomain.Float(42.5)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.in.Validate(domain.DefaultRules())
			if tc.wantErr && !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected an invalid-input error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTaskRecordKeepsTheEmptyDurationCell(t *testing.T) {
	t.Parallel()

	record := domain.TaskResult{TaskName: "Task 1", Success: "Yes", Notes: "smooth"}.Record(submitted)
	if got := strings.Join(record.Names(), ","); got != "timestamp,task_name,success,duration_seconds,notes" {
		t.Fatalf("columns = %s", got)
	}
	v, ok := record.Lookup("duration_seconds")
	if !ok || v.Kind() != recdomain.KindEmpty {
		t.Fatalf("duration cell = %q, want the empty cell", v.Encode())
	}
}

func TestExitSurveyValidation(t *testing.T) {
	t.Parallel()
	rules := domain.DefaultRules()

	for _, bad := range []domain.ExitSurvey{
		{Satisfaction: 0, Difficulty: 3},
		{Satisfaction: 6, Difficulty: 3},
		{Satisfaction: 3, Difficulty: 0},
		{Satisfaction: 3, Difficulty: 6},
	} {
		if err := bad.Validate(rules); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected %+v to fail validation, got %v", bad, err)
		}
	}

	survey := domain.ExitSurvey{Satisfaction: 5, Difficulty: 1, Feedback: "worked well"}
	if err := survey.Validate(rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record := survey.Record(submitted)
	if got := strings.Join(record.Names(), ","); got != "timestamp,satisfaction,difficulty,open_feedback" {
		t.Fatalf("columns = %s", got)
	}
	if v, _ := record.Lookup("satisfaction"); v != recdomain.Int(5) {
		t.Fatalf("satisfaction = %q", v.Encode())
	}
}

func TestRuleVocabulariesComeFromThePlan(t *testing.T) {
	t.Parallel()
	rules := domain.Rules{
		Familiarity: []string{"Daily user"},
		Success:     []string{"Done", "Abandoned"},
		ScaleMin:    1,
		ScaleMax:    7,
	}

	d := domain.Demographics{Age: 30, Familiarity: "Daily user"}
	if err := d.Validate(rules); err != nil {
		t.Fatalf("plan familiarity should be accepted: %v", err)
	}
	task := domain.TaskResult{TaskName: "Task 1", Success: "Abandoned"}
	if err := task.Validate(rules); err != nil {
		t.Fatalf("plan success option should be accepted: %v", err)
	}
	survey := domain.ExitSurvey{Satisfaction: 7, Difficulty: 6}
	if err := survey.Validate(rules); err != nil {
		t.Fatalf("widened scale should be accepted: %v", err)
	}
	if err := (domain.TaskResult{TaskName: "Task 1", Success: "Yes"}).Validate(rules); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("default vocabulary must not leak into plan rules, got %v", err)
	}
}
