package domain

import (
	"fmt"
	"strings"
	"time"

	recdomain "uxlab/internal/modules/records/domain"
	apperrors "uxlab/internal/platform/errors"
)

const (
	AgeMin = 10
	AgeMax = 100
)

// Rules are the answer vocabularies the stage validators check against.
// They come from the study plan; DefaultRules matches the default plan.
type Rules struct {
	Familiarity []string
	Success     []string
	ScaleMin    int
	ScaleMax    int
}

func DefaultRules() Rules {
	return Rules{
		Familiarity: []string{"Not familiar", "Somewhat familiar", "Very familiar"},
		Success:     []string{"Yes", "No", "Partial"},
		ScaleMin:    1,
		ScaleMax:    5,
	}
}

// Consent is the affirmation stage. Nothing may be persisted for a
// participant who has not agreed.
type Consent struct {
	Agreed bool
}

func (c Consent) Validate() error {
	if !c.Agreed {
		return apperrors.ErrConsentNotGiven
	}
	return nil
}

func (c Consent) Record(at time.Time) recdomain.Record {
	return recdomain.Record{Fields: []recdomain.Field{
		{Name: recdomain.TimestampField, Value: timestamp(at)},
		{Name: "consent_given", Value: recdomain.Bool(c.Agreed)},
	}}
}

// Demographics captures who the participant is. Name and occupation are
// free text and may stay empty.
type Demographics struct {
	Name        string
	Age         int
	Occupation  string
	Familiarity string
}

func (d Demographics) Validate(rules Rules) error {
	if d.Age < AgeMin || d.Age > AgeMax {
		return fmt.Errorf("%w: age %d is outside %d to %d", apperrors.ErrInvalidInput, d.Age, AgeMin, AgeMax)
	}
	if !oneOf(d.Familiarity, rules.Familiarity) {
		return fmt.Errorf("%w: familiarity %q is not one of %s", apperrors.ErrInvalidInput, d.Familiarity, strings.Join(rules.Familiarity, ", "))
	}
	return nil
}

func (d Demographics) Record(at time.Time) recdomain.Record {
	return recdomain.Record{Fields: []recdomain.Field{
		{Name: recdomain.TimestampField, Value: timestamp(at)},
		{Name: "name", Value: recdomain.String(d.Name)},
		{Name: "age", Value: recdomain.Int(int64(d.Age))},
		{Name: "occupation", Value: recdomain.String(d.Occupation)},
		{Name: "familiarity", Value: recdomain.String(d.Familiarity)},
	}}
}

// TaskResult is one observed task attempt. Duration is either a float
// cell in seconds or the empty cell when no timer measurement exists.
type TaskResult struct {
	TaskName string
	Success  string
	Duration recdomain.Value
	Notes    string
}

func (t TaskResult) Validate(rules Rules) error {
	if strings.TrimSpace(t.TaskName) == "" {
		return fmt.Errorf("%w: task name is required", apperrors.ErrInvalidInput)
	}
	if !oneOf(t.Success, rules.Success) {
		return fmt.Errorf("%w: success %q is not one of %s", apperrors.ErrInvalidInput, t.Success, strings.Join(rules.Success, ", "))
	}
	if t.Duration.Kind() != recdomain.KindEmpty {
		seconds, ok := t.Duration.AsFloat()
		if !ok {
			return fmt.Errorf("%w: duration must be numeric, got %q", apperrors.ErrInvalidInput, t.Duration.Encode())
		}
		if seconds < 0 {
			return fmt.Errorf("%w: duration must not be negative, got %s", apperrors.ErrInvalidInput, t.Duration.Encode())
		}
	}
	return nil
}

func (t TaskResult) Record(at time.Time) recdomain.Record {
	return recdomain.Record{Fields: []recdomain.Field{
		{Name: recdomain.TimestampField, Value: timestamp(at)},
		{Name: "task_name", Value: recdomain.String(t.TaskName)},
		{Name: "success", Value: recdomain.String(t.Success)},
		{Name: "duration_seconds", Value: t.Duration},
		{Name: "notes", Value: recdomain.String(t.Notes)},
	}}
}

// ExitSurvey closes the session with two rating-scale answers and
// free-form feedback.
type ExitSurvey struct {
	Satisfaction int
	Difficulty   int
	Feedback     string
}

func (e ExitSurvey) Validate(rules Rules) error {
	if e.Satisfaction < rules.ScaleMin || e.Satisfaction > rules.ScaleMax {
		return fmt.Errorf("%w: satisfaction %d is outside %d to %d", apperrors.ErrInvalidInput, e.Satisfaction, rules.ScaleMin, rules.ScaleMax)
	}
	if e.Difficulty < rules.ScaleMin || e.Difficulty > rules.ScaleMax {
		return fmt.Errorf("%w: difficulty %d is outside %d to %d", apperrors.ErrInvalidInput, e.Difficulty, rules.ScaleMin, rules.ScaleMax)
	}
	return nil
}

func (e ExitSurvey) Record(at time.Time) recdomain.Record {
	return recdomain.Record{Fields: []recdomain.Field{
		{Name: recdomain.TimestampField, Value: timestamp(at)},
		{Name: "satisfaction", Value: recdomain.Int(int64(e.Satisfaction))},
		{Name: "difficulty", Value: recdomain.Int(int64(e.Difficulty))},
		{Name: "open_feedback", Value: recdomain.String(e.Feedback)},
	}}
}

func timestamp(at time.Time) recdomain.Value {
	return recdomain.String(at.Format(recdomain.TimestampLayout))
}

func oneOf(value string, options []string) bool {
	for _, option := range options {
		if value == option {
			return true
		}
	}
	return false
}
