package domain_test

import (
	"testing"

	recdomain "uxlab/internal/modules/records/domain"
	"uxlab/internal/modules/report/domain"
)

func exitRecord(satisfaction, difficulty recdomain.Value) recdomain.Record {
	return recdomain.Record{Fields: []recdomain.Field{
		{Name: recdomain.TimestampField, Value: recdomain.String("2026-08-20 16:25:00")},
		{Name: "satisfaction", Value: satisfaction},
		{Name: "difficulty", Value: difficulty},
		{Name: "open_feedback", Value: recdomain.String("fine")},
	}}
}

func TestExitAveragesOverTwoRecords(t *testing.T) {
	t.Parallel()

	averages, ok := domain.ExitAverages([]recdomain.Record{
		exitRecord(recdomain.Int(3), recdomain.Int(2)),
		exitRecord(recdomain.Int(5), recdomain.Int(4)),
	})
	if !ok {
		t.Fatal("averages should exist for a non-empty dataset")
	}
	if averages.Satisfaction != 4.0 || averages.Difficulty != 3.0 {
		t.Fatalf("means = %.2f / %.2f, want 4.00 / 3.00", averages.Satisfaction, averages.Difficulty)
	}
	if averages.Responses != 2 {
		t.Fatalf("responses = %d, want 2", averages.Responses)
	}
}

func TestExitAveragesAreOmittedWhenEmpty(t *testing.T) {
	t.Parallel()

	if _, ok := domain.ExitAverages(nil); ok {
		t.Fatal("no records must yield no averages")
	}
}

func TestBlankRatingLowersTheDenominator(t *testing.T) {
	t.Parallel()

	averages, ok := domain.ExitAverages([]recdomain.Record{
		exitRecord(recdomain.Int(3), recdomain.Int(2)),
		exitRecord(recdomain.Empty(), recdomain.Int(4)),
		exitRecord(recdomain.Int(5), recdomain.Int(3)),
	})
	if !ok {
		t.Fatal("averages should exist")
	}
	if averages.Satisfaction != 4.0 {
		t.Fatalf("satisfaction mean = %.2f, want the mean over the two numeric cells", averages.Satisfaction)
	}
	if averages.Difficulty != 3.0 {
		t.Fatalf("difficulty mean = %.2f, want 3.00", averages.Difficulty)
	}
	if averages.Responses != 3 {
		t.Fatalf("responses = %d, want all records counted", averages.Responses)
	}
}

func TestSectionTitlesAndFlattening(t *testing.T) {
	t.Parallel()

	section := domain.SectionOf(recdomain.DatasetExit, []recdomain.Record{
		exitRecord(recdomain.Int(3), recdomain.Int(2)),
	})
	if section.Title != "Exit Questionnaire Data" {
		t.Fatalf("title = %q", section.Title)
	}
	if len(section.Columns) != 4 || section.Columns[0] != recdomain.TimestampField {
		t.Fatalf("columns = %v", section.Columns)
	}
	if len(section.Rows) != 1 || section.Rows[0][1] != "3" {
		t.Fatalf("rows = %v", section.Rows)
	}

	empty := domain.SectionOf(recdomain.DatasetConsent, nil)
	if empty.Title != "Consent Data" || len(empty.Rows) != 0 {
		t.Fatalf("empty section = %+v", empty)
	}
}
