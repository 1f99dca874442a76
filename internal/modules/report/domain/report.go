package domain

import (
	"time"

	recdomain "uxlab/internal/modules/records/domain"
)

// Report is the transient aggregate view over every dataset. It is
// recomputed on each render and never stored.
type Report struct {
	GeneratedAt time.Time
	Sections    []Section
	Exit        *Averages
}

// Section is one dataset flattened into display cells, in submission
// order. Columns is empty while the dataset has no records.
type Section struct {
	Dataset recdomain.Dataset
	Title   string
	Columns []string
	Rows    [][]string
}

// Averages summarizes the exit questionnaire. Each mean is taken over the
// records whose cell is numeric, so a legacy row with a blank rating
// lowers the denominator instead of skewing the mean.
type Averages struct {
	Satisfaction float64
	Difficulty   float64
	Responses    int
}

// SectionTitle names a dataset's report section.
func SectionTitle(dataset recdomain.Dataset) string {
	switch dataset {
	case recdomain.DatasetConsent:
		return "Consent Data"
	case recdomain.DatasetDemographic:
		return "Demographic Data"
	case recdomain.DatasetTask:
		return "Task Performance Data"
	case recdomain.DatasetExit:
		return "Exit Questionnaire Data"
	default:
		return string(dataset)
	}
}

// SectionOf flattens a dataset's records into a section.
func SectionOf(dataset recdomain.Dataset, records []recdomain.Record) Section {
	section := Section{
		Dataset: dataset,
		Title:   SectionTitle(dataset),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, record := range records {
		if section.Columns == nil {
			section.Columns = record.Names()
		}
		row := make([]string, 0, len(record.Fields))
		for _, field := range record.Fields {
			row = append(row, field.Value.Encode())
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}

// ExitAverages computes the questionnaire means. The second return is
// false when there are no exit records at all, in which case the report
// omits the averages instead of showing zeros.
func ExitAverages(records []recdomain.Record) (Averages, bool) {
	if len(records) == 0 {
		return Averages{}, false
	}
	averages := Averages{Responses: len(records)}
	averages.Satisfaction = columnMean(records, "satisfaction")
	averages.Difficulty = columnMean(records, "difficulty")
	return averages, true
}

func columnMean(records []recdomain.Record, column string) float64 {
	sum := 0.0
	count := 0
	for _, record := range records {
		value, ok := record.Lookup(column)
		if !ok {
			continue
		}
		number, numeric := value.AsFloat()
		if !numeric {
			continue
		}
		sum += number
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
