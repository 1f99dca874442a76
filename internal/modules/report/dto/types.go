package dto

type SectionOutput struct {
	Dataset string
	Title   string
	Columns []string
	Rows    [][]string
}

type ExitAveragesOutput struct {
	MeanSatisfaction float64
	MeanDifficulty   float64
	Responses        int
}

// ReportOutput is a full aggregate view. ExitAverages is nil when the
// exit dataset holds no records.
type ReportOutput struct {
	GeneratedAt  string
	Sections     []SectionOutput
	ExitAverages *ExitAveragesOutput
}
