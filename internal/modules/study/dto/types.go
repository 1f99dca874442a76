package dto

type TaskOutput struct {
	Name        string
	Description string
}

type PlanOutput struct {
	Title          string
	Intro          string
	ConsentSummary string
	Tasks          []TaskOutput
	Familiarity    []string
	Success        []string
	ScaleMin       int
	ScaleMax       int
}

type DocumentOutput struct {
	Title  string
	Body   string
	Format string
}
