package dto

type AppendOutput struct {
	Dataset     string
	Seq         int
	SubmittedAt string
}

type DatasetInfoOutput struct {
	Dataset string
	Records int
	LastAt  string
}

type DatasetSnapshotOutput struct {
	Dataset string
	Columns []string
	Rows    [][]string
}
