package service

import (
	recdomain "uxlab/internal/modules/records/domain"
	"uxlab/internal/modules/report/domain"
	"uxlab/internal/platform/clock"
)

// ReportService assembles the aggregate view from already loaded records.
type ReportService struct {
	clock clock.Clock
}

func NewReportService(c clock.Clock) *ReportService {
	return &ReportService{clock: c}
}

func (s *ReportService) Build(perDataset map[recdomain.Dataset][]recdomain.Record) domain.Report {
	report := domain.Report{
		GeneratedAt: s.clock.Now(),
		Sections:    make([]domain.Section, 0, len(recdomain.AllDatasets())),
	}
	for _, dataset := range recdomain.AllDatasets() {
		report.Sections = append(report.Sections, domain.SectionOf(dataset, perDataset[dataset]))
	}
	if averages, ok := domain.ExitAverages(perDataset[recdomain.DatasetExit]); ok {
		report.Exit = &averages
	}
	return report
}
