package usecase

import (
	"context"

	recdomain "uxlab/internal/modules/records/domain"
	recordsin "uxlab/internal/modules/records/port/in"
	"uxlab/internal/modules/report/dto"
	reportin "uxlab/internal/modules/report/port/in"
	"uxlab/internal/modules/report/service"
)

type Interactor struct {
	svc     *service.ReportService
	records recordsin.Usecase
}

func NewInteractor(svc *service.ReportService, records recordsin.Usecase) reportin.Usecase {
	return &Interactor{svc: svc, records: records}
}

func (i *Interactor) Generate(ctx context.Context) (dto.ReportOutput, error) {
	perDataset := make(map[recdomain.Dataset][]recdomain.Record, len(recdomain.AllDatasets()))
	for _, dataset := range recdomain.AllDatasets() {
		records, err := i.records.Load(ctx, dataset)
		if err != nil {
			return dto.ReportOutput{}, err
		}
		perDataset[dataset] = records
	}

	report := i.svc.Build(perDataset)
	out := dto.ReportOutput{
		GeneratedAt: report.GeneratedAt.Format(recdomain.TimestampLayout),
		Sections:    make([]dto.SectionOutput, 0, len(report.Sections)),
	}
	for _, section := range report.Sections {
		out.Sections = append(out.Sections, dto.SectionOutput{
			Dataset: string(section.Dataset),
			Title:   section.Title,
			Columns: section.Columns,
			Rows:    section.Rows,
		})
	}
	if report.Exit != nil {
		out.ExitAverages = &dto.ExitAveragesOutput{
			MeanSatisfaction: report.Exit.Satisfaction,
			MeanDifficulty:   report.Exit.Difficulty,
			Responses:        report.Exit.Responses,
		}
	}
	return out, nil
}
