package service

import (
	"context"
	"fmt"

	"uxlab/internal/modules/records/domain"
	recordsout "uxlab/internal/modules/records/port/out"
	apperrors "uxlab/internal/platform/errors"
	"uxlab/internal/platform/tx"

	"go.uber.org/zap"
)

type RecordService struct {
	store     recordsout.DatasetStore
	projector recordsout.SubmissionIndexProjector
	txm       tx.Manager
	logger    *zap.Logger
}

func NewRecordService(store recordsout.DatasetStore, projector recordsout.SubmissionIndexProjector, txm tx.Manager, logger *zap.Logger) *RecordService {
	return &RecordService{store: store, projector: projector, txm: txm, logger: logger}
}

// Append lands the record in the CSV file and mirrors it into the
// submission index inside one boundary. The index stays advisory: if
// the mirror write fails, reindex rebuilds it from the CSV files.
func (s *RecordService) Append(ctx context.Context, dataset domain.Dataset, record domain.Record) (int, error) {
	if err := dataset.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownDataset, string(dataset))
	}
	if err := record.Validate(); err != nil {
		return 0, err
	}
	seq := 0
	err := s.txm.Within(ctx, func(ctx context.Context) error {
		var err error
		seq, err = s.store.Append(ctx, dataset, record)
		if err != nil {
			s.logger.Error("append rejected",
				zap.String("dataset", string(dataset)),
				zap.Error(err))
			return err
		}
		return s.projector.Upsert(ctx, dataset, seq, record)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("record appended",
		zap.String("dataset", string(dataset)),
		zap.Int("seq", seq))
	return seq, nil
}

func (s *RecordService) Load(ctx context.Context, dataset domain.Dataset) ([]domain.Record, error) {
	if err := dataset.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDataset, string(dataset))
	}
	return s.store.Load(ctx, dataset)
}

func (s *RecordService) Counts(ctx context.Context) ([]domain.DatasetCount, error) {
	return s.projector.Counts(ctx)
}

func (s *RecordService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	total := 0
	for _, dataset := range domain.AllDatasets() {
		records, err := s.store.Load(ctx, dataset)
		if err != nil {
			return err
		}
		for i, record := range records {
			if err := s.projector.Upsert(ctx, dataset, i+1, record); err != nil {
				return err
			}
		}
		total += len(records)
	}
	s.logger.Info("submission index rebuilt", zap.Int("records", total))
	return nil
}
