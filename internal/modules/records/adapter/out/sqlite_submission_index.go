package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"uxlab/internal/modules/records/domain"
	recordsout "uxlab/internal/modules/records/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSubmissionIndex mirrors every append into a queryable table. The
// CSV files stay the source of truth; reindex rebuilds this from scratch.
type SQLiteSubmissionIndex struct {
	db *sql.DB
}

func NewSQLiteSubmissionIndex(dbPath string) (recordsout.SubmissionIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteSubmissionIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteSubmissionIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS submissions (
  dataset TEXT NOT NULL,
  seq INTEGER NOT NULL,
  submitted_at TEXT NOT NULL,
  payload TEXT NOT NULL,
  PRIMARY KEY (dataset, seq)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create submissions table: %w", err)
	}
	return nil
}

func (s *SQLiteSubmissionIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM submissions`); err != nil {
		return fmt.Errorf("reset submissions: %w", err)
	}
	return nil
}

func (s *SQLiteSubmissionIndex) Upsert(ctx context.Context, dataset domain.Dataset, seq int, record domain.Record) error {
	type cell struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	cells := make([]cell, 0, len(record.Fields))
	for _, field := range record.Fields {
		cells = append(cells, cell{Name: field.Name, Value: field.Value.Encode()})
	}
	payload, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("encode submission payload: %w", err)
	}
	submittedAt := ""
	if ts, ok := record.Lookup(domain.TimestampField); ok {
		submittedAt = ts.Encode()
	}
	const stmt = `
INSERT INTO submissions (dataset, seq, submitted_at, payload)
VALUES (?, ?, ?, ?)
ON CONFLICT(dataset, seq) DO UPDATE SET
  submitted_at=excluded.submitted_at,
  payload=excluded.payload;
`
	if _, err := s.db.ExecContext(ctx, stmt, string(dataset), seq, submittedAt, string(payload)); err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}

func (s *SQLiteSubmissionIndex) Counts(ctx context.Context) ([]domain.DatasetCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dataset, COUNT(*), MAX(submitted_at) FROM submissions GROUP BY dataset`)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byName := map[domain.Dataset]domain.DatasetCount{}
	for rows.Next() {
		var (
			name  string
			count int
			last  sql.NullString
		)
		if err := rows.Scan(&name, &count, &last); err != nil {
			return nil, fmt.Errorf("scan submission count: %w", err)
		}
		byName[domain.Dataset(name)] = domain.DatasetCount{
			Dataset: domain.Dataset(name),
			Records: count,
			LastAt:  last.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission counts: %w", err)
	}
	out := make([]domain.DatasetCount, 0, len(domain.AllDatasets()))
	for _, dataset := range domain.AllDatasets() {
		entry, ok := byName[dataset]
		if !ok {
			entry = domain.DatasetCount{Dataset: dataset}
		}
		out = append(out, entry)
	}
	return out, nil
}
