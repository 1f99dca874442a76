package out

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"uxlab/internal/modules/records/domain"
	recordsout "uxlab/internal/modules/records/port/out"
	apperrors "uxlab/internal/platform/errors"
)

// CSVDatasetStore keeps each dataset as an append-only CSV file plus a JSON
// sidecar pinning the column layout established by the first append. Rows
// are only ever added, never rewritten. Single-writer: no file locking.
type CSVDatasetStore struct {
	dataDir string
}

func NewCSVDatasetStore(dataDir string) recordsout.DatasetStore {
	return &CSVDatasetStore{dataDir: dataDir}
}

type schemaFile struct {
	Dataset string   `json:"dataset"`
	Columns []string `json:"columns"`
}

func (s *CSVDatasetStore) Append(ctx context.Context, dataset domain.Dataset, record domain.Record) (int, error) {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return 0, fmt.Errorf("create data directory: %w", err)
	}
	schema, err := s.loadSchema(dataset)
	if err != nil {
		return 0, err
	}
	if schema.IsZero() {
		schema = domain.SchemaOf(record)
		if err := s.writeSchema(dataset, schema); err != nil {
			return 0, err
		}
	} else if !schema.Matches(record.Names()) {
		return 0, fmt.Errorf("%w: dataset %s has columns %v, record carries %v",
			apperrors.ErrSchemaMismatch, dataset, schema.Columns, record.Names())
	}

	existing, err := s.Load(ctx, dataset)
	if err != nil {
		return 0, err
	}

	file, err := os.OpenFile(s.dataPath(dataset), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", dataset.FileName(), err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", dataset.FileName(), err)
	}
	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(schema.Columns); err != nil {
			return 0, fmt.Errorf("write %s header: %w", dataset.FileName(), err)
		}
	}
	cells := make([]string, 0, len(record.Fields))
	for _, field := range record.Fields {
		cells = append(cells, field.Value.Encode())
	}
	if err := writer.Write(cells); err != nil {
		return 0, fmt.Errorf("write %s row: %w", dataset.FileName(), err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush %s: %w", dataset.FileName(), err)
	}
	return len(existing) + 1, nil
}

func (s *CSVDatasetStore) Load(_ context.Context, dataset domain.Dataset) ([]domain.Record, error) {
	file, err := os.Open(s.dataPath(dataset))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", dataset.FileName(), err)
	}
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dataset.FileName(), err)
	}
	if len(rows) == 0 {
		return []domain.Record{}, nil
	}
	header := rows[0]
	out := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := domain.Record{Fields: make([]domain.Field, 0, len(header))}
		for i, name := range header {
			record.Fields = append(record.Fields, domain.Field{Name: name, Value: domain.ParseValue(row[i])})
		}
		out = append(out, record)
	}
	return out, nil
}

// loadSchema prefers the sidecar; a dataset written before the sidecar
// existed is recovered from its CSV header and the sidecar rewritten.
func (s *CSVDatasetStore) loadSchema(dataset domain.Dataset) (domain.Schema, error) {
	raw, err := os.ReadFile(s.schemaPath(dataset))
	if err == nil {
		var decoded schemaFile
		if jsonErr := json.Unmarshal(raw, &decoded); jsonErr != nil {
			return domain.Schema{}, fmt.Errorf("decode %s: %w", dataset.SchemaFileName(), jsonErr)
		}
		return domain.Schema{Columns: decoded.Columns}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return domain.Schema{}, fmt.Errorf("read %s: %w", dataset.SchemaFileName(), err)
	}
	header, err := s.readHeader(dataset)
	if err != nil {
		return domain.Schema{}, err
	}
	if header == nil {
		return domain.Schema{}, nil
	}
	schema := domain.Schema{Columns: header}
	if err := s.writeSchema(dataset, schema); err != nil {
		return domain.Schema{}, err
	}
	return schema, nil
}

func (s *CSVDatasetStore) readHeader(dataset domain.Dataset) ([]string, error) {
	file, err := os.Open(s.dataPath(dataset))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", dataset.FileName(), err)
	}
	defer func() { _ = file.Close() }()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s header: %w", dataset.FileName(), err)
	}
	return header, nil
}

func (s *CSVDatasetStore) writeSchema(dataset domain.Dataset, schema domain.Schema) error {
	raw, err := json.MarshalIndent(schemaFile{Dataset: string(dataset), Columns: schema.Columns}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", dataset.SchemaFileName(), err)
	}
	if err := os.WriteFile(s.schemaPath(dataset), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dataset.SchemaFileName(), err)
	}
	return nil
}

func (s *CSVDatasetStore) dataPath(dataset domain.Dataset) string {
	return filepath.Join(s.dataDir, dataset.FileName())
}

func (s *CSVDatasetStore) schemaPath(dataset domain.Dataset) string {
	return filepath.Join(s.dataDir, dataset.SchemaFileName())
}
