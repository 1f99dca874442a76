package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// TimestampField is the mandatory leading column of every dataset.
	TimestampField = "timestamp"
	// TimestampLayout is the wall-clock format stamped into that column.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Dataset names one append-only table of collected study data.
type Dataset string

const (
	DatasetConsent     Dataset = "consent"
	DatasetDemographic Dataset = "demographic"
	DatasetTask        Dataset = "task"
	DatasetExit        Dataset = "exit"
)

// AllDatasets returns every dataset in collection order.
func AllDatasets() []Dataset {
	return []Dataset{DatasetConsent, DatasetDemographic, DatasetTask, DatasetExit}
}

func (d Dataset) Validate() error {
	switch d {
	case DatasetConsent, DatasetDemographic, DatasetTask, DatasetExit:
		return nil
	default:
		return fmt.Errorf("unsupported dataset %q", string(d))
	}
}

// FileName is the CSV file backing the dataset inside the data directory.
func (d Dataset) FileName() string {
	return string(d) + "_data.csv"
}

// SchemaFileName is the sidecar pinning the dataset's column layout.
func (d Dataset) SchemaFileName() string {
	return string(d) + "_data.schema.json"
}

// Kind tags which variant a Value holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindBool
	KindString
	KindInt
	KindFloat
)

// Value is one table cell. The zero Value is the empty cell.
type Value struct {
	kind     Kind
	boolVal  bool
	strVal   string
	intVal   int64
	floatVal float64
}

func Empty() Value      { return Value{} }
func Bool(v bool) Value { return Value{kind: KindBool, boolVal: v} }
func Int(v int64) Value { return Value{kind: KindInt, intVal: v} }

// String builds a text cell. Empty text is the empty cell, so values
// survive a storage round trip unchanged.
func String(v string) Value {
	if v == "" {
		return Value{}
	}
	return Value{kind: KindString, strVal: v}
}

func Float(v float64) Value { return Value{kind: KindFloat, floatVal: v} }

func (v Value) Kind() Kind { return v.kind }

// Encode renders the cell text written to storage.
func (v Value) Encode() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindString:
		return v.strVal
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'f', -1, 64)
	default:
		return ""
	}
}

// AsFloat coerces numeric cells for aggregation.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.intVal), true
	case KindFloat:
		return v.floatVal, true
	default:
		return 0, false
	}
}

// ParseValue classifies stored cell text back into a tagged value: empty
// text is the empty cell, "true"/"false" are booleans, integral and decimal
// text become numbers, anything else stays a string.
func ParseValue(cell string) Value {
	if cell == "" {
		return Value{}
	}
	switch cell {
	case "true", "false":
		return Bool(cell == "true")
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return Float(f)
	}
	return Value{kind: KindString, strVal: cell}
}

// Field is one named cell of a record.
type Field struct {
	Name  string
	Value Value
}

// Record is one row: an ordered field list led by the timestamp.
type Record struct {
	Fields []Field
}

func (r Record) Names() []string {
	out := make([]string, 0, len(r.Fields))
	for _, field := range r.Fields {
		out = append(out, field.Name)
	}
	return out
}

func (r Record) Lookup(name string) (Value, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return Value{}, false
}

func (r Record) Validate() error {
	if len(r.Fields) == 0 {
		return fmt.Errorf("record has no fields")
	}
	if r.Fields[0].Name != TimestampField {
		return fmt.Errorf("record must lead with the %s field", TimestampField)
	}
	if _, err := time.Parse(TimestampLayout, r.Fields[0].Value.Encode()); err != nil {
		return fmt.Errorf("malformed timestamp: %w", err)
	}
	seen := make(map[string]struct{}, len(r.Fields))
	for _, field := range r.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("field name is required")
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

// Schema is the fixed column layout a dataset acquires on first append.
type Schema struct {
	Columns []string
}

func SchemaOf(r Record) Schema {
	return Schema{Columns: r.Names()}
}

func (s Schema) IsZero() bool {
	return len(s.Columns) == 0
}

func (s Schema) Matches(names []string) bool {
	if len(s.Columns) != len(names) {
		return false
	}
	for i, column := range s.Columns {
		if names[i] != column {
			return false
		}
	}
	return true
}

// DatasetCount summarizes one dataset in the submission index.
type DatasetCount struct {
	Dataset Dataset
	Records int
	LastAt  string
}
