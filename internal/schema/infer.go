package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// Delimiter is fixed by the source file convention.
	Delimiter = ';'

	// DefaultSampleRows bounds how many data rows are read per file when
	// inferring a schema. Rows beyond the bound are never read.
	DefaultSampleRows = 100
)

// SchemaError reports a failed inference attempt for one file. It carries
// the file path so the caller can skip the file and keep processing others.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("inferring schema for %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// InferType maps one raw field value to a column type. Rules, in priority
// order: empty values are STRING (an empty cell carries no numeric
// evidence); the literals "true" and "false" (any case) are BOOLEAN;
// values that parse as a finite number are INTEGER when integral and FLOAT
// otherwise; everything else is STRING. Parse failure is the normal path to
// STRING, never an error.
func InferType(raw string) ColumnType {
	if raw == "" {
		return TypeString
	}
	if strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false") {
		return TypeBoolean
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return TypeString
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return TypeFloat
	}
	if f == math.Trunc(f) {
		return TypeInteger
	}
	return TypeFloat
}

// InferSchema parses the file at path as ';'-separated text and derives a
// destination schema from its header row and up to sampleRows data rows.
// Any I/O or parse failure is returned as a *SchemaError.
func InferSchema(path string, sampleRows int) (TableSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SchemaError{Path: path, Err: err}
	}
	defer f.Close()

	ts, err := InferColumns(f, sampleRows)
	if err != nil {
		return nil, &SchemaError{Path: path, Err: err}
	}
	return ts, nil
}

// InferColumns derives a schema from an already-open source. The first row
// is the header row; each header is sanitized and duplicates are
// suffix-disambiguated so identifiers stay unique within the schema.
// Column types start with no evidence and widen via Join as non-empty
// sample values are seen; a column with no non-empty samples is STRING.
// Rows shorter than the header are tolerated and extra fields beyond the
// header count are ignored. Output preserves header order.
func InferColumns(r io.Reader, sampleRows int) (TableSchema, error) {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}

	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	names := dedupeHeaders(header)
	types := make([]ColumnType, len(header))

	for sampled := 0; sampled < sampleRows; sampled++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sample row %d: %w", sampled+1, err)
		}
		for j, value := range row {
			if j >= len(header) {
				break
			}
			if value == "" {
				continue
			}
			t := InferType(value)
			if types[j] == "" {
				types[j] = t
			} else {
				types[j] = Join(types[j], t)
			}
		}
	}

	ts := make(TableSchema, len(header))
	for i, name := range names {
		t := types[i]
		if t == "" {
			t = TypeString
		}
		ts[i] = ColumnSpec{Name: name, Type: t}
	}
	return ts, nil
}

// dedupeHeaders sanitizes raw headers and suffixes repeats (col, col_2, ...)
// so two source headers can never collapse onto one destination column.
func dedupeHeaders(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := Sanitize(h)
		seen[name]++
		if n := seen[name]; n > 1 {
			for {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if seen[candidate] == 0 {
					seen[candidate]++
					name = candidate
					break
				}
				n++
			}
		}
		names[i] = name
	}
	return names
}
