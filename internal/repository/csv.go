package repository

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

// ErrMissingColumn is returned when a CSV lacks a required header
var ErrMissingColumn = errors.New("missing column")

// csvRow gives header-indexed access to one CSV record
type csvRow struct {
	source string
	line   int
	header map[string]int
	fields []string
}

func (r csvRow) has(col string) bool {
	_, ok := r.header[col]
	return ok
}

func (r csvRow) raw(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// String returns the trimmed text of a column
func (r csvRow) String(col string) string {
	return r.raw(col)
}

// Float parses a required numeric column
func (r csvRow) Float(col string) (float64, error) {
	s := r.raw(col)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s:%d: column %q: invalid number %q", r.source, r.line, col, s)
	}
	return v, nil
}

// OptFloat parses an optional numeric column. Empty or absent values are NaN.
func (r csvRow) OptFloat(col string) (float64, error) {
	s := r.raw(col)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	return r.Float(col)
}

// Int parses a required integer column. Values written as floats ("3.0") are accepted.
func (r csvRow) Int(col string) (int, error) {
	v, err := r.Float(col)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%s:%d: column %q: %v is not an integer", r.source, r.line, col, v)
	}
	return int(v), nil
}

// readCSV streams a headered CSV, calling fn once per data row.
// Header names are matched case-insensitively after trimming.
func readCSV(r io.Reader, source string, required []string, fn func(csvRow) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("%s: empty file", source)
	}
	if err != nil {
		return fmt.Errorf("%s: failed to read header: %w", source, err)
	}

	header := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := header[h]; !dup {
			header[h] = i
		}
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return fmt.Errorf("%s: %w %q", source, ErrMissingColumn, col)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		line++
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s:%d: %w", source, line, err)
		}
		if err := fn(csvRow{source: source, line: line, header: header, fields: rec}); err != nil {
			return err
		}
	}
}

// openOptional opens path, reporting ok=false when the path is empty or the file is absent
func openOptional(path string) (f *os.File, ok bool, err error) {
	if path == "" {
		return nil, false, nil
	}
	f, err = os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, true, nil
}
