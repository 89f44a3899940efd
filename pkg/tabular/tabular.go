// Package tabular decodes uploaded CSV and Excel files into a uniform,
// format-agnostic row representation used by the import pipeline.
package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// ValueKind tags the decoded content of a single cell.
type ValueKind int

const (
	Absent ValueKind = iota
	Text
	Number
)

// Value is one decoded cell: absent, free text, or a number.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// String renders the cell as trimmed text; numbers keep their minimal form.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case Text:
		return strings.TrimSpace(v.Text)
	}
	return ""
}

// Blank reports whether the cell is absent or trims to the empty string.
func (v Value) Blank() bool {
	return v.Kind == Absent || v.String() == ""
}

// Row maps a normalized column name to its cell value. Missing columns
// read as the zero Value (Absent).
type Row map[string]Value

// Get returns the cell for the normalized column name.
func (r Row) Get(column string) Value {
	return r[column]
}

// Sheet is the decoded upload: normalized header names plus data rows.
type Sheet struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header row contains the normalized name.
func (s *Sheet) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the required names absent from the header row,
// preserving the required order.
func (s *Sheet) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !s.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// AllowedExtension reports whether the filename carries an importable
// extension (.csv, .xlsx or .xls).
func AllowedExtension(filename string) bool {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "csv", "xlsx", "xls":
		return true
	}
	return false
}

// Decode parses the upload into a Sheet, choosing the decoder from the
// filename extension. The first row is the header; header names are
// normalized (trimmed, lowercased, spaces to underscores). Decode failures
// are returned as plain errors for the caller to surface.
func Decode(r io.Reader, filename string) (*Sheet, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "csv":
		return decodeCSV(r)
	case "xlsx", "xls":
		return decodeExcel(r)
	}
	return nil, fmt.Errorf("unsupported file extension %q", ext)
}

// NormalizeColumn canonicalizes a header cell: trim, lowercase, spaces
// become underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func buildSheet(records [][]string) *Sheet {
	sheet := &Sheet{}
	if len(records) == 0 {
		return sheet
	}

	for _, h := range records[0] {
		sheet.Columns = append(sheet.Columns, NormalizeColumn(h))
	}

	for _, record := range records[1:] {
		row := make(Row, len(sheet.Columns))
		for i, col := range sheet.Columns {
			if col == "" || i >= len(record) {
				continue
			}
			row[col] = cellValue(record[i])
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

func cellValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Value{Kind: Number, Number: n, Text: trimmed}
	}
	return Value{Kind: Text, Text: trimmed}
}
