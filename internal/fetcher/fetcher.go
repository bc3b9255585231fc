// Package fetcher reads tabular collaboration exports (CSV and XLSX) from
// local files into header plus rows.
package fetcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = eris.New("fetcher: unsupported file format")

// Table is a parsed sheet. Header is the first row; Rows excludes it.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// Width returns the widest row length, header included.
func (t *Table) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		w = max(w, len(r))
	}
	return w
}

// Cell returns row[col] or "" when the row is short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ReadTable reads path based on its extension.
func ReadTable(ctx context.Context, path string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		rows, err = ReadCSVFile(ctx, path, CSVOptions{})
	case ".xlsx":
		rows, err = ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Wrapf(ErrUnsupportedFormat, "fetcher: %s", filepath.Base(path))
	}
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read %s", filepath.Base(path))
	}

	t := &Table{Source: filepath.Base(path)}
	if len(rows) > 0 {
		t.Header, t.Rows = rows[0], rows[1:]
	}
	return t, nil
}
