// Package export writes batch verification outcomes to XLSX or CSV.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/influencer-matcher/internal/model"
)

// Format is an output file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// historyLimit caps the historical products listed per row.
const historyLimit = 5

// Columns is the header row of every export.
var Columns = []string{
	"Name",
	"Assigned Product",
	"Status",
	"Verified",
	"Match Score",
	"Matched Name",
	"Historical Products",
	"Message",
}

// ParseFormat accepts "xlsx" or "csv" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", eris.Errorf("export: unknown format %q", s)
	}
}

// FileName returns the default report name for a batch run.
func FileName(runID string, f Format) string {
	if runID == "" {
		return fmt.Sprintf("verification_results.%s", f)
	}
	return fmt.Sprintf("verification_%s.%s", runID, f)
}

// Write encodes outcomes in input order.
func Write(w io.Writer, f Format, outcomes []model.Outcome) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, outcomes)
	case FormatCSV:
		return WriteCSV(w, outcomes)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// WriteFile writes outcomes to path, creating parent directories.
func WriteFile(path string, f Format, outcomes []model.Outcome) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "export: create directory")
	}
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	if err := Write(out, f, outcomes); err != nil {
		_ = out.Close()
		return err
	}
	return eris.Wrap(out.Close(), "export: close file")
}

// history renders the first few historical products.
func history(products []string) string {
	if len(products) > historyLimit {
		products = products[:historyLimit]
	}
	return strings.Join(products, ", ")
}
