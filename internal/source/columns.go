// Package source turns collaboration exports (CSV/XLSX files, directories
// of them, a Notion database) into raw records, and parses assignment
// lists for batch verification.
package source

import (
	"strings"
	"unicode"

	"github.com/sells-group/influencer-matcher/internal/fetcher"
)

// nameHeaders are matched as substrings of the lowercased first header line.
var nameHeaders = []string{"name", "ig name", "mit wem", "influencer", "person"}

// scanColumns bounds the content-based name column search.
const scanColumns = 5

// DetectNameColumn picks the column holding influencer names: the first
// column whose header mentions a name, else the column among the first few
// with the most text cells, else column 0.
func DetectNameColumn(header []string, rows [][]string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(firstLine(h)))
		for _, p := range nameHeaders {
			if strings.Contains(h, p) {
				return i
			}
		}
	}

	width := len(header)
	for _, r := range rows {
		width = max(width, len(r))
	}

	best, bestCount := 0, 0
	for col := range min(scanColumns, width) {
		n := 0
		for _, r := range rows {
			if isText(fetcher.Cell(r, col)) {
				n++
			}
		}
		if n > bestCount {
			best, bestCount = col, n
		}
	}
	return best
}

// ExtractName returns the first line of a name cell. Cells often stack the
// name, handle and follower count on separate lines.
func ExtractName(cell string) string {
	return strings.TrimSpace(firstLine(strings.TrimSpace(cell)))
}

// RowText joins the non-empty cells of a row with single spaces.
func RowText(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

func isText(cell string) bool {
	cell = strings.TrimSpace(cell)
	if len([]rune(cell)) <= 2 {
		return false
	}
	return strings.IndexFunc(cell, unicode.IsLetter) >= 0
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
