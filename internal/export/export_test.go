package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/influencer-matcher/internal/model"
)

func sampleOutcomes() []model.Outcome {
	return []model.Outcome{
		{
			Name: "Serap", Product: "Kakao Ecuador", Status: model.StatusVerified, Verified: true,
			Score: 100, MatchedName: "Serap 3K", Products: []string{"Kakao Ecuador"},
			Message: "Product matches history (score: 100)",
		},
		{
			Name: "Laura", Product: "Kakao Peru", Status: model.StatusMismatch, Score: 100,
			MatchedName: "Laura Malina Seiler",
			Products:    []string{"Reishi", "Lions Mane", "Cordyceps", "Chaga", "Matcha", "Maca"},
			Message:     "Product not in history. Alternatives: Reishi, Lions Mane, Cordyceps",
		},
		{Status: model.StatusNoData, Message: "Missing name or product"},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "verification_abc.csv", FileName("abc", FormatCSV))
	assert.Equal(t, "verification_results.xlsx", FileName("", FormatXLSX))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleOutcomes()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{
		"Serap", "Kakao Ecuador", "VERIFIED", "true", "100", "Serap 3K", "Kakao Ecuador",
		"Product matches history (score: 100)",
	}, rows[1])
	assert.Equal(t, "Reishi, Lions Mane, Cordyceps, Chaga, Matcha", rows[2][6])
	assert.Equal(t, "NO_DATA", rows[3][2])
	assert.Equal(t, "false", rows[3][3])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleOutcomes()))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[SheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 4)

	header := sheet.Rows[0]
	require.Len(t, header.Cells, len(Columns))
	assert.Equal(t, "Match Score", header.Cells[4].String())

	first := sheet.Rows[1]
	assert.Equal(t, "Serap", first.Cells[0].String())
	assert.True(t, first.Cells[3].Bool())
	score, err := first.Cells[4].Int()
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	assert.Equal(t, "MISMATCH", sheet.Rows[2].Cells[2].String())
	assert.Equal(t, "Missing name or product", sheet.Rows[3].Cells[7].String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), nil)
	require.Error(t, err)
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "nested", FileName("run-1", FormatCSV))

	require.NoError(t, WriteFile(path, FormatCSV, sampleOutcomes()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Assigned Product")
	assert.Contains(t, string(data), "Serap 3K")
}

func TestHistory(t *testing.T) {
	assert.Equal(t, "", history(nil))
	assert.Equal(t, "a, b", history([]string{"a", "b"}))
	assert.Equal(t, "1, 2, 3, 4, 5", history([]string{"1", "2", "3", "4", "5", "6", "7"}))
}
