package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/influencer-matcher/internal/model"
)

// SheetName is the worksheet holding the results.
const SheetName = "Verification"

// WriteXLSX writes outcomes as a single-sheet workbook with a bold header.
func WriteXLSX(w io.Writer, outcomes []model.Outcome) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	header := sheet.AddRow()
	for _, c := range Columns {
		cell := header.AddCell()
		cell.SetString(c)
		cell.SetStyle(bold)
	}

	for _, o := range outcomes {
		row := sheet.AddRow()
		row.AddCell().SetString(o.Name)
		row.AddCell().SetString(o.Product)
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetBool(o.Verified)
		row.AddCell().SetInt(o.Score)
		row.AddCell().SetString(o.MatchedName)
		row.AddCell().SetString(history(o.Products))
		row.AddCell().SetString(o.Message)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
