package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/influencer-matcher/internal/model"
)

// WriteCSV writes outcomes as CSV with a header row.
func WriteCSV(w io.Writer, outcomes []model.Outcome) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, o := range outcomes {
		if err := cw.Write(csvRow(o)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func csvRow(o model.Outcome) []string {
	return []string{
		o.Name,
		o.Product,
		string(o.Status),
		strconv.FormatBool(o.Verified),
		strconv.Itoa(o.Score),
		o.MatchedName,
		history(o.Products),
		o.Message,
	}
}
