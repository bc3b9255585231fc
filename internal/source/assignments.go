package source

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/influencer-matcher/internal/fetcher"
	"github.com/sells-group/influencer-matcher/internal/model"
)

// ErrNoProductColumn is returned when an assignment list has no product column.
var ErrNoProductColumn = eris.New("source: could not find product column")

// ReadAssignments reads a (name, product) list for batch verification.
func ReadAssignments(ctx context.Context, path string) ([]model.Pair, error) {
	t, err := fetcher.ReadTable(ctx, path)
	if err != nil {
		return nil, eris.Wrap(err, "source: read assignments")
	}
	return AssignmentsFromTable(t)
}

// AssignmentsFromTable maps rows to pairs in file order. The name column is
// the first header containing "name" (else column 0); the product column is
// the first header containing "product" or "produkt". Blank rows between
// data rows are kept as malformed pairs so positions line up with the file.
func AssignmentsFromTable(t *fetcher.Table) ([]model.Pair, error) {
	nameCol := headerIndex(t.Header, "name")
	if nameCol < 0 {
		nameCol = 0
	}
	productCol := headerIndex(t.Header, "product", "produkt")
	if productCol < 0 {
		return nil, eris.Wrapf(ErrNoProductColumn, "source: %s", t.Source)
	}

	rows := t.Rows
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	pairs := make([]model.Pair, len(rows))
	for i, row := range rows {
		pairs[i] = model.Pair{
			Name:    strings.TrimSpace(fetcher.Cell(row, nameCol)),
			Product: strings.TrimSpace(fetcher.Cell(row, productCol)),
		}
	}
	return pairs, nil
}

func headerIndex(header []string, needles ...string) int {
	for i, h := range header {
		h = strings.ToLower(h)
		for _, n := range needles {
			if strings.Contains(h, n) {
				return i
			}
		}
	}
	return -1
}
