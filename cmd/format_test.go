package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/influencer-matcher/internal/catalog"
	"github.com/sells-group/influencer-matcher/internal/matcher"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/internal/resolve"
	"github.com/sells-group/influencer-matcher/internal/verify"
)

func TestFormatSearch_Found(t *testing.T) {
	var buf bytes.Buffer
	formatSearch(&buf, matcher.SearchResult{
		Found: true, Query: "serap", MatchedName: "Serap 3K", MatchedKey: "serap", Score: 100,
		Products: []string{"Kakao Ecuador", "Reishi"}, Sources: []string{"a.csv"},
	})

	out := buf.String()
	assert.Contains(t, out, "Serap 3K")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "Kakao Ecuador, Reishi")
	assert.Contains(t, out, "a.csv")
}

func TestFormatSearch_FoundWithoutProducts(t *testing.T) {
	var buf bytes.Buffer
	formatSearch(&buf, matcher.SearchResult{Found: true, MatchedName: "Jonas", Score: 100, Products: []string{}})
	assert.Contains(t, buf.String(), "(none)")
}

func TestFormatSearch_NotFound(t *testing.T) {
	var buf bytes.Buffer
	formatSearch(&buf, matcher.SearchResult{
		Query:      "lora malena",
		Candidates: []resolve.Candidate{{Key: "laura malina seiler", Score: 60}},
	})

	out := buf.String()
	assert.Contains(t, out, `No match found for "lora malena"`)
	assert.Contains(t, out, "laura malina seiler (60)")
}

func TestFormatOutcome(t *testing.T) {
	var buf bytes.Buffer
	formatOutcome(&buf, model.Outcome{
		Name: "Serap", Product: "Lions Mane", Status: model.StatusMismatch,
		MatchedName: "Serap 3K", Score: 100, Products: []string{"Kakao Ecuador"},
		Message: "Product not in history. Alternatives: Kakao Ecuador",
	})

	out := buf.String()
	assert.Contains(t, out, "MISMATCH")
	assert.Contains(t, out, "Serap 3K (score 100)")
	assert.Contains(t, out, "Alternatives: Kakao Ecuador")
}

func TestFormatOutcome_NoData(t *testing.T) {
	var buf bytes.Buffer
	formatOutcome(&buf, model.Outcome{Name: "X", Status: model.StatusNoData, Message: "Missing name or product"})

	out := buf.String()
	assert.Contains(t, out, "NO_DATA")
	assert.NotContains(t, out, "Matched:")
}

func TestFormatBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	formatBatchSummary(&buf, verify.BatchResult{
		RunID: "run-1",
		Stats: model.BatchStats{Total: 4, Verified: 2, Mismatches: 1, NoData: 1, Malformed: 1},
	}, "data/exports/verification_run-1.xlsx")

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "verification_run-1.xlsx")
	assert.Regexp(t, `Total:\s+4`, out)
	assert.Regexp(t, `Malformed rows:\s+1`, out)
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	formatStats(&buf, matcher.Stats{
		Loaded: true, TotalContacts: 3, TotalProducts: 2,
		Products: []string{"Kakao Ecuador", "Reishi"}, Sources: []string{"a.csv", "notion"},
		BuiltAt: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), MinScore: 70,
	})

	out := buf.String()
	assert.Contains(t, out, "Kakao Ecuador, Reishi")
	assert.Contains(t, out, "a.csv, notion")
	assert.Contains(t, out, "2025-06-15 10:30:00")
}

func TestFormatCatalog(t *testing.T) {
	var buf bytes.Buffer
	formatCatalog(&buf, catalog.Default().Products())

	out := buf.String()
	assert.Contains(t, out, "PRODUCT")
	assert.Contains(t, out, "Kakao Peru")
	assert.Contains(t, out, `" rus "`)
}

func TestNewHTTPServer(t *testing.T) {
	srv := newHTTPServer(5000, nil)
	assert.Equal(t, ":5000", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}
