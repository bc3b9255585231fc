// Package matcher exposes the collaboration matching engine: ingestion of
// raw records into an index snapshot, name search, and verification of
// single or batched assignments.
package matcher

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/influencer-matcher/internal/catalog"
	"github.com/sells-group/influencer-matcher/internal/index"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/internal/resolve"
	"github.com/sells-group/influencer-matcher/internal/verify"
)

// searchCandidates is how many ranked alternatives Search reports.
const searchCandidates = 5

// Options configures an Engine.
type Options struct {
	Catalog       *catalog.Catalog // nil uses catalog.Default()
	MinScore      int              // resolver cutoff, 0..100
	MinNameLength int              // <= 0 uses index.DefaultMinNameLength

	// SuggestMinScore is the floor for candidates listed on a miss.
	// <= 0 uses resolve.DefaultSuggestMinScore; it never exceeds MinScore.
	SuggestMinScore int
}

// Engine owns the current index snapshot. Queries read whichever snapshot
// is current when they start and never observe a partial rebuild.
type Engine struct {
	catalog       *catalog.Catalog
	verifier      *verify.Verifier
	minScore      int
	suggestScore  int
	minNameLength int

	current  atomic.Pointer[index.Index]
	ingestMu sync.Mutex // serializes rebuilds
}

// IngestResult summarizes one rebuild.
type IngestResult struct {
	Records  int       `json:"records"`
	Loaded   int       `json:"loaded"`
	Dropped  int       `json:"dropped"`
	Contacts int       `json:"contacts_loaded"`
	Products int       `json:"products_found"`
	BuiltAt  time.Time `json:"built_at"`
}

// SearchResult is the product history found for a name.
type SearchResult struct {
	Found       bool                `json:"found"`
	Query       string              `json:"query"`
	MatchedName string              `json:"matched_name,omitempty"`
	MatchedKey  string              `json:"matched_key,omitempty"`
	Score       int                 `json:"match_score"`
	Products    []string            `json:"products"`
	Sources     []string            `json:"sources,omitempty"`
	Candidates  []resolve.Candidate `json:"candidates,omitempty"`
}

// Stats describes the current snapshot.
type Stats struct {
	Loaded        bool      `json:"loaded"`
	TotalContacts int       `json:"total_contacts"`
	TotalProducts int       `json:"total_products"`
	Products      []string  `json:"products"`
	Sources       []string  `json:"sources"`
	BuiltAt       time.Time `json:"built_at,omitzero"`
	MinScore      int       `json:"min_score"`
}

// New creates an Engine with an empty index.
func New(opts Options) *Engine {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	suggest := opts.SuggestMinScore
	if suggest <= 0 {
		suggest = resolve.DefaultSuggestMinScore
	}
	e := &Engine{
		catalog:       cat,
		verifier:      verify.New(cat, opts.MinScore),
		minScore:      opts.MinScore,
		suggestScore:  min(suggest, opts.MinScore),
		minNameLength: opts.MinNameLength,
	}
	e.current.Store(index.Empty())
	return e
}

// Catalog returns the product catalog used for extraction and lookup.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Snapshot returns the current index.
func (e *Engine) Snapshot() *index.Index {
	return e.current.Load()
}

// Ingest builds a new index from records, replacing the previous one in a
// single swap. records is the complete data set, not a delta.
func (e *Engine) Ingest(records []model.RawRecord) IngestResult {
	e.ingestMu.Lock()
	defer e.ingestMu.Unlock()

	ix, rep := index.Build(records, index.Options{
		Catalog:       e.catalog,
		MinNameLength: e.minNameLength,
	})

	for _, d := range rep.Dropped {
		zap.L().Debug("ingest: dropped record",
			zap.String("source", d.Record.Source),
			zap.Int("row", d.Record.Row),
			zap.String("name", d.Record.Name),
			zap.Error(d.Reason),
		)
	}

	e.current.Store(ix)

	res := IngestResult{
		Records:  rep.Records,
		Loaded:   rep.Loaded,
		Dropped:  len(rep.Dropped),
		Contacts: rep.Contacts,
		Products: rep.Products,
		BuiltAt:  ix.BuiltAt(),
	}
	zap.L().Info("ingest complete",
		zap.Int("records", res.Records),
		zap.Int("loaded", res.Loaded),
		zap.Int("dropped", res.Dropped),
		zap.Int("contacts", res.Contacts),
		zap.Int("products", res.Products),
	)
	return res
}

// Search resolves name and returns the matched entry's product history.
// Candidates lists close keys; on a miss they may score below the cutoff
// down to the suggestion floor.
func (e *Engine) Search(name string) SearchResult {
	ix := e.Snapshot()
	m := resolve.Resolve(name, ix, e.minScore)

	res := SearchResult{
		Found:    m.Found,
		Query:    m.Query,
		Score:    m.Score,
		Products: []string{},
	}
	if m.Found {
		res.MatchedName = m.Entry.DisplayName
		res.MatchedKey = m.Entry.Key
		res.Products = m.Entry.Products
		res.Sources = m.Entry.Sources
	}
	floor := e.minScore
	if !m.Found {
		floor = e.suggestScore
	}
	res.Candidates = resolve.Rank(name, ix, floor, searchCandidates)
	return res
}

// Verify checks one proposed assignment against the current snapshot.
func (e *Engine) Verify(name, product string) model.Outcome {
	return e.verifier.Verify(e.Snapshot(), name, product)
}

// VerifyBatch checks pairs in order against one snapshot.
func (e *Engine) VerifyBatch(pairs []model.Pair) verify.BatchResult {
	res := e.verifier.RunBatch(e.Snapshot(), pairs)
	zap.L().Info("batch verification complete",
		zap.String("run_id", res.RunID),
		zap.Int("total", res.Stats.Total),
		zap.Int("verified", res.Stats.Verified),
		zap.Int("mismatches", res.Stats.Mismatches),
		zap.Int("no_data", res.Stats.NoData),
		zap.Int("no_products", res.Stats.NoProducts),
		zap.Int("malformed", res.Stats.Malformed),
		zap.Duration("elapsed", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res
}

// Stats reports on the current snapshot.
func (e *Engine) Stats() Stats {
	ix := e.Snapshot()
	products := ix.Products()
	if products == nil {
		products = []string{}
	}
	slices.Sort(products)
	return Stats{
		Loaded:        ix.Len() > 0,
		TotalContacts: ix.Len(),
		TotalProducts: len(products),
		Products:      products,
		Sources:       ix.Sources(),
		BuiltAt:       ix.BuiltAt(),
		MinScore:      e.minScore,
	}
}
