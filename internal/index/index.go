// Package index builds the in-memory collaboration index: one entry per
// normalized name holding every product observed for that name across all
// loaded sources. An Index is immutable once built.
package index

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sells-group/influencer-matcher/internal/catalog"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/internal/normalize"
)

// DefaultMinNameLength is the shortest normalized name (in runes) accepted
// as an index key.
const DefaultMinNameLength = 3

// Entry aggregates the collaboration history of one normalized name.
type Entry struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"display_name"`
	Products    []string `json:"products"` // catalog order, no duplicates
	Records     int      `json:"records"`
	Sources     []string `json:"sources"` // first-seen order
}

// Dropped is a record excluded from the index and the reason why.
type Dropped struct {
	Record model.RawRecord
	Reason error
}

// Report summarizes one Build.
type Report struct {
	Records  int       // records seen
	Loaded   int       // records folded into an entry
	Dropped  []Dropped // records rejected for an unusable name
	Contacts int       // distinct entries
	Products int       // distinct products across all entries
}

// Options configures Build.
type Options struct {
	Catalog       *catalog.Catalog // nil uses catalog.Default()
	MinNameLength int              // <= 0 uses DefaultMinNameLength
}

// Index maps normalized names to collaboration entries.
type Index struct {
	entries  map[string]*Entry
	keys     []string // sorted
	products []string // distinct product ids, catalog order
	sources  []string
	builtAt  time.Time
}

type builder struct {
	entry    *Entry
	products map[int]struct{} // catalog positions
	sources  map[string]struct{}
}

// Build folds records into a new Index in a single pass. Records whose name
// does not normalize to a usable key are reported in Report.Dropped.
func Build(records []model.RawRecord, opts Options) (*Index, Report) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	minLen := opts.MinNameLength
	if minLen <= 0 {
		minLen = DefaultMinNameLength
	}

	rep := Report{Records: len(records)}
	builders := make(map[string]*builder)
	allProducts := make(map[int]struct{})
	allSources := make(map[string]struct{})
	var sourceOrder []string

	for _, rec := range records {
		key := normalize.Name(rec.Name)
		if err := normalize.Validate(key, minLen); err != nil {
			rep.Dropped = append(rep.Dropped, Dropped{Record: rec, Reason: err})
			continue
		}
		rep.Loaded++

		b, ok := builders[key]
		if !ok {
			b = &builder{
				entry:    &Entry{Key: key},
				products: make(map[int]struct{}),
				sources:  make(map[string]struct{}),
			}
			builders[key] = b
		}
		b.entry.Records++

		display := displayName(rec.Name)
		if moreComplete(display, b.entry.DisplayName) {
			b.entry.DisplayName = display
		}

		for _, id := range cat.Extract(rec.Text) {
			pos := cat.Position(id)
			b.products[pos] = struct{}{}
			allProducts[pos] = struct{}{}
		}

		if rec.Source != "" {
			if _, seen := b.sources[rec.Source]; !seen {
				b.sources[rec.Source] = struct{}{}
				b.entry.Sources = append(b.entry.Sources, rec.Source)
			}
			if _, seen := allSources[rec.Source]; !seen {
				allSources[rec.Source] = struct{}{}
				sourceOrder = append(sourceOrder, rec.Source)
			}
		}
	}

	ids := cat.IDs()
	ix := &Index{
		entries:  make(map[string]*Entry, len(builders)),
		keys:     make([]string, 0, len(builders)),
		products: positionsToIDs(allProducts, ids),
		sources:  sourceOrder,
		builtAt:  time.Now().UTC(),
	}
	for key, b := range builders {
		b.entry.Products = positionsToIDs(b.products, ids)
		ix.entries[key] = b.entry
		ix.keys = append(ix.keys, key)
	}
	slices.Sort(ix.keys)

	rep.Contacts = len(ix.entries)
	rep.Products = len(ix.products)
	return ix, rep
}

// Empty returns an index with no entries, used before any data is loaded.
func Empty() *Index {
	return &Index{entries: map[string]*Entry{}}
}

// Lookup returns the entry stored under an exact normalized key.
func (ix *Index) Lookup(key string) (Entry, bool) {
	e, ok := ix.entries[key]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Range calls fn for each key in ascending order until fn returns false.
func (ix *Index) Range(fn func(key string) bool) {
	for _, k := range ix.keys {
		if !fn(k) {
			return
		}
	}
}

// Keys returns all normalized keys in ascending order.
func (ix *Index) Keys() []string {
	return slices.Clone(ix.keys)
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Products returns the distinct product ids observed across all entries.
func (ix *Index) Products() []string {
	return slices.Clone(ix.products)
}

// Sources returns the distinct record sources in first-seen order.
func (ix *Index) Sources() []string {
	return slices.Clone(ix.sources)
}

// BuiltAt returns when the index was built; zero for Empty.
func (ix *Index) BuiltAt() time.Time {
	return ix.builtAt
}

func (e *Entry) clone() Entry {
	c := *e
	c.Products = slices.Clone(e.Products)
	c.Sources = slices.Clone(e.Sources)
	if c.Products == nil {
		c.Products = []string{}
	}
	return c
}

func displayName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// moreComplete reports whether candidate should replace current as the
// display name: a handle beats no handle, otherwise the longer one wins.
func moreComplete(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	if current == "" {
		return true
	}
	ch, cu := normalize.HasHandle(candidate), normalize.HasHandle(current)
	if ch != cu {
		return ch
	}
	return utf8.RuneCountInString(candidate) > utf8.RuneCountInString(current)
}

func positionsToIDs(set map[int]struct{}, ids []string) []string {
	pos := make([]int, 0, len(set))
	for p := range set {
		pos = append(pos, p)
	}
	slices.Sort(pos)

	out := make([]string, len(pos))
	for i, p := range pos {
		out[i] = ids[p]
	}
	return out
}
