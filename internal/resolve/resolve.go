// Package resolve finds the collaboration entry that best matches a
// free-form query name.
package resolve

import (
	"cmp"
	"slices"

	"github.com/sells-group/influencer-matcher/internal/index"
	"github.com/sells-group/influencer-matcher/internal/normalize"
)

// DefaultMinScore is the lowest similarity accepted as a match.
const DefaultMinScore = 70

// DefaultSuggestMinScore is the lowest similarity reported as a suggestion
// when a query has no match.
const DefaultSuggestMinScore = 50

// Match is the outcome of resolving one query.
type Match struct {
	Query string      `json:"query"` // normalized query
	Found bool        `json:"found"`
	Score int         `json:"score"` // 0 when not found
	Exact bool        `json:"exact"`
	Entry index.Entry `json:"entry"`
}

// Candidate is a scored index key.
type Candidate struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

// Resolve normalizes query and returns the best entry in ix:
//  1. An exact key match wins with score 100.
//  2. Otherwise every key is scored with TokenSetRatio; the highest score
//     wins and ties go to the lexicographically smallest key.
//  3. A best score below minScore yields no match.
//
// A nil or empty index, or a query that normalizes to nothing, yields no match.
func Resolve(query string, ix *index.Index, minScore int) Match {
	q := normalize.Name(query)
	m := Match{Query: q}
	if ix == nil || q == "" {
		return m
	}

	if e, ok := ix.Lookup(q); ok {
		m.Found, m.Exact, m.Score, m.Entry = true, true, 100, e
		return m
	}

	best, bestKey := -1, ""
	ix.Range(func(key string) bool {
		// Keys arrive sorted, so strict > keeps the smallest key on ties.
		if s := TokenSetRatio(q, key); s > best {
			best, bestKey = s, key
		}
		return best < 100
	})

	if bestKey == "" || best < minScore {
		return m
	}

	e, ok := ix.Lookup(bestKey)
	if !ok {
		return m
	}
	m.Found, m.Score, m.Entry = true, best, e
	return m
}

// Rank returns up to limit keys scoring at least minScore against query,
// exact key first, then by score with ties in key order. limit <= 0 returns
// all of them.
func Rank(query string, ix *index.Index, minScore, limit int) []Candidate {
	q := normalize.Name(query)
	if ix == nil || q == "" {
		return nil
	}

	var out []Candidate
	ix.Range(func(key string) bool {
		s := 100
		if key != q {
			s = TokenSetRatio(q, key)
		}
		if s >= minScore {
			out = append(out, Candidate{Key: key, Score: s})
		}
		return true
	})

	slices.SortStableFunc(out, func(a, b Candidate) int {
		if ea, eb := a.Key == q, b.Key == q; ea != eb {
			if ea {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Score, a.Score)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
