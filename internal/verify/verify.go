// Package verify classifies proposed influencer→product assignments against
// the collaboration history held in an index.
package verify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/influencer-matcher/internal/catalog"
	"github.com/sells-group/influencer-matcher/internal/index"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/internal/resolve"
)

// Status messages attached to outcomes.
const (
	MsgNoData     = "No collaboration history found"
	MsgNoProducts = "Contact found but no product history"
	MsgMalformed  = "Missing name or product"
)

// maxAlternatives caps the products listed in a mismatch message.
const maxAlternatives = 3

// Verifier resolves names and compares proposed products with history.
type Verifier struct {
	catalog  *catalog.Catalog
	minScore int
}

// New creates a Verifier. A nil catalog uses catalog.Default().
func New(cat *catalog.Catalog, minScore int) *Verifier {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Verifier{catalog: cat, minScore: minScore}
}

// MinScore returns the resolver cutoff used by v.
func (v *Verifier) MinScore() int {
	return v.minScore
}

// Verify classifies one (name, product) pair against ix. It always returns
// exactly one of the four outcome kinds:
//  1. no entry resolved at or above the cutoff → NO_DATA
//  2. entry has no products → NO_PRODUCTS
//  3. product is in the entry's products → VERIFIED
//  4. otherwise → MISMATCH
//
// The product is resolved to a catalog id by case-insensitive exact match;
// an unknown product falls back to a textual comparison with the history.
func (v *Verifier) Verify(ix *index.Index, name, product string) model.Outcome {
	out := model.Outcome{
		Name:     name,
		Product:  product,
		Products: []string{},
	}

	if (model.Pair{Name: name, Product: product}).Malformed() {
		out.Status = model.StatusNoData
		out.Message = MsgMalformed
		return out
	}

	m := resolve.Resolve(name, ix, v.minScore)
	out.Query = m.Query
	if !m.Found {
		out.Status = model.StatusNoData
		out.Message = MsgNoData
		return out
	}

	out.MatchedName = m.Entry.DisplayName
	out.MatchedKey = m.Entry.Key
	out.Score = m.Score
	out.Products = m.Entry.Products

	if len(out.Products) == 0 {
		out.Status = model.StatusNoProducts
		out.Message = MsgNoProducts
		return out
	}

	var matched bool
	if p, ok := v.catalog.Lookup(product); ok {
		out.ProductID = p.ID
		matched = contains(out.Products, p.ID)
	} else {
		matched = textualMatch(product, out.Products)
	}

	if matched {
		out.Status = model.StatusVerified
		out.Verified = true
		out.Message = fmt.Sprintf("Product matches history (score: %d)", m.Score)
		return out
	}

	alts := out.Products
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}
	out.Status = model.StatusMismatch
	out.Message = "Product not in history. Alternatives: " + strings.Join(alts, ", ")
	return out
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// textualMatch compares an unrecognized product name with the history by
// case-insensitive equality or containment in either direction. Containment
// of the proposed name needs at least 3 runes so stray letters never match.
func textualMatch(product string, history []string) bool {
	p := fold(product)
	if p == "" {
		return false
	}
	for _, h := range history {
		hf := fold(h)
		if p == hf || strings.Contains(p, hf) {
			return true
		}
		if utf8.RuneCountInString(p) >= 3 && strings.Contains(hf, p) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
